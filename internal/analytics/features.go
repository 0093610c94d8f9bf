package analytics

import (
	"math"

	"finsight/internal/models"
)

// featureCount is the fixed length of a profile feature vector.
const featureCount = 6

// FeatureVector encodes a profile for similarity and clustering:
// age, annual income, monthly savings, debt, risk tolerance ordinal,
// experience ordinal. Monetary features are converted to dollars so no
// single feature dwarfs the rest before standardization.
func FeatureVector(p *models.FinancialProfile) []float64 {
	return []float64{
		float64(p.Age),
		float64(p.AnnualIncome) / 100,
		float64(p.MonthlySavings) / 100,
		float64(p.DebtAmount) / 100,
		float64(riskIndex(p.RiskTolerance)),
		float64(experienceIndex(p.InvestmentExperience)),
	}
}

// Scaler standardizes feature vectors to zero mean and unit variance
// per dimension. A dimension with zero variance passes through as zero.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-dimension mean and standard deviation over the
// given vectors.
func FitScaler(vectors [][]float64) Scaler {
	s := Scaler{
		Mean: make([]float64, featureCount),
		Std:  make([]float64, featureCount),
	}
	if len(vectors) == 0 {
		for d := range s.Std {
			s.Std[d] = 1
		}
		return s
	}

	n := float64(len(vectors))
	for _, v := range vectors {
		for d, x := range v {
			s.Mean[d] += x
		}
	}
	for d := range s.Mean {
		s.Mean[d] /= n
	}

	for _, v := range vectors {
		for d, x := range v {
			diff := x - s.Mean[d]
			s.Std[d] += diff * diff
		}
	}
	for d := range s.Std {
		s.Std[d] = math.Sqrt(s.Std[d] / n)
	}
	return s
}

// Transform standardizes one vector.
func (s Scaler) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for d, x := range v {
		if s.Std[d] > 0 {
			out[d] = (x - s.Mean[d]) / s.Std[d]
		}
	}
	return out
}

// CosineSimilarity between two vectors; zero when either has no magnitude.
func CosineSimilarity(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

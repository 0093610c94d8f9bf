package analytics

import (
	"reflect"
	"testing"

	"finsight/internal/models"
)

// peerProfiles builds a spread of profiles across life stages.
func peerProfiles() []*models.FinancialProfile {
	return []*models.FinancialProfile{
		{Age: 24, AnnualIncome: 4_500_000, MonthlySavings: 40_000, DebtAmount: 2_000_000, RiskTolerance: models.RiskToleranceAggressive, InvestmentExperience: models.ExperienceBeginner, EmploymentStatus: models.EmploymentEmployed},
		{Age: 27, AnnualIncome: 5_500_000, MonthlySavings: 60_000, DebtAmount: 1_500_000, RiskTolerance: models.RiskToleranceAggressive, InvestmentExperience: models.ExperienceBeginner, EmploymentStatus: models.EmploymentEmployed},
		{Age: 35, AnnualIncome: 9_000_000, MonthlySavings: 150_000, DebtAmount: 0, RiskTolerance: models.RiskToleranceModerate, InvestmentExperience: models.ExperienceIntermediate, EmploymentStatus: models.EmploymentEmployed},
		{Age: 38, AnnualIncome: 9_500_000, MonthlySavings: 140_000, DebtAmount: 500_000, RiskTolerance: models.RiskToleranceModerate, InvestmentExperience: models.ExperienceIntermediate, EmploymentStatus: models.EmploymentSelfEmployed},
		{Age: 52, AnnualIncome: 12_000_000, MonthlySavings: 250_000, DebtAmount: 0, RiskTolerance: models.RiskToleranceConservative, InvestmentExperience: models.ExperienceAdvanced, EmploymentStatus: models.EmploymentEmployed},
		{Age: 58, AnnualIncome: 11_000_000, MonthlySavings: 300_000, DebtAmount: 0, RiskTolerance: models.RiskToleranceConservative, InvestmentExperience: models.ExperienceAdvanced, EmploymentStatus: models.EmploymentEmployed},
		{Age: 63, AnnualIncome: 6_000_000, MonthlySavings: 100_000, DebtAmount: 0, RiskTolerance: models.RiskToleranceConservative, InvestmentExperience: models.ExperienceIntermediate, EmploymentStatus: models.EmploymentRetired},
		{Age: 30, AnnualIncome: 7_000_000, MonthlySavings: 90_000, DebtAmount: 1_000_000, RiskTolerance: models.RiskToleranceModerate, InvestmentExperience: models.ExperienceBeginner, EmploymentStatus: models.EmploymentEmployed},
	}
}

func TestFeatureVector(t *testing.T) {
	p := peerProfiles()[0]
	v := FeatureVector(p)
	if len(v) != featureCount {
		t.Fatalf("feature vector length %d, want %d", len(v), featureCount)
	}
	if v[0] != 24 {
		t.Errorf("age feature = %v, want 24", v[0])
	}
	if v[1] != 45_000 {
		t.Errorf("income feature = %v dollars, want 45000", v[1])
	}
	if v[4] != 2 {
		t.Errorf("risk feature = %v, want 2 for Aggressive", v[4])
	}
	if v[5] != 0 {
		t.Errorf("experience feature = %v, want 0 for Beginner", v[5])
	}
}

func TestFitScaler(t *testing.T) {
	vectors := [][]float64{
		{10, 100, 5, 0, 1, 1},
		{20, 200, 5, 0, 2, 0},
	}
	s := FitScaler(vectors)

	if s.Mean[0] != 15 {
		t.Errorf("mean[0] = %v, want 15", s.Mean[0])
	}
	out := s.Transform(vectors[0])
	if out[0] != -1 {
		t.Errorf("standardized age = %v, want -1", out[0])
	}
	// Zero-variance dimensions pass through as zero instead of dividing
	// by zero.
	if out[2] != 0 || out[3] != 0 {
		t.Errorf("zero-variance dims should map to 0, got %v and %v", out[2], out[3])
	}
}

func TestFitSegments_Deterministic(t *testing.T) {
	peers := peerProfiles()
	a := DefaultAssumptions()

	m1 := FitSegments(peers, a.Recommend.SegmentCount, a.Recommend.MaxIterations)
	m2 := FitSegments(peers, a.Recommend.SegmentCount, a.Recommend.MaxIterations)

	if m1 == nil || m2 == nil {
		t.Fatal("expected fitted models")
	}
	if !reflect.DeepEqual(m1.Centers, m2.Centers) {
		t.Error("fitting the same peers twice should give identical centers")
	}
	for _, p := range peers {
		if m1.Assign(p) != m2.Assign(p) {
			t.Errorf("assignment differs between identical fits for age %d", p.Age)
		}
	}
}

func TestFitSegments_KClamp(t *testing.T) {
	peers := peerProfiles()[:4]

	m := FitSegments(peers, 10, 100)
	if m.K != 2 {
		t.Errorf("k = %d, want clamp to len(peers)/2 = 2", m.K)
	}

	single := FitSegments(peers[:1], 4, 100)
	if single.K != 1 {
		t.Errorf("k = %d, want minimum of 1", single.K)
	}

	if FitSegments(nil, 4, 100) != nil {
		t.Error("no peers should produce no model")
	}
}

func TestFitSegments_AssignGroupsSimilarProfiles(t *testing.T) {
	peers := peerProfiles()
	m := FitSegments(peers, 3, 100)

	// The two youngest aggressive savers should land together, away
	// from the pre-retirement conservative group.
	young := m.Assign(peers[0])
	if m.Assign(peers[1]) != young {
		t.Error("similar young profiles should share a segment")
	}
	if m.Assign(peers[5]) == young {
		t.Error("opposite life stages should not share a segment")
	}

	for _, p := range peers {
		if seg := m.Assign(p); seg < 0 || seg >= m.K {
			t.Errorf("assignment %d out of range [0,%d)", seg, m.K)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	a := []float64{1, 0, 0}
	if got := CosineSimilarity(a, []float64{2, 0, 0}); got < 0.999 {
		t.Errorf("parallel vectors: got %v, want ~1", got)
	}
	if got := CosineSimilarity(a, []float64{0, 1, 0}); got != 0 {
		t.Errorf("orthogonal vectors: got %v, want 0", got)
	}
	if got := CosineSimilarity(a, []float64{0, 0, 0}); got != 0 {
		t.Errorf("zero vector: got %v, want 0", got)
	}
}

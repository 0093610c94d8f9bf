package analytics

import (
	"math"

	"finsight/internal/models"
)

// SegmentModel is a fitted peer segmentation: cluster centers in
// standardized feature space plus the scaler that produced it. The
// model is immutable once fitted; Assign never mutates it, so a model
// may be shared across concurrent recommendation calls.
type SegmentModel struct {
	K       int
	Centers [][]float64
	scaler  Scaler
}

// FitSegments clusters peer profiles into at most k segments. Seeding
// is deterministic (first profile, then farthest-point), so fitting the
// same peers always produces the same model. k is clamped to half the
// peer count, minimum one segment.
func FitSegments(peers []*models.FinancialProfile, k int, maxIterations int) *SegmentModel {
	if len(peers) == 0 {
		return nil
	}
	if limit := len(peers) / 2; k > limit {
		k = limit
	}
	if k < 1 {
		k = 1
	}

	raw := make([][]float64, len(peers))
	for i, p := range peers {
		raw[i] = FeatureVector(p)
	}
	scaler := FitScaler(raw)
	points := make([][]float64, len(raw))
	for i, v := range raw {
		points[i] = scaler.Transform(v)
	}

	centers := seedCenters(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, pt := range points {
			c := nearestCenter(pt, centers)
			if c != assignments[i] {
				assignments[i] = c
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		// Recompute centers as member means; an emptied cluster keeps
		// its previous center.
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, featureCount)
		}
		for i, pt := range points {
			c := assignments[i]
			counts[c]++
			for d, x := range pt {
				sums[c][d] += x
			}
		}
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			for d := range centers[c] {
				centers[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return &SegmentModel{K: k, Centers: centers, scaler: scaler}
}

// seedCenters picks the first point, then repeatedly the point farthest
// from its nearest chosen center. Ties resolve to the lowest index.
func seedCenters(points [][]float64, k int) [][]float64 {
	centers := make([][]float64, 0, k)
	first := make([]float64, featureCount)
	copy(first, points[0])
	centers = append(centers, first)

	for len(centers) < k {
		bestIdx := 0
		bestDist := -1.0
		for i, pt := range points {
			d := math.Inf(1)
			for _, c := range centers {
				if dd := sqDist(pt, c); dd < d {
					d = dd
				}
			}
			if d > bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		next := make([]float64, featureCount)
		copy(next, points[bestIdx])
		centers = append(centers, next)
	}
	return centers
}

func nearestCenter(pt []float64, centers [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, center := range centers {
		if d := sqDist(pt, center); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Assign returns the segment index for a profile.
func (m *SegmentModel) Assign(p *models.FinancialProfile) int {
	return nearestCenter(m.Standardize(p), m.Centers)
}

// Standardize maps a profile into the model's standardized feature space.
func (m *SegmentModel) Standardize(p *models.FinancialProfile) []float64 {
	return m.scaler.Transform(FeatureVector(p))
}

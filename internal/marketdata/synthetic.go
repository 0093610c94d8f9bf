package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

const (
	syntheticDrift    = 0.0008 // mean daily return
	syntheticVol      = 0.02   // daily return stddev
	syntheticMinPrice = 1.0
)

// SyntheticProvider generates deterministic random-walk price series.
// The walk for a symbol is seeded from the symbol name, so repeated
// calls produce identical series regardless of process or wall clock.
type SyntheticProvider struct{}

// NewSyntheticProvider creates a synthetic series generator.
func NewSyntheticProvider() *SyntheticProvider { return &SyntheticProvider{} }

// Name returns the provider's display name.
func (p *SyntheticProvider) Name() string { return "Synthetic" }

// FetchSeries generates a series for every requested symbol. It never fails.
func (p *SyntheticProvider) FetchSeries(_ context.Context, symbols []string, days int) (map[string]Series, []FetchError) {
	if len(symbols) == 0 {
		return nil, nil
	}
	series := make(map[string]Series, len(symbols))
	for _, symbol := range symbols {
		series[symbol] = Generate(symbol, days)
	}
	return series, nil
}

// Generate builds a deterministic daily random walk for symbol covering
// the given number of days. Dates are anchored to a fixed epoch rather
// than time.Now so that two calls always agree point for point.
func Generate(symbol string, days int) Series {
	if days < 2 {
		days = 2
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// Starting price between 20 and 520, also symbol-stable.
	price := 20 + rng.Float64()*500

	epoch := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]Point, 0, days)
	for i := 0; i < days; i++ {
		points = append(points, Point{
			Date:  epoch.AddDate(0, 0, i),
			Close: price,
		})
		ret := syntheticDrift + syntheticVol*rng.NormFloat64()
		price = math.Max(syntheticMinPrice, price*(1+ret))
	}

	return Series{Symbol: symbol, Points: points, Synthetic: true}
}

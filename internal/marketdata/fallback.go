package marketdata

import (
	"context"

	"finsight/internal/logger"
)

// FallbackProvider wraps a primary provider and fills in synthetic
// series for any symbol the primary could not serve. Analyses therefore
// always have a full set of series to work with; callers can inspect
// Series.Synthetic to surface degraded data to the user.
type FallbackProvider struct {
	primary   Provider
	synthetic *SyntheticProvider
}

// NewFallbackProvider wraps primary with a synthetic fallback.
func NewFallbackProvider(primary Provider) *FallbackProvider {
	return &FallbackProvider{primary: primary, synthetic: NewSyntheticProvider()}
}

// Name returns the provider's display name.
func (p *FallbackProvider) Name() string { return p.primary.Name() + " (with synthetic fallback)" }

// FetchSeries fetches from the primary provider and generates synthetic
// series for failed symbols. The primary's errors are logged and
// returned so callers can tell which symbols fell back.
func (p *FallbackProvider) FetchSeries(ctx context.Context, symbols []string, days int) (map[string]Series, []FetchError) {
	series, fetchErrors := p.primary.FetchSeries(ctx, symbols, days)
	if series == nil {
		series = make(map[string]Series, len(symbols))
	}

	for _, symbol := range symbols {
		if _, ok := series[symbol]; ok {
			continue
		}
		logger.Get().Warnw("falling back to synthetic price series",
			"symbol", symbol,
			"provider", p.primary.Name(),
		)
		series[symbol] = Generate(symbol, days)
	}

	return series, fetchErrors
}

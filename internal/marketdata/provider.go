// Package marketdata defines the interface for fetching historical price
// series from external data sources, plus a deterministic synthetic
// generator used when live data is unavailable.
package marketdata

import (
	"context"
	"fmt"
	"time"
)

// Point is a single daily closing price. Close is in the quote currency,
// not cents; series values only feed return calculations and are never
// persisted.
type Point struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Series is the price history for one symbol, ordered oldest first.
// Synthetic marks series produced by the fallback generator rather than
// a live provider.
type Series struct {
	Symbol    string  `json:"symbol"`
	Points    []Point `json:"points"`
	Synthetic bool    `json:"synthetic"`
}

// Returns computes the day-over-day fractional returns of the series.
func (s Series) Returns() []float64 {
	if len(s.Points) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		prev := s.Points[i-1].Close
		if prev == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, s.Points[i].Close/prev-1)
	}
	return out
}

// FetchError represents a failed history fetch for a specific symbol.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch history for %s: %v", e.Symbol, e.Err)
}

// Provider fetches historical daily closes for a set of symbols.
type Provider interface {
	// Name returns the provider's display name (e.g., "Yahoo Finance").
	Name() string

	// FetchSeries fetches up to days of daily history for the given symbols.
	// Returns as many series as possible, keyed by symbol, plus per-symbol
	// errors for the rest.
	FetchSeries(ctx context.Context, symbols []string, days int) (map[string]Series, []FetchError)
}

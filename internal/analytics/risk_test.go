package analytics

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	apperrors "finsight/internal/errors"
	"finsight/internal/marketdata"
	"finsight/internal/models"
)

// flatSeries builds a series with the given closes, one day apart.
func flatSeries(symbol string, closes ...float64) marketdata.Series {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	points := make([]marketdata.Point, len(closes))
	for i, c := range closes {
		points[i] = marketdata.Point{Date: start.AddDate(0, 0, i), Close: c}
	}
	return marketdata.Series{Symbol: symbol, Points: points}
}

func TestAnalyzePortfolio_EmptyPortfolio(t *testing.T) {
	a := DefaultAssumptions()
	_, err := AnalyzePortfolio(nil, Portfolio{}, nil, a)
	if !errors.Is(err, apperrors.ErrEmptyPortfolio) {
		t.Fatalf("expected ErrEmptyPortfolio, got %v", err)
	}
}

func TestAnalyzePortfolio_AllocationSumsToOne(t *testing.T) {
	a := DefaultAssumptions()
	p := Portfolio{
		Stocks:     map[string]int64{"AAPL": 400_000, "MSFT": 100_000},
		Bonds:      200_000,
		Cash:       100_000,
		RealEstate: 150_000,
		Crypto:     50_000,
	}
	series := map[string]marketdata.Series{
		"AAPL": marketdata.Generate("AAPL", 252),
		"MSFT": marketdata.Generate("MSFT", 252),
	}

	report, err := AnalyzePortfolio(nil, p, series, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalValue != 1_000_000 {
		t.Errorf("total value = %d, want 1000000", report.TotalValue)
	}
	var sum float64
	for _, w := range report.Allocation {
		if w <= 0 {
			t.Errorf("allocation contains non-positive weight %v", w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("allocation sums to %v, want 1", sum)
	}
	if len(report.Allocation) != 5 {
		t.Errorf("expected 5 classes, got %d", len(report.Allocation))
	}
}

func TestAnalyzePortfolio_DataGaps(t *testing.T) {
	a := DefaultAssumptions()
	p := Portfolio{Stocks: map[string]int64{"A": 500_000, "B": 500_000}}
	series := map[string]marketdata.Series{
		"A": flatSeries("A", 100, 101, 102, 100, 103, 104),
		"B": flatSeries("B", 50), // single point, excluded
	}

	report, err := AnalyzePortfolio(nil, p, series, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.DataGaps) != 1 || report.DataGaps[0].Symbol != "B" {
		t.Fatalf("expected a data gap for B, got %+v", report.DataGaps)
	}
	if _, ok := report.Metrics.SymbolVolatility["B"]; ok {
		t.Error("excluded symbol should have no volatility estimate")
	}
	if _, ok := report.Metrics.SymbolVolatility["A"]; !ok {
		t.Error("symbol with sufficient history should have a volatility estimate")
	}
	// Sharpe is still defined, driven by the symbol with data.
	if report.Metrics.SharpeRatio == nil {
		t.Error("expected Sharpe ratio from the remaining symbol")
	}
}

func TestAnalyzePortfolio_MissingSeries(t *testing.T) {
	a := DefaultAssumptions()
	p := Portfolio{Stocks: map[string]int64{"A": 100_000}, Bonds: 100_000}

	report, err := AnalyzePortfolio(nil, p, nil, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.DataGaps) != 1 {
		t.Fatalf("expected 1 data gap, got %+v", report.DataGaps)
	}
	if report.DataGaps[0].Reason != "no price history available" {
		t.Errorf("unexpected gap reason: %s", report.DataGaps[0].Reason)
	}
}

func TestAnalyzePortfolio_ZeroVolatility(t *testing.T) {
	a := DefaultAssumptions()
	p := Portfolio{Cash: 1_000_000}

	report, err := AnalyzePortfolio(nil, p, nil, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.Volatility != 0 {
		t.Errorf("all-cash volatility = %v, want 0", report.Metrics.Volatility)
	}
	if report.Metrics.SharpeRatio != nil {
		t.Error("Sharpe ratio should be undefined at zero volatility")
	}
	if report.RiskScore != 1 {
		t.Errorf("risk score = %v, want floor of 1", report.RiskScore)
	}
}

func TestAnalyzePortfolio_RiskScoreBounds(t *testing.T) {
	a := DefaultAssumptions()

	// An all-crypto portfolio pins the score to the ceiling.
	report, err := AnalyzePortfolio(nil, Portfolio{Crypto: 1_000_000}, nil, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.RiskScore != 10 {
		t.Errorf("all-crypto risk score = %v, want 10", report.RiskScore)
	}
	if report.Allocation[ClassCrypto] != 1 {
		t.Errorf("crypto allocation = %v, want 1", report.Allocation[ClassCrypto])
	}
}

func TestDiversificationScore_MonotoneInClassSpread(t *testing.T) {
	a := DefaultAssumptions()

	// The same total spread equally across strictly more classes never
	// scores lower.
	portfolios := []Portfolio{
		{Cash: 1_000_000},
		{Cash: 500_000, Bonds: 500_000},
		{Cash: 333_000, Bonds: 333_000, RealEstate: 334_000},
		{Cash: 250_000, Bonds: 250_000, RealEstate: 250_000, Stocks: map[string]int64{"VTI": 250_000}},
	}
	series := map[string]marketdata.Series{"VTI": marketdata.Generate("VTI", 252)}

	prev := -1.0
	for i, p := range portfolios {
		report, err := AnalyzePortfolio(nil, p, series, a)
		if err != nil {
			t.Fatalf("portfolio %d: %v", i, err)
		}
		if report.DiversificationScore < prev {
			t.Errorf("portfolio %d: score %v dropped below %v with more classes", i, report.DiversificationScore, prev)
		}
		if report.DiversificationScore < 1 || report.DiversificationScore > 10 {
			t.Errorf("portfolio %d: score %v out of [1,10]", i, report.DiversificationScore)
		}
		prev = report.DiversificationScore
	}
}

func TestAnalyzePortfolio_Recommendations(t *testing.T) {
	a := DefaultAssumptions()

	t.Run("single stock concentration", func(t *testing.T) {
		p := Portfolio{Stocks: map[string]int64{"TSLA": 900_000}, Cash: 100_000}
		series := map[string]marketdata.Series{"TSLA": marketdata.Generate("TSLA", 252)}
		report, err := AnalyzePortfolio(nil, p, series, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !containsSubstring(report.Recommendations, "single position") {
			t.Errorf("expected single-position advice, got %v", report.Recommendations)
		}
	})

	t.Run("excess cash", func(t *testing.T) {
		report, err := AnalyzePortfolio(nil, Portfolio{Cash: 500_000, Bonds: 500_000}, nil, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !containsSubstring(report.Recommendations, "inflation") {
			t.Errorf("expected excess-cash advice, got %v", report.Recommendations)
		}
	})

	t.Run("crypto overweight", func(t *testing.T) {
		report, err := AnalyzePortfolio(nil, Portfolio{Crypto: 200_000, Bonds: 800_000}, nil, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !containsSubstring(report.Recommendations, "Crypto") {
			t.Errorf("expected crypto advice, got %v", report.Recommendations)
		}
	})

	t.Run("tolerance mismatch", func(t *testing.T) {
		profile := baselineProfile()
		profile.RiskTolerance = models.RiskToleranceConservative
		report, err := AnalyzePortfolio(profile, Portfolio{Crypto: 1_000_000}, nil, a)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !containsSubstring(report.Recommendations, "high for your Conservative tolerance") {
			t.Errorf("expected mismatch advice, got %v", report.Recommendations)
		}
	})
}

func containsSubstring(list []string, sub string) bool {
	for _, s := range list {
		if len(sub) > 0 && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

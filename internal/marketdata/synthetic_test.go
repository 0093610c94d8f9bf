package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate("AAPL", 252)
	b := Generate("AAPL", 252)

	if len(a.Points) != 252 {
		t.Fatalf("expected 252 points, got %d", len(a.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs between runs: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
	if !a.Synthetic {
		t.Error("generated series should be marked synthetic")
	}
}

func TestGenerate_SymbolsDiffer(t *testing.T) {
	a := Generate("AAPL", 50)
	b := Generate("MSFT", 50)

	same := true
	for i := range a.Points {
		if a.Points[i].Close != b.Points[i].Close {
			same = false
			break
		}
	}
	if same {
		t.Error("different symbols should produce different walks")
	}
}

func TestGenerate_PositiveOrderedPrices(t *testing.T) {
	s := Generate("XYZ", 365)
	for i, pt := range s.Points {
		if pt.Close <= 0 {
			t.Fatalf("point %d has non-positive close %v", i, pt.Close)
		}
		if i > 0 && !s.Points[i-1].Date.Before(pt.Date) {
			t.Fatalf("point %d out of order", i)
		}
	}
}

func TestFallbackProvider_FillsFailedSymbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := NewFallbackProvider(NewYahooProvider(server.Client(), server.URL))
	series, fetchErrors := p.FetchSeries(context.Background(), []string{"AAPL", "MSFT"}, 100)

	if len(series) != 2 {
		t.Fatalf("expected 2 series after fallback, got %d", len(series))
	}
	for symbol, s := range series {
		if !s.Synthetic {
			t.Errorf("%s: expected synthetic fallback series", symbol)
		}
		if len(s.Points) != 100 {
			t.Errorf("%s: expected 100 points, got %d", symbol, len(s.Points))
		}
	}
	// The primary's failures are still reported.
	if len(fetchErrors) != 2 {
		t.Errorf("expected 2 fetch errors from primary, got %d", len(fetchErrors))
	}
}

func TestSeries_Returns(t *testing.T) {
	s := Series{Points: []Point{
		{Close: 100},
		{Close: 110},
		{Close: 99},
	}}
	rets := s.Returns()
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(rets))
	}
	if rets[0] < 0.0999 || rets[0] > 0.1001 {
		t.Errorf("expected first return ~0.10, got %v", rets[0])
	}
	if rets[1] > -0.0999 || rets[1] < -0.1001 {
		t.Errorf("expected second return ~-0.10, got %v", rets[1])
	}

	if got := (Series{Points: []Point{{Close: 100}}}).Returns(); got != nil {
		t.Errorf("single-point series should have nil returns, got %v", got)
	}
}

package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the top-level Yahoo Finance chart API response.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *json.RawMessage   `json:"error"`
	} `json:"chart"`
}

// yahooChartResult is a single symbol's history from Yahoo Finance.
type yahooChartResult struct {
	Meta struct {
		Symbol string `json:"symbol"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// YahooProvider fetches daily price history from the Yahoo Finance chart API.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance history provider.
func NewYahooProvider(httpClient *http.Client, baseURL string) *YahooProvider {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooProvider{httpClient: httpClient, baseURL: baseURL}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "Yahoo Finance" }

// FetchSeries fetches daily closes for each symbol. The chart API serves
// one symbol per request, so symbols are fetched sequentially and a
// failure for one symbol does not abort the rest.
func (p *YahooProvider) FetchSeries(ctx context.Context, symbols []string, days int) (map[string]Series, []FetchError) {
	if len(symbols) == 0 {
		return nil, nil
	}

	series := make(map[string]Series, len(symbols))
	var fetchErrors []FetchError

	for _, symbol := range symbols {
		s, err := p.fetchSymbol(ctx, symbol, days)
		if err != nil {
			fetchErrors = append(fetchErrors, FetchError{Symbol: symbol, Err: err})
			continue
		}
		series[symbol] = s
	}

	return series, fetchErrors
}

// fetchSymbol fetches and decodes one symbol's chart data.
func (p *YahooProvider) fetchSymbol(ctx context.Context, symbol string, days int) (Series, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&range=%s", p.baseURL, symbol, rangeParam(days))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Series{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Series{}, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Series{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return Series{}, fmt.Errorf("decoding response: %w", err)
	}

	if len(chartResp.Chart.Result) == 0 {
		return Series{}, fmt.Errorf("symbol %s not found in response", symbol)
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return Series{}, fmt.Errorf("no quote data for %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	points := make([]Point, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Yahoo returns null closes for holidays and halted sessions.
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, Point{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}

	if len(points) == 0 {
		return Series{}, fmt.Errorf("empty history for %s", symbol)
	}

	return Series{Symbol: symbol, Points: points}, nil
}

// rangeParam maps a day count onto the nearest chart API range token.
func rangeParam(days int) string {
	switch {
	case days <= 0:
		return "1y"
	case days <= 31:
		return "1mo"
	case days <= 93:
		return "3mo"
	case days <= 186:
		return "6mo"
	case days <= 366:
		return "1y"
	case days <= 731:
		return "2y"
	default:
		return "5y"
	}
}

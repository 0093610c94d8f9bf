package analytics

import (
	"fmt"
	"math"
	"sort"

	apperrors "finsight/internal/errors"
	"finsight/internal/marketdata"
	"finsight/internal/models"
)

// Asset class keys in a PortfolioReport allocation.
const (
	ClassStocks     = "stocks"
	ClassBonds      = "bonds"
	ClassCash       = "cash"
	ClassRealEstate = "real_estate"
	ClassCrypto     = "crypto"
)

// Portfolio is a point-in-time snapshot of holdings. Stocks maps symbol
// to position value; all values are in cents.
type Portfolio struct {
	Stocks     map[string]int64 `json:"stocks"`
	Bonds      int64            `json:"bonds"`
	Cash       int64            `json:"cash"`
	RealEstate int64            `json:"real_estate"`
	Crypto     int64            `json:"crypto"`
}

// TotalValue sums all holdings in cents.
func (p Portfolio) TotalValue() int64 {
	total := p.Bonds + p.Cash + p.RealEstate + p.Crypto
	for _, v := range p.Stocks {
		total += v
	}
	return total
}

// Symbols returns the stock symbols in sorted order.
func (p Portfolio) Symbols() []string {
	out := make([]string, 0, len(p.Stocks))
	for s := range p.Stocks {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// DataGap records a stock symbol excluded from the volatility and
// return estimates, with the reason.
type DataGap struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// RiskMetrics are the quantitative outputs of a portfolio analysis.
// Volatility and ExpectedReturn are annualized fractions. SharpeRatio
// is nil when volatility is zero, where the ratio is undefined.
type RiskMetrics struct {
	Volatility       float64            `json:"volatility"`
	ExpectedReturn   float64            `json:"expected_return"`
	SharpeRatio      *float64           `json:"sharpe_ratio"`
	SymbolVolatility map[string]float64 `json:"symbol_volatility,omitempty"`
	Herfindahl       float64            `json:"herfindahl"`
}

// PortfolioReport is the result of a portfolio risk analysis.
type PortfolioReport struct {
	TotalValue           int64              `json:"total_value"`
	Allocation           map[string]float64 `json:"allocation"`
	RiskScore            float64            `json:"risk_score"`
	RiskAssessment       string             `json:"risk_assessment"`
	DiversificationScore float64            `json:"diversification_score"`
	Metrics              RiskMetrics        `json:"metrics"`
	DataGaps             []DataGap          `json:"data_gaps,omitempty"`
	Recommendations      []string           `json:"recommendations"`
}

// AnalyzePortfolio estimates risk, diversification, and expected return
// for the given holdings. Stock volatility comes from the supplied
// price series; non-stock classes use the fixed class assumptions.
// Portfolio volatility is the no-covariance approximation
// sqrt(sum of w^2 * sigma^2), which understates correlated risk.
// Symbols whose series cannot support a volatility estimate are
// reported in DataGaps and excluded from the estimates. The profile is
// optional and only feeds the age and tolerance recommendations.
func AnalyzePortfolio(profile *models.FinancialProfile, p Portfolio, series map[string]marketdata.Series, a Assumptions) (*PortfolioReport, error) {
	total := p.TotalValue()
	if total <= 0 {
		return nil, apperrors.ErrEmptyPortfolio
	}

	totalF := float64(total)
	symbolVol, symbolRet, gaps := stockEstimates(p, series, a)

	// No-covariance variance: stock symbols individually, non-stock
	// classes at their fixed volatilities. Cash contributes none.
	variance := 0.0
	expectedReturn := 0.0
	for symbol, value := range p.Stocks {
		w := float64(value) / totalF
		if vol, ok := symbolVol[symbol]; ok {
			variance += w * w * vol * vol
			expectedReturn += w * symbolRet[symbol]
		}
	}
	for _, c := range []struct {
		value int64
		vol   float64
		ret   float64
	}{
		{p.Bonds, a.Risk.BondVolatility, a.Risk.BondReturn},
		{p.Cash, 0, a.Risk.CashReturn},
		{p.RealEstate, a.Risk.RealEstateVolatility, a.Risk.RealEstateReturn},
		{p.Crypto, a.Risk.CryptoVolatility, a.Risk.CryptoReturn},
	} {
		w := float64(c.value) / totalF
		variance += w * w * c.vol * c.vol
		expectedReturn += w * c.ret
	}

	volatility := math.Sqrt(variance)
	var sharpe *float64
	if volatility > 0 {
		s := (expectedReturn - a.RiskFreeRate) / volatility
		sharpe = &s
	}

	riskScore := clamp(volatility*a.Risk.RiskScoreScale, 1, 10)
	allocation := classAllocation(p, totalF)
	hhi := herfindahl(p, totalF)

	report := &PortfolioReport{
		TotalValue:           total,
		Allocation:           allocation,
		RiskScore:            round1(riskScore),
		RiskAssessment:       riskAssessment(riskScore),
		DiversificationScore: diversificationScore(allocation, hhi, a.Risk),
		Metrics: RiskMetrics{
			Volatility:       volatility,
			ExpectedReturn:   expectedReturn,
			SharpeRatio:      sharpe,
			SymbolVolatility: symbolVol,
			Herfindahl:       hhi,
		},
		DataGaps: gaps,
	}
	report.Recommendations = riskRecommendations(profile, p, report, a)
	return report, nil
}

// stockEstimates computes annualized volatility and expected return per
// stock symbol, collecting gaps for symbols without usable history.
// Sample standard deviation needs at least two returns, i.e. three
// price points.
func stockEstimates(p Portfolio, series map[string]marketdata.Series, a Assumptions) (map[string]float64, map[string]float64, []DataGap) {
	vols := make(map[string]float64, len(p.Stocks))
	rets := make(map[string]float64, len(p.Stocks))
	var gaps []DataGap

	for _, symbol := range p.Symbols() {
		s, ok := series[symbol]
		if !ok {
			gaps = append(gaps, DataGap{Symbol: symbol, Reason: "no price history available"})
			continue
		}
		if len(s.Points) < 2 {
			gaps = append(gaps, DataGap{Symbol: symbol, Reason: "fewer than 2 price points"})
			continue
		}
		returns := s.Returns()
		if len(returns) < 2 {
			gaps = append(gaps, DataGap{Symbol: symbol, Reason: "insufficient returns for volatility"})
			continue
		}

		mean := 0.0
		for _, r := range returns {
			mean += r
		}
		mean /= float64(len(returns))

		ss := 0.0
		for _, r := range returns {
			d := r - mean
			ss += d * d
		}
		dailyVol := math.Sqrt(ss / float64(len(returns)-1))

		vols[symbol] = dailyVol * math.Sqrt(float64(a.TradingDays))
		rets[symbol] = mean * float64(a.TradingDays)
	}

	return vols, rets, gaps
}

// classAllocation returns each nonzero class's fraction of total value.
func classAllocation(p Portfolio, totalF float64) map[string]float64 {
	var stocks int64
	for _, v := range p.Stocks {
		stocks += v
	}
	alloc := make(map[string]float64, 5)
	for _, c := range []struct {
		key   string
		value int64
	}{
		{ClassStocks, stocks},
		{ClassBonds, p.Bonds},
		{ClassCash, p.Cash},
		{ClassRealEstate, p.RealEstate},
		{ClassCrypto, p.Crypto},
	} {
		if c.value > 0 {
			alloc[c.key] = float64(c.value) / totalF
		}
	}
	return alloc
}

// herfindahl sums squared position weights. Each stock symbol is a
// position; each non-stock class counts as a single position.
func herfindahl(p Portfolio, totalF float64) float64 {
	hhi := 0.0
	for _, v := range p.Stocks {
		w := float64(v) / totalF
		hhi += w * w
	}
	for _, v := range []int64{p.Bonds, p.Cash, p.RealEstate, p.Crypto} {
		w := float64(v) / totalF
		hhi += w * w
	}
	return hhi
}

// diversificationScore combines class spread and inverse position
// concentration onto a 1-10 scale.
func diversificationScore(allocation map[string]float64, hhi float64, r RiskParams) float64 {
	classFactor := float64(len(allocation)) / float64(r.AssetClassCount)
	concentrationFactor := clamp(1-hhi, 0, 1)
	score01 := r.ClassCountWeight*classFactor + r.ConcentrationWeight*concentrationFactor
	return round1(1 + 9*score01)
}

func riskAssessment(score float64) string {
	switch {
	case score <= 3:
		return "Low Risk - Conservative portfolio suitable for capital preservation"
	case score <= 5:
		return "Moderate Risk - Balanced portfolio with growth potential"
	case score <= 7:
		return "Medium-High Risk - Growth-focused portfolio with higher volatility"
	default:
		return "High Risk - Aggressive portfolio subject to large swings"
	}
}

// riskRecommendations applies the allocation guardrails in a fixed
// order so output is deterministic.
func riskRecommendations(profile *models.FinancialProfile, p Portfolio, report *PortfolioReport, a Assumptions) []string {
	r := a.Risk
	var recs []string

	if profile != nil {
		if target, ok := r.ToleranceTargetScore[profile.RiskTolerance]; ok {
			switch {
			case report.RiskScore-target > r.ToleranceMismatchThreshold:
				recs = append(recs, fmt.Sprintf("Portfolio risk (%.1f/10) is high for your %s tolerance; consider shifting toward bonds or broad index funds", report.RiskScore, profile.RiskTolerance))
			case target-report.RiskScore > r.ToleranceMismatchThreshold:
				recs = append(recs, fmt.Sprintf("Portfolio risk (%.1f/10) is low for your %s tolerance; you may have room for more stock exposure", report.RiskScore, profile.RiskTolerance))
			}
		}
	}

	stockWeight := report.Allocation[ClassStocks]
	switch {
	case len(p.Stocks) == 1 && stockWeight > 0:
		recs = append(recs, "Stock holdings are concentrated in a single position; spread across more holdings or use index funds")
	case len(p.Stocks) > 0 && len(p.Stocks) < r.MinSymbols:
		recs = append(recs, fmt.Sprintf("Consider holding at least %d different stocks or using broad index funds for diversification", r.MinSymbols))
	}

	if profile != nil {
		targetStockPct := r.StockRuleBase - float64(profile.Age)
		actualStockPct := stockWeight * 100
		switch {
		case actualStockPct > targetStockPct+r.StockRuleSlack:
			recs = append(recs, fmt.Sprintf("Stock allocation (%.0f%%) is aggressive for age %d; a common guideline is around %.0f%%", actualStockPct, profile.Age, targetStockPct))
		case actualStockPct < targetStockPct-r.StockRuleSlack:
			recs = append(recs, fmt.Sprintf("Stock allocation (%.0f%%) is conservative for age %d; a common guideline is around %.0f%%", actualStockPct, profile.Age, targetStockPct))
		}
	}

	cashWeight := report.Allocation[ClassCash]
	switch {
	case cashWeight > r.CashCeil:
		recs = append(recs, fmt.Sprintf("Cash is %.0f%% of the portfolio; amounts above an emergency reserve lose value to inflation", cashWeight*100))
	case cashWeight < r.CashFloor:
		recs = append(recs, "Cash reserves are thin; keep some liquidity for emergencies and opportunities")
	}

	if report.Allocation[ClassCrypto] > r.CryptoCap {
		recs = append(recs, fmt.Sprintf("Crypto exceeds %.0f%% of the portfolio; consider trimming given its volatility", r.CryptoCap*100))
	}

	if report.Metrics.SharpeRatio != nil && *report.Metrics.SharpeRatio < r.SharpeAdviceBelow {
		recs = append(recs, "Risk-adjusted returns are low; the portfolio takes on risk without commensurate expected reward")
	}

	if profile != nil {
		if expenses := monthlyExpenses(profile); expenses > 0 {
			needed := int64(r.EmergencyMonths) * expenses
			if p.Cash < needed {
				recs = append(recs, fmt.Sprintf("Cash on hand covers less than %.0f months of estimated expenses; consider building the reserve before adding risk", r.EmergencyMonths))
			}
		}
	}

	return recs
}

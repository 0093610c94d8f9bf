// Package analytics implements the scoring, risk, goal-planning, and
// recommendation calculations. Every function in this package is pure:
// results depend only on the inputs and the Assumptions table, with no
// database, network, or clock access, so the same call always produces
// the same report.
package analytics

import "finsight/internal/models"

// Assumptions collects every tunable constant the analytics use.
// DefaultAssumptions returns the standard table; tests and config
// overrides replace individual fields rather than scattering literals
// through the calculation code.
type Assumptions struct {
	// Economic rates, annual fractions.
	InflationRate float64
	MarketReturn  float64
	RiskFreeRate  float64

	// TradingDays is the annualization base for daily volatility.
	TradingDays int

	Health    HealthParams
	Risk      RiskParams
	Goal      GoalParams
	Recommend RecommendParams
}

// HealthParams holds the profile health scorer's bands and weights.
type HealthParams struct {
	// Component weights. They sum to the 0-100 score scale.
	SavingsRatePoints   float64
	DebtRatioPoints     float64
	EmergencyFundPoints float64
	RiskAlignmentPoints float64
	GoalPoints          float64
	EmploymentPoints    float64

	// TargetSavingsRate earns full savings-rate points; the component
	// scales linearly from zero up to this rate.
	TargetSavingsRate float64

	// MaxDebtRatio earns zero debt points; the component scales
	// linearly down from full points at zero debt.
	MaxDebtRatio float64

	// TargetEmergencyMonths of expense coverage earns full points.
	TargetEmergencyMonths float64

	// LiquidSavingsMonths approximates accumulated liquid savings as a
	// multiple of the monthly savings contribution.
	LiquidSavingsMonths float64

	// Age bands for the risk-alignment target tolerance.
	YoungAgeMax int // below this, Aggressive is the target
	MidAgeMax   int // below this, Moderate; otherwise Conservative

	// Points for exact, adjacent, and distant tolerance matches.
	RiskExactPoints    float64
	RiskAdjacentPoints float64
	RiskDistantPoints  float64

	// Goal completeness points by distinct goal count. Index is the
	// count, capped at the last entry.
	GoalCountPoints []float64

	// EmploymentStability maps status to a 0-3 stability grade.
	EmploymentStability map[models.EmploymentStatus]float64

	// Rating cutoffs on the overall score.
	ExcellentMin float64
	GoodMin      float64
	FairMin      float64

	// Remediation thresholds: a component below its threshold emits a
	// recommendation.
	SavingsAdviceBelow    float64
	DebtAdviceBelow       float64
	EmergencyAdviceBelow  float64
	RiskAdviceBelow       float64
	GoalAdviceBelow       float64
	EmploymentAdviceBelow float64
}

// RiskParams holds the portfolio analyzer's class assumptions and
// recommendation thresholds.
type RiskParams struct {
	// Fixed annualized volatility per non-stock class.
	BondVolatility       float64
	RealEstateVolatility float64
	CryptoVolatility     float64

	// Fixed annual expected return per non-stock class.
	BondReturn       float64
	CashReturn       float64
	RealEstateReturn float64
	CryptoReturn     float64

	// RiskScoreScale maps annualized volatility onto the 1-10 score.
	RiskScoreScale float64

	// Diversification factor weights; they sum to 1.
	ClassCountWeight    float64
	ConcentrationWeight float64

	// AssetClassCount is the number of recognized classes, the
	// denominator of the class-count factor.
	AssetClassCount int

	// ToleranceMismatchThreshold is the risk-score distance from the
	// stated tolerance's target beyond which a rebalancing
	// recommendation is emitted.
	ToleranceMismatchThreshold float64

	// ToleranceTargetScore maps stated tolerance to its natural spot
	// on the risk scale.
	ToleranceTargetScore map[models.RiskTolerance]float64

	// Age-based stock allocation rule: target stock percent is
	// StockRuleBase minus age, checked within StockRuleSlack points.
	StockRuleBase  float64
	StockRuleSlack float64

	// Cash and crypto allocation guardrails, fractions of total value.
	CashFloor  float64
	CashCeil   float64
	CryptoCap  float64
	MinSymbols int

	// SharpeAdviceBelow triggers a risk-adjusted-return recommendation.
	SharpeAdviceBelow float64

	// EmergencyMonths of estimated expenses the cash sleeve should cover.
	EmergencyMonths float64
}

// GoalParams holds the goal planner's feasibility and horizon bands.
type GoalParams struct {
	// ChallengingOverage: required savings up to this multiple of
	// available savings is Challenging rather than Unrealistic.
	ChallengingOverage float64

	// Horizon cutoffs in years for strategy selection.
	ShortHorizonMax  float64
	MediumHorizonMax float64
}

// RecommendParams holds the recommendation engine's segmentation and
// ranking constants.
type RecommendParams struct {
	// SegmentCount is the requested number of peer clusters; it is
	// clamped to half the peer count.
	SegmentCount int

	// MinPeers below which collaborative filtering is skipped.
	MinPeers int

	// SimilarityThreshold is the minimum cosine similarity for a peer
	// to count as a neighbor.
	SimilarityThreshold float64

	// TopN products returned per category.
	TopN int

	// MaxIterations bounds the clustering refinement loop.
	MaxIterations int
}

// DefaultAssumptions returns the standard assumption table.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InflationRate: 0.03,
		MarketReturn:  0.07,
		RiskFreeRate:  0.03,
		TradingDays:   252,

		Health: HealthParams{
			SavingsRatePoints:   25,
			DebtRatioPoints:     20,
			EmergencyFundPoints: 20,
			RiskAlignmentPoints: 15,
			GoalPoints:          10,
			EmploymentPoints:    10,

			TargetSavingsRate:     0.20,
			MaxDebtRatio:          0.40,
			TargetEmergencyMonths: 6,
			LiquidSavingsMonths:   3,

			YoungAgeMax: 30,
			MidAgeMax:   50,

			RiskExactPoints:    15,
			RiskAdjacentPoints: 10,
			RiskDistantPoints:  5,

			GoalCountPoints: []float64{0, 5, 7, 10},

			EmploymentStability: map[models.EmploymentStatus]float64{
				models.EmploymentEmployed:     3,
				models.EmploymentSelfEmployed: 2,
				models.EmploymentRetired:      2,
				models.EmploymentStudent:      1,
				models.EmploymentUnemployed:   0,
			},

			ExcellentMin: 85,
			GoodMin:      70,
			FairMin:      50,

			SavingsAdviceBelow:    15,
			DebtAdviceBelow:       10,
			EmergencyAdviceBelow:  15,
			RiskAdviceBelow:       10,
			GoalAdviceBelow:       7,
			EmploymentAdviceBelow: 7,
		},

		Risk: RiskParams{
			BondVolatility:       0.04,
			RealEstateVolatility: 0.15,
			CryptoVolatility:     0.80,

			BondReturn:       0.05,
			CashReturn:       0.02,
			RealEstateReturn: 0.08,
			CryptoReturn:     0.15,

			RiskScoreScale: 50,

			ClassCountWeight:    0.60,
			ConcentrationWeight: 0.40,
			AssetClassCount:     5,

			ToleranceMismatchThreshold: 2,
			ToleranceTargetScore: map[models.RiskTolerance]float64{
				models.RiskToleranceConservative: 3,
				models.RiskToleranceModerate:     5.5,
				models.RiskToleranceAggressive:   8,
			},

			StockRuleBase:  100,
			StockRuleSlack: 20,

			CashFloor:  0.05,
			CashCeil:   0.20,
			CryptoCap:  0.10,
			MinSymbols: 5,

			SharpeAdviceBelow: 0.5,
			EmergencyMonths:   6,
		},

		Goal: GoalParams{
			ChallengingOverage: 1.5,
			ShortHorizonMax:    2,
			MediumHorizonMax:   5,
		},

		Recommend: RecommendParams{
			SegmentCount:        4,
			MinPeers:            5,
			SimilarityThreshold: 0.8,
			TopN:                3,
			MaxIterations:       100,
		},
	}
}

// riskIndex orders tolerances for adjacency comparisons.
func riskIndex(r models.RiskTolerance) int {
	switch r {
	case models.RiskToleranceConservative:
		return 0
	case models.RiskToleranceModerate:
		return 1
	case models.RiskToleranceAggressive:
		return 2
	}
	return 1
}

// experienceIndex orders experience levels.
func experienceIndex(e models.ExperienceLevel) int {
	switch e {
	case models.ExperienceBeginner:
		return 0
	case models.ExperienceIntermediate:
		return 1
	case models.ExperienceAdvanced:
		return 2
	}
	return 0
}

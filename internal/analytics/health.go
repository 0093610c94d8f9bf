package analytics

import (
	"fmt"
	"math"

	"finsight/internal/models"
)

// Component keys in a HealthReport.
const (
	ComponentSavingsRate   = "savings_rate"
	ComponentDebtRatio     = "debt_ratio"
	ComponentEmergencyFund = "emergency_fund"
	ComponentRiskAlignment = "risk_alignment"
	ComponentGoalSetting   = "goal_setting"
	ComponentEmployment    = "employment_stability"
)

// healthComponentOrder fixes the evaluation order so recommendations
// come out in a stable sequence.
var healthComponentOrder = []string{
	ComponentSavingsRate,
	ComponentDebtRatio,
	ComponentEmergencyFund,
	ComponentRiskAlignment,
	ComponentGoalSetting,
	ComponentEmployment,
}

// ComponentScore is one component's contribution to the health score.
type ComponentScore struct {
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"max_points"`
	Detail    string  `json:"detail"`
}

// HealthReport is the result of scoring a financial profile.
type HealthReport struct {
	OverallScore    float64                   `json:"overall_score"`
	Rating          string                    `json:"rating"`
	Components      map[string]ComponentScore `json:"components"`
	Recommendations []string                  `json:"recommendations"`
}

// ScoreHealth scores the profile's financial health on a 0-100 scale.
// The score is the sum of six weighted components; each component also
// carries a human-readable detail, and components that fall below their
// remediation threshold contribute a recommendation.
func ScoreHealth(profile *models.FinancialProfile, a Assumptions) *HealthReport {
	h := a.Health
	components := map[string]ComponentScore{
		ComponentSavingsRate:   scoreSavingsRate(profile, h),
		ComponentDebtRatio:     scoreDebtRatio(profile, h),
		ComponentEmergencyFund: scoreEmergencyFund(profile, h),
		ComponentRiskAlignment: scoreRiskAlignment(profile, h),
		ComponentGoalSetting:   scoreGoalSetting(profile, h),
		ComponentEmployment:    scoreEmployment(profile, h),
	}

	var total float64
	for _, c := range components {
		total += c.Points
	}
	total = math.Round(total*10) / 10

	return &HealthReport{
		OverallScore:    total,
		Rating:          healthRating(total, h),
		Components:      components,
		Recommendations: healthRecommendations(components, h),
	}
}

func healthRating(score float64, h HealthParams) string {
	switch {
	case score >= h.ExcellentMin:
		return "Excellent"
	case score >= h.GoodMin:
		return "Good"
	case score >= h.FairMin:
		return "Fair"
	default:
		return "Poor"
	}
}

// scoreSavingsRate scales linearly with annual savings rate, full
// points at the target rate.
func scoreSavingsRate(p *models.FinancialProfile, h HealthParams) ComponentScore {
	var rate float64
	if p.AnnualIncome > 0 {
		rate = float64(p.MonthlySavings*12) / float64(p.AnnualIncome)
	}
	points := clamp(rate/h.TargetSavingsRate, 0, 1) * h.SavingsRatePoints
	return ComponentScore{
		Points:    round1(points),
		MaxPoints: h.SavingsRatePoints,
		Detail:    fmt.Sprintf("Saving %.1f%% of income (target %.0f%%)", rate*100, h.TargetSavingsRate*100),
	}
}

// scoreDebtRatio scales inversely with the debt-to-income ratio, zero
// points at or above the ceiling.
func scoreDebtRatio(p *models.FinancialProfile, h HealthParams) ComponentScore {
	ratio := 1.0 // no income with debt is treated as maximal leverage
	switch {
	case p.DebtAmount == 0:
		ratio = 0
	case p.AnnualIncome > 0:
		ratio = float64(p.DebtAmount) / float64(p.AnnualIncome)
	}
	points := clamp(1-ratio/h.MaxDebtRatio, 0, 1) * h.DebtRatioPoints
	return ComponentScore{
		Points:    round1(points),
		MaxPoints: h.DebtRatioPoints,
		Detail:    fmt.Sprintf("Debt is %.1f%% of annual income (ceiling %.0f%%)", ratio*100, h.MaxDebtRatio*100),
	}
}

// scoreEmergencyFund estimates liquid savings as a multiple of the
// monthly contribution and scores the months of expense coverage.
func scoreEmergencyFund(p *models.FinancialProfile, h HealthParams) ComponentScore {
	expenses := monthlyExpenses(p)
	months := h.TargetEmergencyMonths // no expenses means any cushion covers indefinitely
	if expenses > 0 {
		months = float64(p.MonthlySavings) * h.LiquidSavingsMonths / float64(expenses)
	}
	points := clamp(months/h.TargetEmergencyMonths, 0, 1) * h.EmergencyFundPoints
	return ComponentScore{
		Points:    round1(points),
		MaxPoints: h.EmergencyFundPoints,
		Detail:    fmt.Sprintf("Roughly %.1f months of expenses covered (target %.0f)", months, h.TargetEmergencyMonths),
	}
}

// scoreRiskAlignment compares stated tolerance against the age-band
// target: Aggressive when young, Moderate mid-career, Conservative later.
func scoreRiskAlignment(p *models.FinancialProfile, h HealthParams) ComponentScore {
	target := targetTolerance(p.Age, h)
	distance := riskIndex(p.RiskTolerance) - riskIndex(target)
	if distance < 0 {
		distance = -distance
	}

	var points float64
	switch distance {
	case 0:
		points = h.RiskExactPoints
	case 1:
		points = h.RiskAdjacentPoints
	default:
		points = h.RiskDistantPoints
	}
	return ComponentScore{
		Points:    points,
		MaxPoints: h.RiskAlignmentPoints,
		Detail:    fmt.Sprintf("%s tolerance vs %s typical for age %d", p.RiskTolerance, target, p.Age),
	}
}

// targetTolerance is the tolerance typically suited to the given age.
func targetTolerance(age int, h HealthParams) models.RiskTolerance {
	switch {
	case age < h.YoungAgeMax:
		return models.RiskToleranceAggressive
	case age < h.MidAgeMax:
		return models.RiskToleranceModerate
	default:
		return models.RiskToleranceConservative
	}
}

// scoreGoalSetting awards points by the number of distinct goal labels.
func scoreGoalSetting(p *models.FinancialProfile, h HealthParams) ComponentScore {
	count := distinctGoalCount(p)
	idx := count
	if idx >= len(h.GoalCountPoints) {
		idx = len(h.GoalCountPoints) - 1
	}
	return ComponentScore{
		Points:    h.GoalCountPoints[idx],
		MaxPoints: h.GoalPoints,
		Detail:    fmt.Sprintf("%d financial goals defined", count),
	}
}

func distinctGoalCount(p *models.FinancialProfile) int {
	seen := make(map[string]struct{}, len(p.FinancialGoals))
	for _, g := range p.FinancialGoals {
		if g != "" {
			seen[g] = struct{}{}
		}
	}
	return len(seen)
}

// scoreEmployment grades income stability by employment status.
func scoreEmployment(p *models.FinancialProfile, h HealthParams) ComponentScore {
	maxStability := 3.0
	stability := h.EmploymentStability[p.EmploymentStatus]
	points := clamp(stability/maxStability, 0, 1) * h.EmploymentPoints
	return ComponentScore{
		Points:    round1(points),
		MaxPoints: h.EmploymentPoints,
		Detail:    fmt.Sprintf("Employment status: %s", p.EmploymentStatus),
	}
}

// healthRecommendations emits one recommendation per component that
// scored below its remediation threshold, in component order.
func healthRecommendations(components map[string]ComponentScore, h HealthParams) []string {
	advice := map[string]struct {
		below float64
		text  string
	}{
		ComponentSavingsRate:   {h.SavingsAdviceBelow, "Increase your savings rate; aim for at least 20% of income"},
		ComponentDebtRatio:     {h.DebtAdviceBelow, "Focus on paying down high-interest debt to reduce your debt-to-income ratio"},
		ComponentEmergencyFund: {h.EmergencyAdviceBelow, "Build an emergency fund covering 6 months of expenses"},
		ComponentRiskAlignment: {h.RiskAdviceBelow, "Revisit your risk tolerance; it is unusual for your age and investment horizon"},
		ComponentGoalSetting:   {h.GoalAdviceBelow, "Define specific financial goals to guide your savings and investment decisions"},
		ComponentEmployment:    {h.EmploymentAdviceBelow, "Consider ways to stabilize or diversify your income sources"},
	}

	var recs []string
	for _, key := range healthComponentOrder {
		a := advice[key]
		if components[key].Points < a.below {
			recs = append(recs, a.text)
		}
	}
	return recs
}

// monthlyExpenses estimates spending as income net of savings, in cents.
func monthlyExpenses(p *models.FinancialProfile) int64 {
	annual := p.AnnualIncome - p.MonthlySavings*12
	if annual < 0 {
		annual = 0
	}
	return annual / 12
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

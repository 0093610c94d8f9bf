package analytics

import (
	"fmt"
	"math"
	"sort"

	"finsight/internal/models"
)

// Feasibility grades whether a goal's required monthly savings fits the
// profile's stated capacity.
type Feasibility string

const (
	FeasibilityFeasible    Feasibility = "Feasible"
	FeasibilityChallenging Feasibility = "Challenging"
	FeasibilityUnrealistic Feasibility = "Unrealistic"
)

// FundingStatus classifies a goal's share of the waterfall allocation.
type FundingStatus string

const (
	FundingFull    FundingStatus = "Fully Funded"
	FundingPartial FundingStatus = "Partially Funded"
	FundingNone    FundingStatus = "Unfunded"
)

// InvestmentStrategy is the horizon- and tolerance-appropriate approach
// for one goal.
type InvestmentStrategy struct {
	TimeHorizon          string         `json:"time_horizon"`
	RiskLevel            string         `json:"risk_level"`
	RecommendedAllocation map[string]int `json:"recommended_allocation"`
	InvestmentVehicles   []string       `json:"investment_vehicles"`
	RebalancingFrequency string         `json:"rebalancing_frequency"`
}

// GoalPlan is the savings plan for a single goal. Monetary fields are
// in cents.
type GoalPlan struct {
	GoalName             string             `json:"goal_name"`
	Priority             models.GoalPriority `json:"priority"`
	TargetAmount         int64              `json:"target_amount"`
	FutureValueNeeded    int64              `json:"future_value_needed"`
	TimelineYears        float64            `json:"timeline_years"`
	MonthlySavingsNeeded int64              `json:"monthly_savings_needed"`
	Feasibility          Feasibility        `json:"feasibility"`
	Strategy             InvestmentStrategy `json:"strategy"`
	Recommendations      []string           `json:"recommendations"`
}

// GoalFunding is one goal's slice of the optimized budget.
type GoalFunding struct {
	GoalName         string        `json:"goal_name"`
	Priority         models.GoalPriority `json:"priority"`
	TimelineYears    float64       `json:"timeline_years"`
	RequiredMonthly  int64         `json:"required_monthly"`
	AllocatedMonthly int64         `json:"allocated_monthly"`
	PercentOfBudget  float64       `json:"percent_of_budget"`
	FundingRatio     float64       `json:"funding_ratio"`
	Status           FundingStatus `json:"status"`
}

// GoalAllocation is the result of optimizing the monthly budget across
// all goals.
type GoalAllocation struct {
	MonthlyBudget   int64         `json:"monthly_budget"`
	TotalAllocated  int64         `json:"total_allocated"`
	RemainingBudget int64         `json:"remaining_budget"`
	Goals           []GoalFunding `json:"goals"`
	Recommendations []string      `json:"recommendations"`
}

// GoalProgressReport projects an in-flight goal to its deadline.
type GoalProgressReport struct {
	GoalName           string  `json:"goal_name"`
	CurrentAmount      int64   `json:"current_amount"`
	TargetAmount       int64   `json:"target_amount"`
	ProjectedAmount    int64   `json:"projected_amount"`
	ProgressPercent    float64 `json:"progress_percent"`
	OnTrack            bool    `json:"on_track"`
	ProjectedShortfall int64   `json:"projected_shortfall"`
}

// PlanGoal computes the savings plan for one goal against the profile's
// monthly capacity. The target is inflated to its future value at the
// goal deadline, then discounted into a level monthly contribution at
// the assumed market return.
func PlanGoal(profile *models.FinancialProfile, goal models.Goal, a Assumptions) *GoalPlan {
	fv := futureValue(float64(goal.TargetAmount), a.InflationRate, goal.TimelineYears)
	pmt := monthlyPayment(fv, a.MarketReturn, goal.TimelineYears)

	required := int64(math.Round(pmt))
	plan := &GoalPlan{
		GoalName:             goal.Name,
		Priority:             goal.Priority,
		TargetAmount:         goal.TargetAmount,
		FutureValueNeeded:    int64(math.Round(fv)),
		TimelineYears:        goal.TimelineYears,
		MonthlySavingsNeeded: required,
		Feasibility:          feasibility(required, profile.MonthlySavings, a.Goal),
		Strategy:             strategyFor(goal.TimelineYears, profile.RiskTolerance, a.Goal),
	}
	plan.Recommendations = goalRecommendations(plan, profile)
	return plan
}

// futureValue inflates a present-day amount over the timeline.
func futureValue(amount, inflation, years float64) float64 {
	return amount * math.Pow(1+inflation, years)
}

// monthlyPayment is the level contribution that grows to fv over the
// timeline at the given annual return, compounded monthly. A zero or
// negative return degenerates to straight division.
func monthlyPayment(fv, annualReturn, years float64) float64 {
	months := years * 12
	if months <= 0 {
		return fv
	}
	r := annualReturn / 12
	if r <= 0 {
		return fv / months
	}
	return fv * r / (math.Pow(1+r, months) - 1)
}

// feasibility compares required monthly savings with stated capacity.
func feasibility(required, available int64, g GoalParams) Feasibility {
	switch {
	case required <= available:
		return FeasibilityFeasible
	case float64(required) <= float64(available)*g.ChallengingOverage:
		return FeasibilityChallenging
	default:
		return FeasibilityUnrealistic
	}
}

// strategyFor selects an approach by horizon, tempered by tolerance.
func strategyFor(years float64, tolerance models.RiskTolerance, g GoalParams) InvestmentStrategy {
	switch {
	case years <= g.ShortHorizonMax:
		return InvestmentStrategy{
			TimeHorizon:          "Short-term",
			RiskLevel:            "Low",
			RecommendedAllocation: map[string]int{"stocks": 20, "bonds": 50, "cash": 30},
			InvestmentVehicles:   []string{"High-yield savings", "Short-term bond funds", "Money market funds"},
			RebalancingFrequency: "Quarterly",
		}
	case years <= g.MediumHorizonMax:
		stocks := 60
		if tolerance == models.RiskToleranceConservative {
			stocks = 40
		}
		return InvestmentStrategy{
			TimeHorizon:          "Medium-term",
			RiskLevel:            "Moderate",
			RecommendedAllocation: map[string]int{"stocks": stocks, "bonds": 90 - stocks, "cash": 10},
			InvestmentVehicles:   []string{"Balanced funds", "Target date funds", "Bond ETFs"},
			RebalancingFrequency: "Semi-annually",
		}
	default:
		stocks := 80
		if tolerance == models.RiskToleranceConservative {
			stocks = 60
		}
		return InvestmentStrategy{
			TimeHorizon:          "Long-term",
			RiskLevel:            "Moderate-High",
			RecommendedAllocation: map[string]int{"stocks": stocks, "bonds": 95 - stocks, "cash": 5},
			InvestmentVehicles:   []string{"Stock index funds", "Growth ETFs", "Retirement accounts"},
			RebalancingFrequency: "Annually",
		}
	}
}

func goalRecommendations(plan *GoalPlan, profile *models.FinancialProfile) []string {
	var recs []string
	switch plan.Feasibility {
	case FeasibilityUnrealistic:
		recs = append(recs, "Extend the timeline or reduce the target; the required savings far exceed your current capacity")
	case FeasibilityChallenging:
		recs = append(recs, "This goal will take most of your savings capacity; look for expense reductions or additional income")
	}
	if plan.TimelineYears > 10 && profile.RiskTolerance == models.RiskToleranceConservative {
		recs = append(recs, "With a long horizon, a slightly higher stock allocation could reduce the required monthly savings")
	}
	return recs
}

// OptimizeGoals distributes the profile's monthly savings across goals
// by a priority waterfall: higher priority first, then shorter
// timelines, then submission order. Each goal receives up to its
// required amount until the budget runs out.
func OptimizeGoals(profile *models.FinancialProfile, goals []models.Goal, a Assumptions) *GoalAllocation {
	budget := profile.MonthlySavings
	alloc := &GoalAllocation{MonthlyBudget: budget}
	if len(goals) == 0 {
		alloc.RemainingBudget = budget
		alloc.Recommendations = []string{"Define financial goals to put your monthly savings to work"}
		return alloc
	}

	ordered := make([]models.Goal, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority.Weight() != ordered[j].Priority.Weight() {
			return ordered[i].Priority.Weight() > ordered[j].Priority.Weight()
		}
		return ordered[i].TimelineYears < ordered[j].TimelineYears
	})

	remaining := budget
	for _, goal := range ordered {
		plan := PlanGoal(profile, goal, a)
		required := plan.MonthlySavingsNeeded

		allocated := required
		if allocated > remaining {
			allocated = remaining
		}
		if allocated < 0 {
			allocated = 0
		}
		remaining -= allocated

		funding := GoalFunding{
			GoalName:         goal.Name,
			Priority:         goal.Priority,
			TimelineYears:    goal.TimelineYears,
			RequiredMonthly:  required,
			AllocatedMonthly: allocated,
		}
		if budget > 0 {
			funding.PercentOfBudget = round1(float64(allocated) / float64(budget) * 100)
		}
		if required > 0 {
			funding.FundingRatio = float64(allocated) / float64(required)
		} else {
			funding.FundingRatio = 1
		}
		switch {
		case funding.FundingRatio >= 1:
			funding.Status = FundingFull
		case allocated > 0:
			funding.Status = FundingPartial
		default:
			funding.Status = FundingNone
		}

		alloc.Goals = append(alloc.Goals, funding)
	}

	alloc.TotalAllocated = budget - remaining
	alloc.RemainingBudget = remaining
	alloc.Recommendations = allocationRecommendations(alloc)
	return alloc
}

func allocationRecommendations(alloc *GoalAllocation) []string {
	var unfunded, partial int
	for _, g := range alloc.Goals {
		switch g.Status {
		case FundingNone:
			unfunded++
		case FundingPartial:
			partial++
		}
	}

	var recs []string
	if unfunded > 0 {
		recs = append(recs, fmt.Sprintf("%d goal(s) received no funding; consider extending timelines, lowering targets, or increasing savings", unfunded))
	}
	if partial > 0 {
		recs = append(recs, fmt.Sprintf("%d goal(s) are only partially funded and will miss their deadlines at the current pace", partial))
	}
	if alloc.RemainingBudget > 0 && unfunded == 0 && partial == 0 {
		recs = append(recs, "All goals are fully funded with budget to spare; consider raising targets or adding a new goal")
	}
	return recs
}

// GoalProgress projects the current balance plus ongoing contributions
// to the goal deadline at the assumed market return.
func GoalProgress(goal models.Goal, currentAmount, monthlyContribution int64, a Assumptions) *GoalProgressReport {
	fv := futureValue(float64(goal.TargetAmount), a.InflationRate, goal.TimelineYears)

	months := goal.TimelineYears * 12
	r := a.MarketReturn / 12

	// Grow the existing balance and the contribution stream separately.
	projected := float64(currentAmount) * math.Pow(1+r, months)
	if r > 0 {
		projected += float64(monthlyContribution) * (math.Pow(1+r, months) - 1) / r
	} else {
		projected += float64(monthlyContribution) * months
	}

	report := &GoalProgressReport{
		GoalName:        goal.Name,
		CurrentAmount:   currentAmount,
		TargetAmount:    goal.TargetAmount,
		ProjectedAmount: int64(math.Round(projected)),
	}
	if fv > 0 {
		report.ProgressPercent = round1(clamp(float64(currentAmount)/fv, 0, 1) * 100)
	}
	report.OnTrack = projected >= fv
	if !report.OnTrack {
		report.ProjectedShortfall = int64(math.Round(fv - projected))
	}
	return report
}

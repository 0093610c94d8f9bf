package analytics

import (
	"fmt"
	"sort"

	"finsight/internal/catalog"
	apperrors "finsight/internal/errors"
	"finsight/internal/models"
)

// RecommendationType selects which catalog categories to rank.
type RecommendationType string

const (
	RecommendInvestment    RecommendationType = "investment"
	RecommendInsurance     RecommendationType = "insurance"
	RecommendComprehensive RecommendationType = "comprehensive"
)

// ProductScore is one ranked product with the reasons it scored.
type ProductScore struct {
	Product              catalog.Product `json:"product"`
	Score                float64         `json:"score"`
	Reasons              []string        `json:"reasons"`
	AllocationSuggestion string          `json:"allocation_suggestion,omitempty"`
}

// PortfolioSuggestions is the profile-level allocation guidance that
// accompanies investment recommendations.
type PortfolioSuggestions struct {
	AssetAllocation     map[string]int `json:"asset_allocation"`
	DiversificationTips []string       `json:"diversification_tips"`
	ImplementationOrder []string       `json:"implementation_order"`
}

// RecommendationSet is the full output of a recommendation run.
type RecommendationSet struct {
	Type            RecommendationType    `json:"type"`
	Segment         *int                  `json:"segment,omitempty"`
	Investments     []ProductScore        `json:"investments,omitempty"`
	Insurance       []ProductScore        `json:"insurance,omitempty"`
	Portfolio       *PortfolioSuggestions `json:"portfolio,omitempty"`
	NextSteps       []string              `json:"next_steps"`
	Diagnostics     []string              `json:"diagnostics,omitempty"`
}

// Recommend ranks catalog products for the profile. Content-based
// scoring always runs; when enough peers are supplied, collaborative
// scores from segment neighbors are fused in by averaging. Products
// above the profile's experience level are never returned. An empty
// catalog yields an empty set with a diagnostic rather than an error.
func Recommend(profile *models.FinancialProfile, recType RecommendationType, products []catalog.Product, peers []*models.FinancialProfile, a Assumptions) (*RecommendationSet, error) {
	switch recType {
	case RecommendInvestment, RecommendInsurance, RecommendComprehensive:
	default:
		return nil, apperrors.ErrInvalidRecommendationType
	}

	set := &RecommendationSet{Type: recType}
	if len(products) == 0 {
		set.Diagnostics = append(set.Diagnostics, "product catalog is empty; no products to recommend")
		set.NextSteps = nextSteps(profile, nil)
		return set, nil
	}

	if recType == RecommendInvestment || recType == RecommendComprehensive {
		set.Investments = rankInvestments(profile, products, peers, set, a)
		set.Portfolio = portfolioSuggestions(profile, a)
	}
	if recType == RecommendInsurance || recType == RecommendComprehensive {
		set.Insurance = rankInsurance(profile, products, a.Recommend.TopN)
	}
	set.NextSteps = nextSteps(profile, set.Investments)
	return set, nil
}

// rankInvestments fuses content and collaborative scores over the
// investment catalog, recording the segment on the set when peers were
// usable.
func rankInvestments(profile *models.FinancialProfile, products []catalog.Product, peers []*models.FinancialProfile, set *RecommendationSet, a Assumptions) []ProductScore {
	investments := catalog.Investments(products)

	scored := make([]ProductScore, 0, len(investments))
	for _, p := range investments {
		if experienceIndex(p.MinExperience) > experienceIndex(profile.InvestmentExperience) {
			continue
		}
		score, reasons := contentScore(profile, p)
		scored = append(scored, ProductScore{Product: p, Score: score, Reasons: reasons})
	}

	if votes, segment, ok := collaborativeVotes(profile, investments, peers, a); ok {
		set.Segment = &segment
		maxVotes := 0
		for _, v := range votes {
			if v > maxVotes {
				maxVotes = v
			}
		}
		for i := range scored {
			v := votes[scored[i].Product.ID]
			if maxVotes == 0 || v == 0 {
				continue
			}
			collab := float64(v) / float64(maxVotes)
			scored[i].Score = (scored[i].Score + collab) / 2
			scored[i].Reasons = append(scored[i].Reasons, "Popular among investors with a similar profile")
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > a.Recommend.TopN {
		scored = scored[:a.Recommend.TopN]
	}
	return scored
}

// contentScore rates one investment product for the profile on [0, 1].
func contentScore(profile *models.FinancialProfile, p catalog.Product) (float64, []string) {
	score := 0.5
	var reasons []string

	// Risk band fit against stated tolerance.
	target := toleranceBand(profile.RiskTolerance)
	distance := p.RiskBand.Index() - target.Index()
	if distance < 0 {
		distance = -distance
	}
	switch distance {
	case 0:
		score += 0.20
		reasons = append(reasons, fmt.Sprintf("Risk level matches your %s tolerance", profile.RiskTolerance))
	case 1:
		score += 0.10
	default:
		score -= 0.10
	}

	// Age tilts toward growth when young, preservation when older.
	switch {
	case profile.Age < 30 && (p.RiskBand == catalog.RiskBandHigh || p.RiskBand == catalog.RiskBandModerateHigh):
		score += 0.10
		reasons = append(reasons, "Growth-oriented choice suits your long investment horizon")
	case profile.Age >= 50 && p.RiskBand.Index() <= catalog.RiskBandModerate.Index():
		score += 0.10
		reasons = append(reasons, "Lower-risk choice suits a shorter investment horizon")
	}

	// Accessibility and cost.
	if profile.AnnualIncome < 5_000_000 && p.MinInvestment <= 10_000 {
		score += 0.05
		reasons = append(reasons, "Low minimum investment")
	}
	if profile.AnnualIncome > 10_000_000 && p.ExpenseRatio < 0.10 {
		score += 0.05
		reasons = append(reasons, "Low expense ratio preserves returns at scale")
	}

	// Horizon from the nearest stored goal.
	horizon := nearestGoalYears(profile)
	switch {
	case horizon <= 2 && p.ExpectedReturnBand == catalog.ReturnBandLow:
		score += 0.10
		reasons = append(reasons, "Stability fits your near-term goal")
	case horizon > 5 && p.ExpectedReturnBand == catalog.ReturnBandHigh:
		score += 0.10
		reasons = append(reasons, "Higher expected returns fit your long-term goals")
	}

	// Stated goal labels the product is designed for.
	for _, label := range p.GoalLabels {
		if profile.HasGoalLabel(label) {
			score += 0.15
			reasons = append(reasons, fmt.Sprintf("Designed for your %s goal", label))
			break
		}
	}

	return clamp(score, 0, 1), reasons
}

// toleranceBand maps stated tolerance onto the catalog risk scale.
func toleranceBand(t models.RiskTolerance) catalog.RiskBand {
	switch t {
	case models.RiskToleranceConservative:
		return catalog.RiskBandLow
	case models.RiskToleranceAggressive:
		return catalog.RiskBandHigh
	default:
		return catalog.RiskBandModerate
	}
}

// nearestGoalYears is the shortest stored goal timeline, or a long
// default when the profile has no dated goals.
func nearestGoalYears(profile *models.FinancialProfile) float64 {
	years := 10.0
	for _, g := range profile.Goals {
		if g.TimelineYears > 0 && g.TimelineYears < years {
			years = g.TimelineYears
		}
	}
	return years
}

// collaborativeVotes counts which products the profile's segment
// neighbors would themselves be recommended. Returns false when there
// are too few peers to segment meaningfully.
func collaborativeVotes(profile *models.FinancialProfile, investments []catalog.Product, peers []*models.FinancialProfile, a Assumptions) (map[string]int, int, bool) {
	if len(peers) < a.Recommend.MinPeers {
		return nil, 0, false
	}

	model := FitSegments(peers, a.Recommend.SegmentCount, a.Recommend.MaxIterations)
	if model == nil {
		return nil, 0, false
	}
	segment := model.Assign(profile)
	target := model.Standardize(profile)

	votes := make(map[string]int)
	for _, peer := range peers {
		if model.Assign(peer) != segment {
			continue
		}
		if CosineSimilarity(target, model.Standardize(peer)) < a.Recommend.SimilarityThreshold {
			continue
		}
		for _, id := range topProductIDs(peer, investments, a.Recommend.TopN) {
			votes[id]++
		}
	}
	return votes, segment, true
}

// topProductIDs is a peer's own content-based shortlist, used as their
// implied holdings.
func topProductIDs(peer *models.FinancialProfile, investments []catalog.Product, n int) []string {
	type ranked struct {
		id    string
		score float64
	}
	var rs []ranked
	for _, p := range investments {
		if experienceIndex(p.MinExperience) > experienceIndex(peer.InvestmentExperience) {
			continue
		}
		score, _ := contentScore(peer, p)
		rs = append(rs, ranked{id: p.ID, score: score})
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].score > rs[j].score })
	if len(rs) > n {
		rs = rs[:n]
	}
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.id
	}
	return ids
}

// rankInsurance applies the situational insurance heuristics.
func rankInsurance(profile *models.FinancialProfile, products []catalog.Product, topN int) []ProductScore {
	var scored []ProductScore
	for _, p := range catalog.Insurance(products) {
		var score float64
		var reasons []string
		var suggestion string

		switch p.Type {
		case "Term Life":
			score = 0.5
			if profile.Age < 40 {
				score += 0.3
				reasons = append(reasons, "Affordable coverage while premiums are low at your age")
			}
			coverage := profile.AnnualIncome*10 + profile.DebtAmount
			suggestion = fmt.Sprintf("Coverage of roughly $%d (10x income plus outstanding debt)", coverage/100)
		case "Permanent Life":
			score = 0.3
			if profile.Age >= 40 {
				score += 0.2
				reasons = append(reasons, "Permanent coverage becomes more relevant with age")
			}
			if profile.HasGoalLabel("Estate Planning") {
				score += 0.3
				reasons = append(reasons, "Cash value component supports your estate planning goal")
			}
		case "Disability":
			score = 0.4
			working := profile.EmploymentStatus == models.EmploymentEmployed ||
				profile.EmploymentStatus == models.EmploymentSelfEmployed
			if working && profile.AnnualIncome > 3_000_000 {
				score += 0.4
				reasons = append(reasons, "Protects your primary asset: the ability to earn income")
			}
			suggestion = "Aim for 60-70% income replacement"
		default:
			score = 0.3
		}

		scored = append(scored, ProductScore{
			Product:              p,
			Score:                clamp(score, 0, 1),
			Reasons:              reasons,
			AllocationSuggestion: suggestion,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// portfolioSuggestions derives a target allocation from the age rule,
// tilted by tolerance.
func portfolioSuggestions(profile *models.FinancialProfile, a Assumptions) *PortfolioSuggestions {
	stocks := int(a.Risk.StockRuleBase) - profile.Age
	switch profile.RiskTolerance {
	case models.RiskToleranceConservative:
		stocks -= 10
	case models.RiskToleranceAggressive:
		stocks += 10
	}
	stocks = int(clamp(float64(stocks), 20, 90))
	bonds := 95 - stocks

	return &PortfolioSuggestions{
		AssetAllocation: map[string]int{"stocks": stocks, "bonds": bonds, "cash": 5},
		DiversificationTips: []string{
			"Spread stock holdings across sectors and geographies",
			"Prefer broad index funds over concentrated single-stock bets",
			"Rebalance when any class drifts more than 5% from target",
		},
		ImplementationOrder: []string{
			"Build the emergency fund first",
			"Capture any employer retirement match",
			"Fill tax-advantaged accounts before taxable ones",
		},
	}
}

// nextSteps builds the action checklist appended to every set.
func nextSteps(profile *models.FinancialProfile, investments []ProductScore) []string {
	steps := []string{}

	var rate float64
	if profile.AnnualIncome > 0 {
		rate = float64(profile.MonthlySavings*12) / float64(profile.AnnualIncome)
	}
	if rate < 0.10 {
		steps = append(steps, "Increase your savings rate before adding investment risk")
	}
	if profile.MonthlySavings > 0 {
		steps = append(steps, fmt.Sprintf("Set up an automatic monthly transfer of $%d into investments", profile.MonthlySavings/100))
	}
	if len(investments) > 0 {
		steps = append(steps, fmt.Sprintf("Start with %s and add positions gradually", investments[0].Product.Name))
	}
	if profile.HasGoalLabel("Retirement Planning") {
		steps = append(steps, "Maximize contributions to tax-advantaged retirement accounts")
	}
	steps = append(steps, "Review your portfolio and goals at least annually")
	return steps
}

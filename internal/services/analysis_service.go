package services

import (
	"context"
	"sort"

	"finsight/internal/analytics"
	"finsight/internal/catalog"
	"finsight/internal/logger"
	"finsight/internal/marketdata"
	"finsight/internal/uuid"
)

// peerSampleLimit bounds how many peer profiles feed segmentation.
const peerSampleLimit = 500

// analysisService orchestrates the analytics over stored profiles and
// fetched market data.
type analysisService struct {
	profiles     ProfileServicer
	provider     marketdata.Provider
	products     []catalog.Product
	assumptions  analytics.Assumptions
	lookbackDays int
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(profiles ProfileServicer, provider marketdata.Provider, products []catalog.Product, assumptions analytics.Assumptions, lookbackDays int) AnalysisServicer {
	return &analysisService{
		profiles:     profiles,
		provider:     provider,
		products:     products,
		assumptions:  assumptions,
		lookbackDays: lookbackDays,
	}
}

// HealthScore scores the user's stored profile.
func (s *analysisService) HealthScore(userID uint) (*analytics.HealthReport, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	return analytics.ScoreHealth(profile, s.assumptions), nil
}

// AnalyzePortfolio fetches price history for the submitted holdings and
// runs the risk analysis. Symbols the provider could not serve come
// back synthetic and are listed on the result.
func (s *analysisService) AnalyzePortfolio(ctx context.Context, userID uint, portfolio analytics.Portfolio) (*PortfolioAnalysis, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	var series map[string]marketdata.Series
	if symbols := portfolio.Symbols(); len(symbols) > 0 {
		var fetchErrors []marketdata.FetchError
		series, fetchErrors = s.provider.FetchSeries(ctx, symbols, s.lookbackDays)
		for _, fe := range fetchErrors {
			logger.Get().Warnw("price history fetch failed", "symbol", fe.Symbol, "error", fe.Err)
		}
	}

	report, err := analytics.AnalyzePortfolio(profile, portfolio, series, s.assumptions)
	if err != nil {
		return nil, err
	}

	var synthetic []string
	for symbol, sr := range series {
		if sr.Synthetic {
			synthetic = append(synthetic, symbol)
		}
	}
	sort.Strings(synthetic)

	return &PortfolioAnalysis{
		AnalysisID:       uuid.New(),
		Report:           report,
		SyntheticSymbols: synthetic,
	}, nil
}

// PlanGoals produces a savings plan for each stored goal.
func (s *analysisService) PlanGoals(userID uint) ([]*analytics.GoalPlan, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.profiles.GetGoals(userID)
	if err != nil {
		return nil, err
	}

	plans := make([]*analytics.GoalPlan, 0, len(goals))
	for _, goal := range goals {
		plans = append(plans, analytics.PlanGoal(profile, goal, s.assumptions))
	}
	return plans, nil
}

// OptimizeGoals runs the budget waterfall over all stored goals.
func (s *analysisService) OptimizeGoals(userID uint) (*analytics.GoalAllocation, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.profiles.GetGoals(userID)
	if err != nil {
		return nil, err
	}
	return analytics.OptimizeGoals(profile, goals, s.assumptions), nil
}

// GoalProgress projects one stored goal from its current balance.
func (s *analysisService) GoalProgress(userID, goalID uint, currentAmount, monthlyContribution int64) (*analytics.GoalProgressReport, error) {
	goal, err := s.profiles.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	return analytics.GoalProgress(*goal, currentAmount, monthlyContribution, s.assumptions), nil
}

// Recommend ranks catalog products for the user, using other stored
// profiles as the peer population for collaborative filtering.
func (s *analysisService) Recommend(userID uint, recType analytics.RecommendationType) (*analytics.RecommendationSet, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	peers, err := s.profiles.ListPeerProfiles(userID, peerSampleLimit)
	if err != nil {
		return nil, err
	}
	return analytics.Recommend(profile, recType, s.products, peers, s.assumptions)
}

package services

import (
	"context"

	"finsight/internal/analytics"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// ProfileInput carries the raw fields for creating or replacing a
// financial profile. Monetary fields are in cents.
type ProfileInput struct {
	Name                 string
	Age                  int
	AnnualIncome         int64
	EmploymentStatus     models.EmploymentStatus
	RiskTolerance        models.RiskTolerance
	InvestmentExperience models.ExperienceLevel
	MonthlySavings       int64
	DebtAmount           int64
	FinancialGoals       []string
}

// GoalInput carries the raw fields for creating a savings goal.
type GoalInput struct {
	Name          string
	TargetAmount  int64
	TimelineYears float64
	Priority      models.GoalPriority
}

// ProfileServicer defines the contract for profile and goal management.
// Validation happens here, at construction; everything downstream
// accepts only validated records.
type ProfileServicer interface {
	CreateProfile(userID uint, in ProfileInput) (*models.FinancialProfile, error)
	GetProfile(userID uint) (*models.FinancialProfile, error)
	UpdateProfile(userID uint, in ProfileInput) (*models.FinancialProfile, error)
	DeleteProfile(userID uint) error
	ListPeerProfiles(excludeUserID uint, limit int) ([]*models.FinancialProfile, error)

	AddGoal(userID uint, in GoalInput) (*models.Goal, error)
	GetGoals(userID uint) ([]models.Goal, error)
	ListGoalsPage(userID uint, req pagination.PageRequest) (pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	DeleteGoal(userID, goalID uint) error
}

// PortfolioAnalysis wraps a portfolio report with its run identifier
// and any symbols served from synthetic data.
type PortfolioAnalysis struct {
	AnalysisID       string                     `json:"analysis_id"`
	Report           *analytics.PortfolioReport `json:"report"`
	SyntheticSymbols []string                   `json:"synthetic_symbols,omitempty"`
}

// AnalysisServicer defines the contract for the analysis operations.
// The analytics package does the math; this layer loads validated
// inputs, fetches market data, and stamps run identifiers.
type AnalysisServicer interface {
	HealthScore(userID uint) (*analytics.HealthReport, error)
	AnalyzePortfolio(ctx context.Context, userID uint, portfolio analytics.Portfolio) (*PortfolioAnalysis, error)
	PlanGoals(userID uint) ([]*analytics.GoalPlan, error)
	OptimizeGoals(userID uint) (*analytics.GoalAllocation, error)
	GoalProgress(userID, goalID uint, currentAmount, monthlyContribution int64) (*analytics.GoalProgressReport, error)
	Recommend(userID uint, recType analytics.RecommendationType) (*analytics.RecommendationSet, error)
}

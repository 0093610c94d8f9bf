package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/analytics"
	apperrors "finsight/internal/errors"
	"finsight/internal/services"
)

// AnalysisHandler handles the analysis and recommendation requests
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// PortfolioRequest represents a portfolio snapshot. All amounts are in
// cents; stocks maps ticker symbol to market value.
type PortfolioRequest struct {
	Stocks     map[string]int64 `json:"stocks" binding:"omitempty,dive,keys,max=12,endkeys,min=0"`
	Bonds      int64            `json:"bonds" binding:"min=0"`
	Cash       int64            `json:"cash" binding:"min=0"`
	RealEstate int64            `json:"real_estate" binding:"min=0"`
	Crypto     int64            `json:"crypto" binding:"min=0"`
}

// RecommendationRequest selects which recommendation types to produce.
type RecommendationRequest struct {
	Type string `json:"type" binding:"required,recommendation_type"`
}

// GoalProgressRequest reports the saved balance and contribution rate
// for a goal, in cents.
type GoalProgressRequest struct {
	CurrentAmount       int64 `json:"current_amount" binding:"min=0"`
	MonthlyContribution int64 `json:"monthly_contribution" binding:"min=0"`
}

// HealthScore handles profile health scoring
// @Summary     Score financial health
// @Description Compute the 0-100 health score for the authenticated user's profile
// @Tags        analysis
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.HealthReport
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /analysis/health [get]
func (h *AnalysisHandler) HealthScore(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analysisService.HealthScore(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// AnalyzePortfolio handles portfolio risk analysis
// @Summary     Analyze portfolio
// @Description Compute risk, diversification and allocation metrics for a portfolio snapshot
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PortfolioRequest true "Portfolio holdings in cents"
// @Success     200 {object} services.PortfolioAnalysis
// @Failure     400 {object} ErrorResponse "Invalid or empty portfolio"
// @Router      /analysis/portfolio [post]
func (h *AnalysisHandler) AnalyzePortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	analysis, err := h.analysisService.AnalyzePortfolio(c.Request.Context(), userID, analytics.Portfolio{
		Stocks:     req.Stocks,
		Bonds:      req.Bonds,
		Cash:       req.Cash,
		RealEstate: req.RealEstate,
		Crypto:     req.Crypto,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// PlanGoals handles goal planning
// @Summary     Plan savings goals
// @Description Compute inflation-adjusted targets, required contributions and feasibility for each goal
// @Tags        analysis
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} analytics.GoalPlan
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /analysis/goals [get]
func (h *AnalysisHandler) PlanGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	plans, err := h.analysisService.PlanGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, plans)
}

// OptimizeGoals handles budget allocation across goals
// @Summary     Optimize goal funding
// @Description Allocate the monthly savings budget across goals by priority
// @Tags        analysis
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.GoalAllocation
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /analysis/goals/optimize [get]
func (h *AnalysisHandler) OptimizeGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	allocation, err := h.analysisService.OptimizeGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

// GoalProgress handles goal progress tracking
// @Summary     Track goal progress
// @Description Report progress and projected completion for one goal given current savings
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Param       request body GoalProgressRequest true "Current balance and contribution in cents"
// @Success     200 {object} analytics.GoalProgressReport
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [post]
func (h *AnalysisHandler) GoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.analysisService.GoalProgress(userID, goalID, req.CurrentAmount, req.MonthlyContribution)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Recommendations handles product recommendations
// @Summary     Recommend products
// @Description Produce ranked investment and insurance recommendations for the authenticated user
// @Tags        analysis
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecommendationRequest true "Recommendation type"
// @Success     200 {object} analytics.RecommendationSet
// @Failure     400 {object} ErrorResponse "Invalid recommendation type"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /analysis/recommendations [post]
func (h *AnalysisHandler) Recommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	set, err := h.analysisService.Recommend(userID, analytics.RecommendationType(req.Type))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, set)
}

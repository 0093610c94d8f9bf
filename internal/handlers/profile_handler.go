package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
	"finsight/internal/services"
)

// ProfileHandler handles financial profile and goal requests
type ProfileHandler struct {
	profileService services.ProfileServicer
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService services.ProfileServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// ProfileRequest represents the profile create/update payload.
// Monetary amounts are in cents.
type ProfileRequest struct {
	Name                 string   `json:"name" binding:"required,max=100"`
	Age                  int      `json:"age" binding:"required,min=18,max=100"`
	AnnualIncome         int64    `json:"annual_income" binding:"min=0"`
	EmploymentStatus     string   `json:"employment_status" binding:"required,employment_status"`
	RiskTolerance        string   `json:"risk_tolerance" binding:"required,risk_tolerance"`
	InvestmentExperience string   `json:"investment_experience" binding:"required,experience_level"`
	MonthlySavings       int64    `json:"monthly_savings" binding:"min=0"`
	DebtAmount           int64    `json:"debt_amount" binding:"min=0"`
	FinancialGoals       []string `json:"financial_goals" binding:"max=20,dive,max=100"`
}

// GoalRequest represents the goal creation payload.
type GoalRequest struct {
	Name          string  `json:"name" binding:"required,max=100"`
	TargetAmount  int64   `json:"target_amount" binding:"required,gt=0"`
	TimelineYears float64 `json:"timeline_years" binding:"required,gt=0,lte=60"`
	Priority      string  `json:"priority" binding:"omitempty,goal_priority"`
}

func (r ProfileRequest) toInput() services.ProfileInput {
	return services.ProfileInput{
		Name:                 r.Name,
		Age:                  r.Age,
		AnnualIncome:         r.AnnualIncome,
		EmploymentStatus:     models.EmploymentStatus(r.EmploymentStatus),
		RiskTolerance:        models.RiskTolerance(r.RiskTolerance),
		InvestmentExperience: models.ExperienceLevel(r.InvestmentExperience),
		MonthlySavings:       r.MonthlySavings,
		DebtAmount:           r.DebtAmount,
		FinancialGoals:       r.FinancialGoals,
	}
}

// CreateProfile handles profile creation
// @Summary     Create financial profile
// @Description Create the authenticated user's financial profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProfileRequest true "Profile data"
// @Success     201 {object} models.FinancialProfile
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Profile already exists"
// @Router      /profile [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.CreateProfile(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// GetProfile handles profile retrieval
// @Summary     Get financial profile
// @Description Get the authenticated user's financial profile with goals
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FinancialProfile
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles profile replacement
// @Summary     Update financial profile
// @Description Replace the authenticated user's financial profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ProfileRequest true "Profile data"
// @Success     200 {object} models.FinancialProfile
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteProfile handles profile deletion
// @Summary     Delete financial profile
// @Description Delete the authenticated user's profile and its goals
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Profile deleted"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /profile [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.profileService.DeleteProfile(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateGoal handles goal creation
// @Summary     Add savings goal
// @Description Attach a savings goal to the authenticated user's profile
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal data"
// @Success     201 {object} models.Goal
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /goals [post]
func (h *ProfileHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.profileService.AddGoal(userID, services.GoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		TimelineYears: req.TimelineYears,
		Priority:      models.GoalPriority(req.Priority),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// ListGoals handles goal listing
// @Summary     List savings goals
// @Description List the authenticated user's savings goals, paginated
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Success     200 {object} pagination.PageResponse[models.Goal]
// @Failure     404 {object} ErrorResponse "Profile not found"
// @Router      /goals [get]
func (h *ProfileHandler) ListGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req pagination.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	req.Defaults()

	page, err := h.profileService.ListGoalsPage(userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// DeleteGoal handles goal deletion
// @Summary     Delete savings goal
// @Description Delete one of the authenticated user's savings goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Goal ID"
// @Success     204 "Goal deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *ProfileHandler) DeleteGoal(c *gin.Context) {
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

	if err := h.profileService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

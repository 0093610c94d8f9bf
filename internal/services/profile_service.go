package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "finsight/internal/errors"
	"finsight/internal/models"
	"finsight/internal/pagination"
)

const (
	minAge = 18
	maxAge = 100
)

// profileService handles financial profile and goal management.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// CreateProfile validates and stores a user's financial profile. Each
// user has at most one profile.
func (s *profileService) CreateProfile(userID uint, in ProfileInput) (*models.FinancialProfile, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.FinancialProfile{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrProfileExists
	}

	profile := &models.FinancialProfile{
		UserID:               userID,
		Name:                 in.Name,
		Age:                  in.Age,
		AnnualIncome:         in.AnnualIncome,
		EmploymentStatus:     in.EmploymentStatus,
		RiskTolerance:        in.RiskTolerance,
		InvestmentExperience: in.InvestmentExperience,
		MonthlySavings:       in.MonthlySavings,
		DebtAmount:           in.DebtAmount,
		FinancialGoals:       dedupeLabels(in.FinancialGoals),
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// GetProfile retrieves the user's profile with goals preloaded.
func (s *profileService) GetProfile(userID uint) (*models.FinancialProfile, error) {
	var profile models.FinancialProfile
	if err := s.db.Preload("Goals").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile replaces the profile's fields after revalidation.
func (s *profileService) UpdateProfile(userID uint, in ProfileInput) (*models.FinancialProfile, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.Name = in.Name
	profile.Age = in.Age
	profile.AnnualIncome = in.AnnualIncome
	profile.EmploymentStatus = in.EmploymentStatus
	profile.RiskTolerance = in.RiskTolerance
	profile.InvestmentExperience = in.InvestmentExperience
	profile.MonthlySavings = in.MonthlySavings
	profile.DebtAmount = in.DebtAmount
	profile.FinancialGoals = dedupeLabels(in.FinancialGoals)

	if err := s.db.Save(profile).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return profile, nil
}

// DeleteProfile removes the profile and its goals.
func (s *profileService) DeleteProfile(userID uint) error {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Goal{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ListPeerProfiles returns other users' profiles for peer comparison,
// ordered by ID for deterministic segmentation.
func (s *profileService) ListPeerProfiles(excludeUserID uint, limit int) ([]*models.FinancialProfile, error) {
	var peers []*models.FinancialProfile
	q := s.db.Where("user_id <> ?", excludeUserID).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&peers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return peers, nil
}

// AddGoal validates and attaches a goal to the user's profile.
func (s *profileService) AddGoal(userID uint, in GoalInput) (*models.Goal, error) {
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if in.TargetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}
	if in.TimelineYears <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "timeline must be positive")
	}
	if in.Priority == "" {
		in.Priority = models.GoalPriorityMedium
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{
		ProfileID:     profile.ID,
		Name:          in.Name,
		TargetAmount:  in.TargetAmount,
		TimelineYears: in.TimelineYears,
		Priority:      in.Priority,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals lists the user's goals in creation order.
func (s *profileService) GetGoals(userID uint) ([]models.Goal, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	var goals []models.Goal
	if err := s.db.Where("profile_id = ?", profile.ID).Order("id").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// ListGoalsPage returns one page of the user's goals in creation order.
func (s *profileService) ListGoalsPage(userID uint, req pagination.PageRequest) (pagination.PageResponse[models.Goal], error) {
	var page pagination.PageResponse[models.Goal]

	profile, err := s.GetProfile(userID)
	if err != nil {
		return page, err
	}

	var total int64
	if err := s.db.Model(&models.Goal{}).Where("profile_id = ?", profile.ID).Count(&total).Error; err != nil {
		return page, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := s.db.Where("profile_id = ?", profile.ID).Order("id").
		Scopes(pagination.Paginate(req)).Find(&goals).Error; err != nil {
		return page, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pagination.NewPageResponse(goals, req.Page, req.PageSize, total), nil
}

// GetGoalByID retrieves one goal, scoped to the user's profile.
func (s *profileService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	var goal models.Goal
	if err := s.db.Where("id = ? AND profile_id = ?", goalID, profile.ID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// DeleteGoal removes one goal, scoped to the user's profile.
func (s *profileService) DeleteGoal(userID, goalID uint) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validateProfileInput is the single validation boundary for profile
// data. Records that pass are trusted by every downstream component.
func validateProfileInput(in ProfileInput) error {
	if in.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if in.Age < minAge || in.Age > maxAge {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("age must be between %d and %d", minAge, maxAge))
	}
	if in.AnnualIncome < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "annual income cannot be negative")
	}
	if in.MonthlySavings < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly savings cannot be negative")
	}
	if in.DebtAmount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "debt amount cannot be negative")
	}
	if in.MonthlySavings*12 > in.AnnualIncome {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly savings cannot exceed monthly income")
	}
	return nil
}

// dedupeLabels drops empty and duplicate goal labels, preserving order.
func dedupeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

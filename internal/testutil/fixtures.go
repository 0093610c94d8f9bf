package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finsight/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates a mid-career profile for the user.
// Monetary values are in cents.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID uint) *models.FinancialProfile {
	t.Helper()

	profile := &models.FinancialProfile{
		UserID:               userID,
		Name:                 fmt.Sprintf("Profile %d", nextID()),
		Age:                  35,
		AnnualIncome:         9_000_000,
		EmploymentStatus:     models.EmploymentEmployed,
		RiskTolerance:        models.RiskToleranceModerate,
		InvestmentExperience: models.ExperienceIntermediate,
		MonthlySavings:       150_000,
		DebtAmount:           0,
		FinancialGoals:       []string{"Retirement Planning", "Emergency Fund"},
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestGoal attaches a goal to the profile.
func CreateTestGoal(t *testing.T, db *gorm.DB, profileID uint, name string, targetCents int64, years float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		ProfileID:     profileID,
		Name:          name,
		TargetAmount:  targetCents,
		TimelineYears: years,
		Priority:      models.GoalPriorityMedium,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

package models

import "gorm.io/datatypes"

// RiskTolerance is the user's self-reported appetite for investment risk.
type RiskTolerance string

const (
	RiskToleranceConservative RiskTolerance = "Conservative"
	RiskToleranceModerate     RiskTolerance = "Moderate"
	RiskToleranceAggressive   RiskTolerance = "Aggressive"
)

// ExperienceLevel is the user's self-reported investment experience.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"
	ExperienceIntermediate ExperienceLevel = "Intermediate"
	ExperienceAdvanced     ExperienceLevel = "Advanced"
)

// EmploymentStatus is the user's current employment situation.
type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "Employed"
	EmploymentSelfEmployed EmploymentStatus = "Self-Employed"
	EmploymentUnemployed   EmploymentStatus = "Unemployed"
	EmploymentRetired      EmploymentStatus = "Retired"
	EmploymentStudent      EmploymentStatus = "Student"
)

// FinancialProfile represents a user's validated financial profile. It is
// immutable input to every analysis call; no analytics component mutates it.
// Monetary fields are stored in cents.
type FinancialProfile struct {
	Base
	UserID               uint                         `gorm:"not null;index" json:"user_id"`
	Name                 string                       `gorm:"not null" json:"name"`
	Age                  int                          `gorm:"not null" json:"age"`
	AnnualIncome         int64                        `gorm:"type:bigint;not null" json:"annual_income"`
	EmploymentStatus     EmploymentStatus             `gorm:"not null" json:"employment_status"`
	RiskTolerance        RiskTolerance                `gorm:"not null" json:"risk_tolerance"`
	InvestmentExperience ExperienceLevel              `gorm:"not null" json:"investment_experience"`
	MonthlySavings       int64                        `gorm:"type:bigint;not null" json:"monthly_savings"`
	DebtAmount           int64                        `gorm:"type:bigint;not null;default:0" json:"debt_amount"`
	FinancialGoals       datatypes.JSONSlice[string]  `json:"financial_goals"`

	// Relationships
	Goals []Goal `gorm:"foreignKey:ProfileID" json:"goals,omitempty"`
}

// HasGoalLabel reports whether the profile lists the given goal label.
func (p *FinancialProfile) HasGoalLabel(label string) bool {
	for _, g := range p.FinancialGoals {
		if g == label {
			return true
		}
	}
	return false
}

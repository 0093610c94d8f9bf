// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("risk_tolerance", validateRiskTolerance)
		_ = v.RegisterValidation("experience_level", validateExperienceLevel)
		_ = v.RegisterValidation("employment_status", validateEmploymentStatus)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("recommendation_type", validateRecommendationType)
	}
}

func validateRiskTolerance(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Conservative", "Moderate", "Aggressive":
		return true
	}
	return false
}

func validateExperienceLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Beginner", "Intermediate", "Advanced":
		return true
	}
	return false
}

func validateEmploymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Employed", "Self-Employed", "Unemployed", "Retired", "Student":
		return true
	}
	return false
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "High", "Medium", "Low":
		return true
	}
	return false
}

func validateRecommendationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "investment", "insurance", "comprehensive":
		return true
	}
	return false
}

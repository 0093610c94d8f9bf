package models

// GoalPriority ranks a goal for multi-goal savings allocation.
type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "High"
	GoalPriorityMedium GoalPriority = "Medium"
	GoalPriorityLow    GoalPriority = "Low"
)

// Weight returns the waterfall ordering weight of a priority (higher first).
func (p GoalPriority) Weight() int {
	switch p {
	case GoalPriorityHigh:
		return 3
	case GoalPriorityMedium:
		return 2
	case GoalPriorityLow:
		return 1
	}
	return 0
}

// Goal represents a savings goal attached to a financial profile.
// Target amounts are stored in cents. Plans are computed per request
// and never stored; re-planning produces a new plan from current inputs.
type Goal struct {
	Base
	ProfileID     uint         `gorm:"not null;index" json:"profile_id"`
	Name          string       `gorm:"not null" json:"name"`
	TargetAmount  int64        `gorm:"type:bigint;not null" json:"target_amount"`
	TimelineYears float64      `gorm:"not null" json:"timeline_years"`
	Priority      GoalPriority `gorm:"not null;default:'Medium'" json:"priority"`
}

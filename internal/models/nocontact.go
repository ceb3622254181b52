package models

import "time"

// NoContactPeriod is a user-defined abstinence goal. It ends only by an
// explicit user action; breaches are recorded against it without mutating it.
type NoContactPeriod struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ContactName string    `json:"contact_name"`
	StartDate   time.Time `json:"start_date"`
	TargetDays  int       `json:"target_days"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	// DaysSinceStart and IsGoalReached are derived from the clock at read
	// time and are not persisted.
	DaysSinceStart int  `json:"days_since_start"`
	IsGoalReached  bool `json:"is_goal_reached"`
}

// NoContactBreach is one append-only lapse logged against a period.
// Recording a breach never resets the period's start date.
type NoContactBreach struct {
	ID         string    `json:"id"`
	PeriodID   string    `json:"period_id"`
	BreachDate time.Time `json:"breach_date"`
	BreachType string    `json:"breach_type"` // call|text|social_media|in_person|other
	Notes      string    `json:"notes,omitempty"`
}

// StreakShieldUsage is one consumed shield token. Remaining quota is counted
// over a sliding 7-day lookback, not a calendar week.
type StreakShieldUsage struct {
	ID       string    `json:"id"`
	PeriodID string    `json:"period_id"`
	UsedAt   time.Time `json:"used_at"`
}

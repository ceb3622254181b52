package models

import "time"

// UserRitual is a user-authored recurring ritual. Deletion is a soft flag so
// completion history stays attributable.
type UserRitual struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	TargetFrequency string    `json:"target_frequency"` // daily|weekly|custom
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// RitualCompletion is one append-only log entry against a UserRitual. A
// ritual may be completed more than once on the same calendar day.
type RitualCompletion struct {
	ID          string    `json:"id"`
	RitualID    string    `json:"ritual_id"`
	CompletedAt time.Time `json:"completed_at"`
	Mood        int       `json:"mood,omitempty"` // 1-5, 0 when unset
	Notes       string    `json:"notes,omitempty"`
}

package models

import "time"

// RitualDefinition is a read-only catalog entry describing one assignable
// ritual. Definitions are reference data and are never persisted per user.
type RitualDefinition struct {
	Key             string `json:"key"`
	Category        string `json:"category"`
	Intensity       int    `json:"intensity"` // 1-5
	Title           string `json:"title"`
	Instructions    string `json:"instructions"`
	ExpectedOutcome string `json:"expected_outcome"`
}

// DailyPrescription is the single ritual assigned to a user for one calendar
// day. At most one row exists per (user, prescribed date); rows are mutated
// by shuffle and complete/undo but never deleted.
type DailyPrescription struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	PrescribedDate  string     `json:"prescribed_date"` // YYYY-MM-DD format
	RitualKey       string     `json:"ritual_key"`
	ShufflesUsed    int        `json:"shuffles_used"`
	IsCompleted     bool       `json:"is_completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CompletionMood  int        `json:"completion_mood,omitempty"` // 1-5, 0 when unset
	CompletionNotes string     `json:"completion_notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

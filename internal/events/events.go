package events

import (
	"time"

	"github.com/mendapp/mend/internal/logger"
)

// Type identifies a cross-cutting reward event. The engines emit these for
// the bytes/XP/badge subsystem to consume; they never touch reward balances
// themselves.
type Type string

const (
	RitualCompleted         Type = "ritual_completed"
	PersonalRitualCompleted Type = "personal_ritual_completed"
	BreachRecorded          Type = "breach_recorded"
	ShieldUsed              Type = "shield_used"
)

// Event is one emitted occurrence.
type Event struct {
	Type       Type
	UserID     string
	OccurredAt time.Time
	Meta       map[string]string
}

// Recorder consumes emitted events. Implementations must be cheap and must
// not fail the triggering operation.
type Recorder interface {
	Record(Event)
}

// LogRecorder writes events to the application log. It stands in for the
// external reward subsystem in deployments that have not wired one.
type LogRecorder struct{}

func (LogRecorder) Record(e Event) {
	kv := []interface{}{"type", string(e.Type), "user", e.UserID, "at", e.OccurredAt.Format(time.RFC3339)}
	for k, v := range e.Meta {
		kv = append(kv, k, v)
	}
	logger.Info("Reward event", kv...)
}

// Discard drops every event. Used in tests that don't assert on emission.
type Discard struct{}

func (Discard) Record(Event) {}

// Capture retains every event in order. Test helper.
type Capture struct {
	Events []Event
}

func (c *Capture) Record(e Event) {
	c.Events = append(c.Events, e)
}

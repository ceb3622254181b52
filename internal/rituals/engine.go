package rituals

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
	"github.com/mendapp/mend/internal/validation"
)

// Engine manages user-authored recurring rituals and their append-only
// completion log. Every operation is scoped to the calling user; another
// user's ritual id reads as not found.
type Engine struct {
	store storage.Provider
	clk   clock.Clock
	rec   events.Recorder
}

func New(store storage.Provider, clk clock.Clock, rec events.Recorder) *Engine {
	return &Engine{store: store, clk: clk, rec: rec}
}

// Create validates and persists a new personal ritual. Frequency defaults
// to daily when omitted.
func (e *Engine) Create(userID string, in validation.UserRitualInput) (models.UserRitual, error) {
	if userID == "" {
		return models.UserRitual{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	if err := validation.ValidateUserRitual(&in); err != nil {
		return models.UserRitual{}, err
	}

	r := models.UserRitual{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		TargetFrequency: in.TargetFrequency,
		IsActive:        true,
		CreatedAt:       e.clk.Now(),
	}
	if err := e.store.InsertUserRitual(r); err != nil {
		return models.UserRitual{}, err
	}
	return r, nil
}

// Update replaces the editable fields of an owned ritual.
func (e *Engine) Update(userID, ritualID string, in validation.UserRitualInput) (models.UserRitual, error) {
	if userID == "" {
		return models.UserRitual{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	if err := validation.ValidateUserRitual(&in); err != nil {
		return models.UserRitual{}, err
	}

	r, err := e.store.GetUserRitual(userID, ritualID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserRitual{}, apperr.New(apperr.NotFound, "ritual not found")
		}
		return models.UserRitual{}, err
	}

	r.Title = in.Title
	r.Description = in.Description
	r.Category = in.Category
	r.TargetFrequency = in.TargetFrequency

	ok, err := e.store.UpdateUserRitual(r)
	if err != nil {
		return models.UserRitual{}, err
	}
	if !ok {
		return models.UserRitual{}, apperr.New(apperr.NotFound, "ritual not found")
	}
	return r, nil
}

// Delete retires a ritual. The row and its completion history survive with
// is_active cleared; deleting twice reads as not found.
func (e *Engine) Delete(userID, ritualID string) error {
	if userID == "" {
		return apperr.New(apperr.Unauthenticated, "user id is required")
	}

	ok, err := e.store.SoftDeleteUserRitual(userID, ritualID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.NotFound, "ritual not found")
	}
	return nil
}

// Get returns one owned ritual, active or not.
func (e *Engine) Get(userID, ritualID string) (models.UserRitual, error) {
	if userID == "" {
		return models.UserRitual{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	r, err := e.store.GetUserRitual(userID, ritualID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.UserRitual{}, apperr.New(apperr.NotFound, "ritual not found")
		}
		return models.UserRitual{}, err
	}
	return r, nil
}

// List returns the user's rituals, active only unless includeInactive.
func (e *Engine) List(userID string, includeInactive bool) ([]models.UserRitual, error) {
	if userID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	return e.store.ListUserRituals(userID, includeInactive)
}

// RecordCompletion appends one completion entry for an owned active ritual
// and emits a personal_ritual_completed event. More than one completion per
// day is allowed.
func (e *Engine) RecordCompletion(userID, ritualID string, mood int, notes string) (models.RitualCompletion, error) {
	if userID == "" {
		return models.RitualCompletion{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	r, err := e.store.GetUserRitual(userID, ritualID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.RitualCompletion{}, apperr.New(apperr.NotFound, "ritual not found")
		}
		return models.RitualCompletion{}, err
	}
	if !r.IsActive {
		return models.RitualCompletion{}, apperr.New(apperr.InvalidState, "ritual has been deleted")
	}

	now := e.clk.Now()
	c := models.RitualCompletion{
		ID:          uuid.NewString(),
		RitualID:    r.ID,
		CompletedAt: now,
		Mood:        mood,
		Notes:       notes,
	}
	if err := e.store.InsertRitualCompletion(c); err != nil {
		return models.RitualCompletion{}, err
	}

	e.rec.Record(events.Event{
		Type:       events.PersonalRitualCompleted,
		UserID:     userID,
		OccurredAt: now,
		Meta:       map[string]string{"ritual_id": r.ID, "title": r.Title},
	})
	return c, nil
}

// Completions lists an owned ritual's completion log since the given
// instant, newest first. A zero since returns the full history.
func (e *Engine) Completions(userID, ritualID string, since time.Time) ([]models.RitualCompletion, error) {
	if userID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	if _, err := e.store.GetUserRitual(userID, ritualID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "ritual not found")
		}
		return nil, err
	}
	return e.store.ListRitualCompletions(ritualID, since)
}

// CompletedToday reports whether an owned ritual has at least one completion
// dated on the current calendar day.
func (e *Engine) CompletedToday(userID, ritualID string) (bool, error) {
	now := e.clk.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	cs, err := e.Completions(userID, ritualID, start)
	if err != nil {
		return false, err
	}
	return len(cs) > 0, nil
}

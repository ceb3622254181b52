package nocontact

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
	"github.com/mendapp/mend/internal/validation"
)

// Tracker manages no-contact periods and their breach log. A period ends
// only by an explicit user action; breaches accumulate against it without
// resetting the start date.
type Tracker struct {
	store storage.Provider
	clk   clock.Clock
	rec   events.Recorder
}

func New(store storage.Provider, clk clock.Clock, rec events.Recorder) *Tracker {
	return &Tracker{store: store, clk: clk, rec: rec}
}

// StartPeriod opens a new abstinence period for the named contact with a
// goal of at least one day.
func (t *Tracker) StartPeriod(userID, contactName string, targetDays int) (models.NoContactPeriod, error) {
	if userID == "" {
		return models.NoContactPeriod{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	name, err := validation.ValidateContactName(contactName)
	if err != nil {
		return models.NoContactPeriod{}, err
	}
	if err := validation.ValidateTargetDays(targetDays); err != nil {
		return models.NoContactPeriod{}, err
	}

	now := t.clk.Now()
	p := models.NoContactPeriod{
		ID:          uuid.NewString(),
		UserID:      userID,
		ContactName: name,
		StartDate:   now,
		TargetDays:  targetDays,
		IsActive:    true,
		CreatedAt:   now,
	}
	if err := t.store.InsertPeriod(p); err != nil {
		return models.NoContactPeriod{}, err
	}
	return t.derive(p), nil
}

// EndPeriod closes an owned period. Ending early is allowed; ending twice
// reads as not found.
func (t *Tracker) EndPeriod(userID, periodID string) error {
	if userID == "" {
		return apperr.New(apperr.Unauthenticated, "user id is required")
	}

	ok, err := t.store.EndPeriod(userID, periodID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.NotFound, "no-contact period not found")
	}
	return nil
}

// Get returns one owned period with its derived progress fields.
func (t *Tracker) Get(userID, periodID string) (models.NoContactPeriod, error) {
	if userID == "" {
		return models.NoContactPeriod{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	p, err := t.store.GetPeriod(userID, periodID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NoContactPeriod{}, apperr.New(apperr.NotFound, "no-contact period not found")
		}
		return models.NoContactPeriod{}, err
	}
	return t.derive(p), nil
}

// List returns the user's periods, active only unless includeEnded.
func (t *Tracker) List(userID string, includeEnded bool) ([]models.NoContactPeriod, error) {
	if userID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	ps, err := t.store.ListPeriods(userID, includeEnded)
	if err != nil {
		return nil, err
	}
	for i := range ps {
		ps[i] = t.derive(ps[i])
	}
	return ps, nil
}

// RecordBreach appends a lapse against an owned period and emits a
// breach_recorded event. The period's start date and active flag are never
// touched; streak consequences are the caller's concern.
func (t *Tracker) RecordBreach(userID, periodID, breachType, notes string) (models.NoContactBreach, error) {
	if userID == "" {
		return models.NoContactBreach{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	bt, err := validation.ValidateBreachType(breachType)
	if err != nil {
		return models.NoContactBreach{}, err
	}

	now := t.clk.Now()
	b := models.NoContactBreach{
		ID:         uuid.NewString(),
		PeriodID:   periodID,
		BreachDate: now,
		BreachType: string(bt),
		Notes:      notes,
	}
	if err := t.store.InsertBreach(userID, b); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NoContactBreach{}, apperr.New(apperr.NotFound, "no-contact period not found")
		}
		return models.NoContactBreach{}, err
	}

	t.rec.Record(events.Event{
		Type:       events.BreachRecorded,
		UserID:     userID,
		OccurredAt: now,
		Meta:       map[string]string{"period_id": periodID, "breach_type": string(bt)},
	})
	return b, nil
}

// Breaches lists the lapses logged against an owned period.
func (t *Tracker) Breaches(userID, periodID string) ([]models.NoContactBreach, error) {
	if userID == "" {
		return nil, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	if _, err := t.store.GetPeriod(userID, periodID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "no-contact period not found")
		}
		return nil, err
	}
	return t.store.ListBreaches(userID, periodID)
}

// DeleteBreach removes a mistakenly logged breach. The breach must belong
// to a period the caller owns; any break in that chain reads as not found.
func (t *Tracker) DeleteBreach(userID, breachID string) error {
	if userID == "" {
		return apperr.New(apperr.Unauthenticated, "user id is required")
	}

	ok, err := t.store.DeleteBreach(userID, breachID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.NotFound, "breach not found")
	}
	return nil
}

func (t *Tracker) derive(p models.NoContactPeriod) models.NoContactPeriod {
	p.DaysSinceStart = clock.DaysBetween(p.StartDate, t.clk.Now())
	p.IsGoalReached = p.DaysSinceStart >= p.TargetDays
	return p
}

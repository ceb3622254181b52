package prescription

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/catalog"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/constants"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

// Engine assigns and mutates the single daily prescription per user. All
// date arithmetic runs through the injected clock so day boundaries follow
// the configured timezone.
type Engine struct {
	store storage.Provider
	cat   *catalog.Catalog
	clk   clock.Clock
	rng   *rand.Rand
	rec   events.Recorder
}

// ShuffleResult is a shuffled prescription plus the budget left after it.
type ShuffleResult struct {
	models.DailyPrescription
	ShufflesRemaining int
}

func New(store storage.Provider, cat *catalog.Catalog, clk clock.Clock, rng *rand.Rand, rec events.Recorder) *Engine {
	return &Engine{store: store, cat: cat, clk: clk, rng: rng, rec: rec}
}

// GetOrCreateToday returns today's prescription, creating one when none
// exists yet. Selection excludes every ritual assigned to this user within
// the trailing exclusion window; when a concurrent caller wins the insert
// race the winner's row is returned.
func (e *Engine) GetOrCreateToday(userID string) (models.DailyPrescription, error) {
	if userID == "" {
		return models.DailyPrescription{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	now := e.clk.Now()
	day := clock.DayOf(now)

	p, err := e.store.GetPrescription(userID, day)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.DailyPrescription{}, err
	}

	recent, err := e.store.RecentRitualKeys(userID, clock.WindowStartDay(now, constants.ExclusionWindowDays))
	if err != nil {
		return models.DailyPrescription{}, err
	}
	excluded := make(map[string]struct{}, len(recent))
	for _, k := range recent {
		excluded[k] = struct{}{}
	}

	p = models.DailyPrescription{
		ID:             uuid.NewString(),
		UserID:         userID,
		PrescribedDate: day,
		RitualKey:      selectRitual(e.cat.Keys(), excluded, e.rng),
		CreatedAt:      now,
	}
	if err := e.store.InsertPrescription(p); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// Lost the one-per-day race, the other caller's row stands.
			return e.store.GetPrescription(userID, day)
		}
		return models.DailyPrescription{}, err
	}
	return p, nil
}

// Shuffle swaps today's ritual for a different one and spends one point of
// the daily shuffle budget. The replacement avoids both the exclusion
// window and the currently assigned ritual.
func (e *Engine) Shuffle(userID string) (ShuffleResult, error) {
	if userID == "" {
		return ShuffleResult{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	now := e.clk.Now()
	day := clock.DayOf(now)

	p, err := e.store.GetPrescription(userID, day)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ShuffleResult{}, apperr.New(apperr.NotFound, "no prescription for today")
		}
		return ShuffleResult{}, err
	}
	if p.IsCompleted {
		return ShuffleResult{}, apperr.New(apperr.InvalidState, "cannot shuffle a completed ritual")
	}
	if p.ShufflesUsed >= constants.MaxShuffles {
		return ShuffleResult{}, apperr.New(apperr.QuotaExceeded, "max shuffles reached")
	}

	recent, err := e.store.RecentRitualKeys(userID, clock.WindowStartDay(now, constants.ExclusionWindowDays))
	if err != nil {
		return ShuffleResult{}, err
	}
	excluded := make(map[string]struct{}, len(recent)+1)
	for _, k := range recent {
		excluded[k] = struct{}{}
	}
	excluded[p.RitualKey] = struct{}{}

	newKey := selectRitual(e.cat.Keys(), excluded, e.rng)
	if newKey == p.RitualKey {
		// The window swallowed the whole catalog and the fallback redrew
		// the current key. Retry excluding only the current one so the
		// shuffle still changes something when the catalog allows it.
		newKey = selectRitual(e.cat.Keys(), map[string]struct{}{p.RitualKey: {}}, e.rng)
	}

	ok, err := e.store.ShufflePrescription(userID, day, newKey, constants.MaxShuffles)
	if err != nil {
		return ShuffleResult{}, err
	}
	if !ok {
		// The guard rejected a concurrent or stale attempt. Re-read to
		// report the reason the row is actually in now.
		return ShuffleResult{}, e.classifyShuffleFailure(userID, day)
	}

	p, err = e.store.GetPrescription(userID, day)
	if err != nil {
		return ShuffleResult{}, err
	}
	return ShuffleResult{
		DailyPrescription: p,
		ShufflesRemaining: constants.MaxShuffles - p.ShufflesUsed,
	}, nil
}

func (e *Engine) classifyShuffleFailure(userID, day string) error {
	p, err := e.store.GetPrescription(userID, day)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.New(apperr.NotFound, "no prescription for today")
		}
		return err
	}
	if p.IsCompleted {
		return apperr.New(apperr.InvalidState, "cannot shuffle a completed ritual")
	}
	return apperr.New(apperr.QuotaExceeded, "max shuffles reached")
}

// Complete marks today's prescription done with an optional mood (1-5, 0 for
// unset) and notes, and emits a ritual_completed event. Completing twice is
// an InvalidState error; the first completion's mood and notes stand.
func (e *Engine) Complete(userID string, mood int, notes string) (models.DailyPrescription, error) {
	if userID == "" {
		return models.DailyPrescription{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	now := e.clk.Now()
	day := clock.DayOf(now)

	ok, err := e.store.CompletePrescription(userID, day, now, mood, notes)
	if err != nil {
		return models.DailyPrescription{}, err
	}
	if !ok {
		p, err := e.store.GetPrescription(userID, day)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return models.DailyPrescription{}, apperr.New(apperr.NotFound, "no prescription for today")
			}
			return models.DailyPrescription{}, err
		}
		if p.IsCompleted {
			return models.DailyPrescription{}, apperr.New(apperr.InvalidState, "already completed")
		}
		return models.DailyPrescription{}, apperr.New(apperr.InvalidState, "prescription could not be completed")
	}

	p, err := e.store.GetPrescription(userID, day)
	if err != nil {
		return models.DailyPrescription{}, err
	}

	e.rec.Record(events.Event{
		Type:       events.RitualCompleted,
		UserID:     userID,
		OccurredAt: now,
		Meta:       map[string]string{"ritual_key": p.RitualKey, "date": day},
	})
	return p, nil
}

// Undo reverts today's completion, clearing completedAt, mood, and notes.
// The shuffle budget is untouched and the emitted reward event is not
// reversed.
func (e *Engine) Undo(userID string) (models.DailyPrescription, error) {
	if userID == "" {
		return models.DailyPrescription{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}

	day := clock.DayOf(e.clk.Now())

	ok, err := e.store.UndoPrescription(userID, day)
	if err != nil {
		return models.DailyPrescription{}, err
	}
	if !ok {
		_, err := e.store.GetPrescription(userID, day)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return models.DailyPrescription{}, apperr.New(apperr.NotFound, "no prescription for today")
			}
			return models.DailyPrescription{}, err
		}
		return models.DailyPrescription{}, apperr.New(apperr.InvalidState, "ritual is not completed")
	}
	return e.store.GetPrescription(userID, day)
}

// Definition resolves a prescription's ritual key against the catalog.
func (e *Engine) Definition(p models.DailyPrescription) (models.RitualDefinition, error) {
	def, ok := e.cat.Get(p.RitualKey)
	if !ok {
		return models.RitualDefinition{}, apperr.Newf(apperr.NotFound, "unknown ritual %q", p.RitualKey)
	}
	return def, nil
}

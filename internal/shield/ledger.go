package shield

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/constants"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage"
)

// Policy is the caller-supplied shield entitlement. The free tier grants
// one shield per sliding week.
type Policy struct {
	MaxPerWeek int
}

// DefaultPolicy is the free-tier entitlement.
var DefaultPolicy = Policy{MaxPerWeek: constants.DefaultShieldsPerWeek}

// Ledger tracks streak-shield consumption per no-contact period. It only
// answers "may another shield be spent" over a sliding 7-day lookback; what
// a shield protects is decided elsewhere.
type Ledger struct {
	store storage.Provider
	clk   clock.Clock
	rec   events.Recorder
}

func New(store storage.Provider, clk clock.Clock, rec events.Recorder) *Ledger {
	return &Ledger{store: store, clk: clk, rec: rec}
}

// Remaining reports how many shields the policy still allows for an owned
// period, counting usages inside the trailing window.
func (l *Ledger) Remaining(userID, periodID string, policy Policy) (int, error) {
	if userID == "" {
		return 0, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	if _, err := l.store.GetPeriod(userID, periodID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, apperr.New(apperr.NotFound, "no-contact period not found")
		}
		return 0, err
	}

	used, err := l.store.CountShieldUsagesSince(periodID, clock.WindowStart(l.clk.Now(), constants.ShieldWindowDays))
	if err != nil {
		return 0, err
	}
	if rem := policy.MaxPerWeek - used; rem > 0 {
		return rem, nil
	}
	return 0, nil
}

// Use spends one shield for an owned period. The quota check and the append
// run in one statement, so concurrent spends cannot overshoot the policy.
func (l *Ledger) Use(userID, periodID string, policy Policy) (models.StreakShieldUsage, error) {
	if userID == "" {
		return models.StreakShieldUsage{}, apperr.New(apperr.Unauthenticated, "user id is required")
	}
	if _, err := l.store.GetPeriod(userID, periodID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.StreakShieldUsage{}, apperr.New(apperr.NotFound, "no-contact period not found")
		}
		return models.StreakShieldUsage{}, err
	}

	now := l.clk.Now()
	u := models.StreakShieldUsage{
		ID:       uuid.NewString(),
		PeriodID: periodID,
		UsedAt:   now,
	}
	ok, err := l.store.TryInsertShieldUsage(u, clock.WindowStart(now, constants.ShieldWindowDays), policy.MaxPerWeek)
	if err != nil {
		return models.StreakShieldUsage{}, err
	}
	if !ok {
		return models.StreakShieldUsage{}, apperr.New(apperr.QuotaExceeded, "no shields left")
	}

	l.rec.Record(events.Event{
		Type:       events.ShieldUsed,
		UserID:     userID,
		OccurredAt: now,
		Meta:       map[string]string{"period_id": periodID},
	})
	return u, nil
}

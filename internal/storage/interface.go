package storage

import (
	"errors"
	"time"

	"github.com/mendapp/mend/internal/models"
)

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user. Stores never distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// notably the one-prescription-per-user-per-day invariant.
var ErrDuplicate = errors.New("record already exists")

// Provider is the persistence boundary for the habit engines. Every query is
// scoped by userID; conditional mutations report whether a row changed so
// engines can classify the failure with a follow-up read instead of trusting
// a stale one.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Daily prescriptions
	GetPrescription(userID, day string) (models.DailyPrescription, error)
	// InsertPrescription returns ErrDuplicate when a prescription already
	// exists for (userID, prescribed date). Uniqueness is enforced by the
	// schema, not by application logic.
	InsertPrescription(p models.DailyPrescription) error
	// RecentRitualKeys returns the ritual keys of this user's prescriptions
	// dated on or after sinceDay (YYYY-MM-DD), today included.
	RecentRitualKeys(userID, sinceDay string) ([]string, error)
	// ShufflePrescription atomically swaps today's ritual and increments the
	// shuffle counter, guarded by the quota and completion state in the same
	// statement. Returns false when the guard rejected the update.
	ShufflePrescription(userID, day, newKey string, maxShuffles int) (bool, error)
	// CompletePrescription atomically marks today's prescription completed,
	// guarded on it not being completed already.
	CompletePrescription(userID, day string, completedAt time.Time, mood int, notes string) (bool, error)
	// UndoPrescription atomically clears completion state, guarded on the
	// prescription currently being completed. Shuffle budget is untouched.
	UndoPrescription(userID, day string) (bool, error)

	// Personal rituals
	InsertUserRitual(r models.UserRitual) error
	GetUserRitual(userID, ritualID string) (models.UserRitual, error)
	ListUserRituals(userID string, includeInactive bool) ([]models.UserRitual, error)
	UpdateUserRitual(r models.UserRitual) (bool, error)
	SoftDeleteUserRitual(userID, ritualID string) (bool, error)
	InsertRitualCompletion(c models.RitualCompletion) error
	ListRitualCompletions(ritualID string, since time.Time) ([]models.RitualCompletion, error)

	// No-contact periods
	InsertPeriod(p models.NoContactPeriod) error
	GetPeriod(userID, periodID string) (models.NoContactPeriod, error)
	ListPeriods(userID string, includeEnded bool) ([]models.NoContactPeriod, error)
	EndPeriod(userID, periodID string) (bool, error)
	InsertBreach(userID string, b models.NoContactBreach) error
	ListBreaches(userID, periodID string) ([]models.NoContactBreach, error)
	// DeleteBreach resolves the breach -> period -> owner chain inside one
	// statement; a break anywhere in the chain reads as not found.
	DeleteBreach(userID, breachID string) (bool, error)

	// Streak shields
	// TryInsertShieldUsage appends a usage only while the count of usages
	// since the window start stays below maxPerWeek. Returns false when the
	// quota is already spent.
	TryInsertShieldUsage(u models.StreakShieldUsage, windowStart time.Time, maxPerWeek int) (bool, error)
	CountShieldUsagesSince(periodID string, since time.Time) (int, error)

	// Utils
	GetConfigPath() string
}

package shield

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/storage/sqlite"
)

func setupLedger(t *testing.T) (*Ledger, *clock.Fixed, *events.Capture, *sqlite.Store) {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clk := &clock.Fixed{Instant: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	rec := &events.Capture{}
	return New(store, clk, rec), clk, rec, store
}

func seedPeriod(t *testing.T, store *sqlite.Store, userID string) models.NoContactPeriod {
	t.Helper()
	p := models.NoContactPeriod{
		ID:          uuid.NewString(),
		UserID:      userID,
		ContactName: "Alex",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TargetDays:  30,
		IsActive:    true,
		CreatedAt:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.InsertPeriod(p); err != nil {
		t.Fatalf("failed to seed period: %v", err)
	}
	return p
}

func TestUseSpendsQuota(t *testing.T) {
	led, _, rec, store := setupLedger(t)
	p := seedPeriod(t, store, "user-a")

	rem, err := led.Remaining("user-a", p.ID, DefaultPolicy)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if rem != 1 {
		t.Errorf("fresh period should have 1 shield, got %d", rem)
	}

	if _, err := led.Use("user-a", p.ID, DefaultPolicy); err != nil {
		t.Fatalf("use: %v", err)
	}
	if rem, _ := led.Remaining("user-a", p.ID, DefaultPolicy); rem != 0 {
		t.Errorf("expected 0 remaining after use, got %d", rem)
	}

	if _, err := led.Use("user-a", p.ID, DefaultPolicy); !apperr.IsKind(err, apperr.QuotaExceeded) {
		t.Errorf("expected QuotaExceeded, got %v", err)
	}

	if len(rec.Events) != 1 || rec.Events[0].Type != events.ShieldUsed {
		t.Errorf("expected one shield_used event, got %+v", rec.Events)
	}
}

func TestQuotaRefreshesWithSlidingWindow(t *testing.T) {
	led, clk, _, store := setupLedger(t)
	p := seedPeriod(t, store, "user-a")

	if _, err := led.Use("user-a", p.ID, DefaultPolicy); err != nil {
		t.Fatalf("use: %v", err)
	}

	clk.Advance(6 * 24 * time.Hour)
	if _, err := led.Use("user-a", p.ID, DefaultPolicy); !apperr.IsKind(err, apperr.QuotaExceeded) {
		t.Errorf("shield should still be spent inside the window, got %v", err)
	}

	clk.Advance(2 * 24 * time.Hour) // day 8, first usage aged out
	if rem, err := led.Remaining("user-a", p.ID, DefaultPolicy); err != nil || rem != 1 {
		t.Errorf("expected quota back after the window, got (%d, %v)", rem, err)
	}
	if _, err := led.Use("user-a", p.ID, DefaultPolicy); err != nil {
		t.Errorf("use after window should succeed: %v", err)
	}
}

func TestLargerPolicy(t *testing.T) {
	led, _, _, store := setupLedger(t)
	p := seedPeriod(t, store, "user-a")
	policy := Policy{MaxPerWeek: 3}

	for i := 0; i < 3; i++ {
		if _, err := led.Use("user-a", p.ID, policy); err != nil {
			t.Fatalf("use %d: %v", i+1, err)
		}
	}
	if _, err := led.Use("user-a", p.ID, policy); !apperr.IsKind(err, apperr.QuotaExceeded) {
		t.Errorf("expected QuotaExceeded on fourth use, got %v", err)
	}
}

func TestOwnershipScoped(t *testing.T) {
	led, _, _, store := setupLedger(t)
	p := seedPeriod(t, store, "user-a")

	if _, err := led.Remaining("user-b", p.ID, DefaultPolicy); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's remaining should read as not found, got %v", err)
	}
	if _, err := led.Use("user-b", p.ID, DefaultPolicy); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's use should read as not found, got %v", err)
	}
	if _, err := led.Use("", p.ID, DefaultPolicy); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
}

package nocontact

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/storage/sqlite"
)

func setupTracker(t *testing.T) (*Tracker, *clock.Fixed, *events.Capture) {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clk := &clock.Fixed{Instant: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	rec := &events.Capture{}
	return New(store, clk, rec), clk, rec
}

func TestStartPeriodValidation(t *testing.T) {
	tr, _, _ := setupTracker(t)

	p, err := tr.StartPeriod("user-a", "Alex", 30)
	if err != nil {
		t.Fatalf("failed to start period: %v", err)
	}
	if !p.IsActive || p.TargetDays != 30 || p.DaysSinceStart != 0 || p.IsGoalReached {
		t.Errorf("unexpected initial state: %+v", p)
	}

	if _, err := tr.StartPeriod("user-a", "", 30); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error for empty name, got %v", err)
	}
	if _, err := tr.StartPeriod("user-a", "Alex", 0); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error for zero target, got %v", err)
	}
	if _, err := tr.StartPeriod("", "Alex", 30); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
}

func TestProgressDerivation(t *testing.T) {
	tr, clk, _ := setupTracker(t)

	p, err := tr.StartPeriod("user-a", "Alex", 3)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	clk.Advance(36 * time.Hour) // a day and a half
	got, err := tr.Get("user-a", p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DaysSinceStart != 1 {
		t.Errorf("partial days must floor, got %d", got.DaysSinceStart)
	}
	if got.IsGoalReached {
		t.Error("goal should not be reached at day 1 of 3")
	}

	clk.Advance(48 * time.Hour)
	got, err = tr.Get("user-a", p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.DaysSinceStart != 3 || !got.IsGoalReached {
		t.Errorf("expected goal reached at day 3, got %+v", got)
	}
}

func TestEndPeriod(t *testing.T) {
	tr, _, _ := setupTracker(t)

	p, err := tr.StartPeriod("user-a", "Alex", 30)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := tr.EndPeriod("user-b", p.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's end should read as not found, got %v", err)
	}
	if err := tr.EndPeriod("user-a", p.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if err := tr.EndPeriod("user-a", p.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("double end should read as not found, got %v", err)
	}

	got, err := tr.Get("user-a", p.ID)
	if err != nil {
		t.Fatalf("ended period should still be readable: %v", err)
	}
	if got.IsActive {
		t.Error("ended period still active")
	}
}

func TestListFiltersEnded(t *testing.T) {
	tr, _, _ := setupTracker(t)

	active, err := tr.StartPeriod("user-a", "Alex", 30)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	ended, err := tr.StartPeriod("user-a", "Sam", 14)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := tr.EndPeriod("user-a", ended.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	ps, err := tr.List("user-a", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ps) != 1 || ps[0].ID != active.ID {
		t.Errorf("active-only list wrong: %+v", ps)
	}

	all, err := tr.List("user-a", true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 periods with ended included, got %d", len(all))
	}
}

func TestRecordBreachKeepsPeriodIntact(t *testing.T) {
	tr, clk, rec := setupTracker(t)

	p, err := tr.StartPeriod("user-a", "Alex", 30)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(5 * 24 * time.Hour)

	b, err := tr.RecordBreach("user-a", p.ID, "text", "late night weakness")
	if err != nil {
		t.Fatalf("record breach: %v", err)
	}
	if b.BreachType != "text" {
		t.Errorf("breach type = %q", b.BreachType)
	}

	got, err := tr.Get("user-a", p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsActive {
		t.Error("breach must not end the period")
	}
	if !got.StartDate.Equal(p.StartDate) {
		t.Errorf("breach must not reset start date: %v vs %v", got.StartDate, p.StartDate)
	}
	if got.DaysSinceStart != 5 {
		t.Errorf("days since start = %d, want 5", got.DaysSinceStart)
	}

	if len(rec.Events) != 1 || rec.Events[0].Type != events.BreachRecorded {
		t.Errorf("expected one breach_recorded event, got %+v", rec.Events)
	}

	if _, err := tr.RecordBreach("user-a", p.ID, "smoke_signal", ""); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error for bad type, got %v", err)
	}
	if _, err := tr.RecordBreach("user-b", p.ID, "call", ""); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's breach should read as not found, got %v", err)
	}
}

func TestBreachList(t *testing.T) {
	tr, _, _ := setupTracker(t)

	p, err := tr.StartPeriod("user-a", "Alex", 30)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, bt := range []string{"call", "text"} {
		if _, err := tr.RecordBreach("user-a", p.ID, bt, ""); err != nil {
			t.Fatalf("record %s: %v", bt, err)
		}
	}

	bs, err := tr.Breaches("user-a", p.ID)
	if err != nil {
		t.Fatalf("breaches: %v", err)
	}
	if len(bs) != 2 {
		t.Errorf("expected 2 breaches, got %d", len(bs))
	}

	if _, err := tr.Breaches("user-b", p.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's list should read as not found, got %v", err)
	}
}

func TestDeleteBreachOwnershipChain(t *testing.T) {
	tr, _, _ := setupTracker(t)

	p, err := tr.StartPeriod("user-a", "Alex", 30)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	b, err := tr.RecordBreach("user-a", p.ID, "call", "")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := tr.DeleteBreach("user-b", b.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's delete should read as not found, got %v", err)
	}
	if err := tr.DeleteBreach("user-a", b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := tr.DeleteBreach("user-a", b.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("double delete should read as not found, got %v", err)
	}

	bs, err := tr.Breaches("user-a", p.ID)
	if err != nil {
		t.Fatalf("breaches: %v", err)
	}
	if len(bs) != 0 {
		t.Errorf("expected empty breach log, got %d", len(bs))
	}
}

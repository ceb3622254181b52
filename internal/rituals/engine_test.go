package rituals

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/storage/sqlite"
	"github.com/mendapp/mend/internal/validation"
)

func setupEngine(t *testing.T) (*Engine, *clock.Fixed, *events.Capture) {
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

func TestCreateDefaultsAndValidates(t *testing.T) {
	eng, _, _ := setupEngine(t)

	r, err := eng.Create("user-a", validation.UserRitualInput{Title: "Evening walk", Category: "physical"})
	if err != nil {
		t.Fatalf("failed to create ritual: %v", err)
	}
	if r.TargetFrequency != "daily" {
		t.Errorf("frequency should default to daily, got %q", r.TargetFrequency)
	}
	if !r.IsActive {
		t.Error("new ritual should be active")
	}

	if _, err := eng.Create("user-a", validation.UserRitualInput{Category: "physical"}); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error for missing title, got %v", err)
	}
	if _, err := eng.Create("", validation.UserRitualInput{Title: "x", Category: "y"}); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Errorf("expected Unauthenticated, got %v", err)
	}
}

func TestUpdateOwnershipScoped(t *testing.T) {
	eng, _, _ := setupEngine(t)

	r, err := eng.Create("user-a", validation.UserRitualInput{Title: "Journal", Category: "reflection"})
	if err != nil {
		t.Fatalf("failed to create ritual: %v", err)
	}

	upd, err := eng.Update("user-a", r.ID, validation.UserRitualInput{Title: "Morning journal", Category: "reflection", TargetFrequency: "weekly"})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if upd.Title != "Morning journal" || upd.TargetFrequency != "weekly" {
		t.Errorf("update not applied: %+v", upd)
	}

	if _, err := eng.Update("user-b", r.ID, validation.UserRitualInput{Title: "Hijack", Category: "x"}); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's update should read as not found, got %v", err)
	}
}

func TestDeleteIsSoftAndKeepsHistory(t *testing.T) {
	eng, _, _ := setupEngine(t)

	r, err := eng.Create("user-a", validation.UserRitualInput{Title: "Stretch", Category: "physical"})
	if err != nil {
		t.Fatalf("failed to create ritual: %v", err)
	}
	if _, err := eng.RecordCompletion("user-a", r.ID, 3, ""); err != nil {
		t.Fatalf("failed to record completion: %v", err)
	}

	if err := eng.Delete("user-a", r.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if err := eng.Delete("user-a", r.ID); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("second delete should read as not found, got %v", err)
	}

	got, err := eng.Get("user-a", r.ID)
	if err != nil {
		t.Fatalf("deleted ritual should still be readable: %v", err)
	}
	if got.IsActive {
		t.Error("deleted ritual still marked active")
	}

	cs, err := eng.Completions("user-a", r.ID, time.Time{})
	if err != nil {
		t.Fatalf("failed to list completions: %v", err)
	}
	if len(cs) != 1 {
		t.Errorf("completion history should survive deletion, got %d entries", len(cs))
	}

	if _, err := eng.RecordCompletion("user-a", r.ID, 0, ""); !apperr.IsKind(err, apperr.InvalidState) {
		t.Errorf("completing a deleted ritual should fail, got %v", err)
	}
}

func TestListFiltersInactive(t *testing.T) {
	eng, _, _ := setupEngine(t)

	keep, err := eng.Create("user-a", validation.UserRitualInput{Title: "Keep", Category: "social"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gone, err := eng.Create("user-a", validation.UserRitualInput{Title: "Gone", Category: "social"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := eng.Delete("user-a", gone.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	active, err := eng.List("user-a", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].ID != keep.ID {
		t.Errorf("active list wrong: %+v", active)
	}

	all, err := eng.List("user-a", true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rituals with inactive included, got %d", len(all))
	}

	other, err := eng.List("user-b", true)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("user-b should see no rituals, got %d", len(other))
	}
}

func TestRecordCompletionMultiplePerDay(t *testing.T) {
	eng, clk, rec := setupEngine(t)

	r, err := eng.Create("user-a", validation.UserRitualInput{Title: "Breathe", Category: "mindfulness"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := eng.RecordCompletion("user-a", r.ID, 2, "morning"); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	clk.Advance(8 * time.Hour)
	if _, err := eng.RecordCompletion("user-a", r.ID, 4, "evening"); err != nil {
		t.Fatalf("second completion the same day should be allowed: %v", err)
	}

	cs, err := eng.Completions("user-a", r.ID, time.Time{})
	if err != nil {
		t.Fatalf("completions: %v", err)
	}
	if len(cs) != 2 {
		t.Fatalf("expected 2 completions, got %d", len(cs))
	}

	if len(rec.Events) != 2 || rec.Events[0].Type != events.PersonalRitualCompleted {
		t.Errorf("expected 2 personal_ritual_completed events, got %+v", rec.Events)
	}

	if _, err := eng.RecordCompletion("user-b", r.ID, 0, ""); !apperr.IsKind(err, apperr.NotFound) {
		t.Errorf("other user's completion should read as not found, got %v", err)
	}
}

func TestCompletedToday(t *testing.T) {
	eng, clk, _ := setupEngine(t)

	r, err := eng.Create("user-a", validation.UserRitualInput{Title: "Call a friend", Category: "social"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := eng.CompletedToday("user-a", r.ID)
	if err != nil {
		t.Fatalf("completed today: %v", err)
	}
	if done {
		t.Error("fresh ritual should not read as completed today")
	}

	if _, err := eng.RecordCompletion("user-a", r.ID, 0, ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if done, _ := eng.CompletedToday("user-a", r.ID); !done {
		t.Error("completion not visible today")
	}

	clk.Advance(24 * time.Hour)
	if done, _ := eng.CompletedToday("user-a", r.ID); done {
		t.Error("yesterday's completion leaked into today")
	}
}

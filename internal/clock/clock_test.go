package clock

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 03:30 UTC on the 2nd is still the evening of the 1st in New York.
	instant := time.Date(2025, 6, 2, 3, 30, 0, 0, time.UTC)
	if got := DayOf(instant); got != "2025-06-02" {
		t.Errorf("DayOf(UTC) = %q, want %q", got, "2025-06-02")
	}
	if got := DayOf(instant.In(loc)); got != "2025-06-01" {
		t.Errorf("DayOf(New York) = %q, want %q", got, "2025-06-01")
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	start := WindowStart(now, 7)
	want := time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("WindowStart = %v, want %v", start, want)
	}

	if got := WindowStartDay(now, 7); got != "2025-06-03" {
		t.Errorf("WindowStartDay = %q, want %q", got, "2025-06-03")
	}
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"ten full days", now.Add(-10 * 24 * time.Hour), 10},
		{"partial day floors", now.Add(-(3*24 + 23) * time.Hour), 3},
		{"same instant", now, 0},
		{"future start clamps", now.Add(24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, now); got != tt.want {
				t.Errorf("DaysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFixedAdvance(t *testing.T) {
	fc := &Fixed{Instant: time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC)}

	before := DayOf(fc.Now())
	fc.Advance(time.Hour)
	after := DayOf(fc.Now())

	if before != "2025-06-10" || after != "2025-06-11" {
		t.Errorf("day rollover not observed: before=%q after=%q", before, after)
	}
}

func TestParseDay(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")

	got, err := ParseDay("2025-06-10", loc)
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDay = %v, want %v", got, want)
	}

	if _, err := ParseDay("06/10/2025", loc); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestNewSystem(t *testing.T) {
	if _, err := NewSystem("not/a/zone"); err == nil {
		t.Error("expected error for invalid timezone")
	}
	c, err := NewSystem("UTC")
	if err != nil {
		t.Fatalf("NewSystem(UTC) returned error: %v", err)
	}
	if c.Now().Location().String() != "UTC" {
		t.Errorf("Now() location = %q, want UTC", c.Now().Location())
	}
}

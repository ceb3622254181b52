package clock

import (
	"fmt"
	"time"

	"github.com/mendapp/mend/internal/constants"
)

// Clock supplies the current instant. Engines never read the wall clock
// directly so day boundaries stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by the wall clock, normalized to one configured
// location. All day-boundary arithmetic for a deployment happens in this
// single timezone convention.
type System struct {
	loc *time.Location
}

// NewSystem builds a wall Clock in the given IANA timezone. An empty or
// "Local" name selects the system timezone.
func NewSystem(timezone string) (*System, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &System{loc: loc}, nil
}

func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Fixed is a Clock pinned to an instant, for tests and replay. Advance moves
// it forward so day rollovers can be simulated.
type Fixed struct {
	Instant time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

func (f *Fixed) Advance(d time.Duration) {
	f.Instant = f.Instant.Add(d)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// DayOf returns the calendar day (YYYY-MM-DD) containing t, in t's location.
func DayOf(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// WindowStart returns the opening instant of a sliding lookback of the given
// number of days ending at now. Partial days count, so the window is not
// aligned to midnight.
func WindowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// WindowStartDay returns the calendar day (YYYY-MM-DD) the sliding lookback
// opens on. Used when the windowed column stores days rather than instants.
func WindowStartDay(now time.Time, days int) string {
	return DayOf(WindowStart(now, days))
}

// DaysBetween returns the whole days elapsed from start to now, floored.
// Negative spans clamp to zero.
func DaysBetween(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// ParseDay parses a YYYY-MM-DD day string at midnight in the given location.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

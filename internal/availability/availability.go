// Package availability enforces the venue's opening hours and the
// rules for selecting a reservation time window.  All checks are pure:
// the current time is passed in by the caller so behaviour is fully
// testable.  Invalid selections are reported, never stored; a draft
// only ever holds pairs that satisfy end > start.
package availability

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Parse converts an "HH:MM" string into a TimeOfDay.
func Parse(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", s)
	}
	return t, nil
}

// String renders the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t.Minutes() > other.Minutes() }

// Add returns t shifted by d, capped to the same day.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	m := t.Minutes() + int(d.Minutes())
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// Window is the open interval of a single weekday.  A slot hour h is
// inside the window when Open <= h < Close.
type Window struct {
	Open  int
	Close int
}

// Schedule maps each weekday to its opening window.
type Schedule map[time.Weekday]Window

// DefaultSchedule returns the venue's weekly opening hours: Sunday
// 10–20, Monday to Friday 10–22, Saturday 9–23.
func DefaultSchedule() Schedule {
	s := Schedule{
		time.Sunday:   {Open: 10, Close: 20},
		time.Saturday: {Open: 9, Close: 23},
	}
	for d := time.Monday; d <= time.Friday; d++ {
		s[d] = Window{Open: 10, Close: 22}
	}
	return s
}

// WindowFor returns the opening window for the given date's weekday.
func (s Schedule) WindowFor(date time.Time) Window { return s[date.Weekday()] }

// IsWithinOpeningHours reports whether the hour falls inside the
// opening window of the date's weekday.
func (s Schedule) IsWithinOpeningHours(date time.Time, hour int) bool {
	w := s.WindowFor(date)
	return hour >= w.Open && hour < w.Close
}

// IsSelectableForStart reports whether the given time may be chosen as
// a start time on the given date.  A start must leave at least one hour
// before closing, and on the current day it may not lie in the past.
func (s Schedule) IsSelectableForStart(date time.Time, t TimeOfDay, now time.Time) bool {
	w := s.WindowFor(date)
	if t.Hour < w.Open || t.Hour > w.Close-1 {
		return false
	}
	if sameDay(date, now) {
		nowT := TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}
		if nowT.After(t) {
			return false
		}
	}
	return true
}

// IsSelectableForEnd reports whether the given time may be chosen as an
// end time: it must lie strictly after the start and before closing.
func (s Schedule) IsSelectableForEnd(date time.Time, t, start TimeOfDay) bool {
	w := s.WindowFor(date)
	return t.After(start) && t.Hour < w.Close
}

// AdjustEndForStart returns the end time to use after a new start has
// been chosen.  When the current end no longer lies after the start,
// the end auto-advances to start+1h, capped at closing time.  Otherwise
// the current end is kept.
func (s Schedule) AdjustEndForStart(date time.Time, start, end TimeOfDay) TimeOfDay {
	if end.After(start) {
		return end
	}
	adjusted := start.Add(time.Hour)
	if closing := (TimeOfDay{Hour: s.WindowFor(date).Close}); adjusted.After(closing) {
		return closing
	}
	return adjusted
}

// CorrectEnd is the auto-correcting entry path for an end time: an end
// at or before the start becomes start+15min.  Both entry paths
// guarantee end > start before a pair is considered valid.
func CorrectEnd(start, end TimeOfDay) TimeOfDay {
	if end.After(start) {
		return end
	}
	return start.Add(15 * time.Minute)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

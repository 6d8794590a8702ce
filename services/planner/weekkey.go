package planner

import (
	"fmt"
	"time"
)

const weekKeyLayout = "2006-01-02"

// Midnight normalizes t to the start of its calendar day in local time.
// Every date entering the planner goes through this before key derivation;
// mixing raw timestamps with normalized ones is how a meal ends up on the
// wrong week. In zones whose DST gap falls at 00:00 the day starts at
// 01:00, and the result must stay on t's calendar date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return dayStart(y, m, d, t.Location())
}

// AddDays steps n calendar days from t, landing on the start of the target
// day. Plain AddDate can land on the previous evening when the target
// day's midnight does not exist.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return dayStart(y, m, d+n, t.Location())
}

// dayStart resolves the first valid instant of the (possibly denormalized)
// calendar date. Noon always exists, so it anchors the normalization.
func dayStart(y int, m time.Month, d int, loc *time.Location) time.Time {
	noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
	ny, nm, nd := noon.Date()
	start := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	for start.Day() != nd {
		start = start.Add(time.Hour)
	}
	return start
}

// WeekStart returns the Monday at local midnight of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = Midnight(t)
	// time.Weekday has Sunday == 0; Monday-aligned offset.
	offset := (int(t.Weekday()) + 6) % 7
	return AddDays(t, -offset)
}

// WeekKey derives the canonical ISO date string identifying the week
// containing t.
func WeekKey(t time.Time) string {
	return WeekStart(t).Format(weekKeyLayout)
}

// ParseWeekKey parses a week key back to its Monday local-midnight date.
// Keys not aligned to a Monday are rejected.
func ParseWeekKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(weekKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week key %q is not a Monday", key)
	}
	return t, nil
}

package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartAlignsToMonday(t *testing.T) {
	// Thursday, March 14 2024.
	thursday := time.Date(2024, 3, 14, 15, 42, 7, 0, time.Local)
	start := WeekStart(thursday)

	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), start)
}

func TestWeekStartOnMondayIsIdentity(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	assert.Equal(t, monday, WeekStart(monday))

	// A Monday afternoon still keys to that same midnight.
	assert.Equal(t, monday, WeekStart(monday.Add(14*time.Hour)))
}

func TestWeekStartOnSunday(t *testing.T) {
	// Sunday belongs to the week that began the previous Monday.
	sunday := time.Date(2024, 3, 17, 23, 59, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), WeekStart(sunday))
}

func TestWeekKeySameForAllDaysOfWeek(t *testing.T) {
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i).Add(9 * time.Hour)
		assert.Equal(t, "2024-03-11", WeekKey(day), "day offset %d", i)
	}
	assert.Equal(t, "2024-03-18", WeekKey(monday.AddDate(0, 0, 7)))
}

func TestParseWeekKeyRoundTrip(t *testing.T) {
	key := "2024-03-11"
	start, err := ParseWeekKey(key)
	require.NoError(t, err)
	assert.Equal(t, key, WeekKey(start))
	assert.Equal(t, time.Monday, start.Weekday())
}

func TestParseWeekKeyRejectsNonMonday(t *testing.T) {
	_, err := ParseWeekKey("2024-03-14")
	assert.Error(t, err)
}

func TestParseWeekKeyRejectsGarbage(t *testing.T) {
	_, err := ParseWeekKey("not-a-date")
	assert.Error(t, err)
}

func TestMidnightStripsClock(t *testing.T) {
	at := time.Date(2024, 7, 1, 18, 30, 12, 999, time.Local)
	mid := Midnight(at)
	assert.Equal(t, 0, mid.Hour())
	assert.Equal(t, 0, mid.Minute())
	assert.Equal(t, at.Day(), mid.Day())
}

func TestWeekMathAcrossMidnightDSTGap(t *testing.T) {
	scl, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	// Chile springs forward at 00:00 on Sunday September 8 2024; that
	// day has no local midnight.
	sunday := time.Date(2024, 9, 8, 10, 0, 0, 0, scl)

	start := WeekStart(sunday)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, "2024-09-02", start.Format("2006-01-02"))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, "2024-09-02", WeekKey(sunday))

	// The transition day starts at 01:00 but keeps its calendar date.
	mid := Midnight(sunday)
	assert.Equal(t, 8, mid.Day())
	assert.Equal(t, 1, mid.Hour())
}

func TestAddDaysStepsCalendarDays(t *testing.T) {
	scl, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	sat := time.Date(2024, 9, 7, 0, 0, 0, 0, scl)
	assert.Equal(t, 8, AddDays(sat, 1).Day())

	mon := AddDays(sat, 2)
	assert.Equal(t, 9, mon.Day())
	assert.Equal(t, 0, mon.Hour())

	// Plain zones are unaffected.
	base := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local), AddDays(base, 7))
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local), AddDays(base, -7))
}

package planner

import (
	"testing"
	"time"

	"smartplates/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore("user-1")
	engine := NewEngine(store, func() time.Time { return testNow })
	_, err := engine.AddMeal(loc("2024-03-11", 0, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)
	_, err = engine.AddMeal(loc("2024-03-11", 2, models.MealDinner, 0), slotNamed("Curry"))
	require.NoError(t, err)
	return store
}

func TestProjectWeekShowsSevenDays(t *testing.T) {
	store := seededStore(t)
	cursor := time.Date(2024, 3, 14, 9, 0, 0, 0, time.Local)

	vm := Project(ViewWeek, cursor, store, testNow)

	assert.Equal(t, ViewWeek, vm.Mode)
	require.Len(t, vm.Days, models.DaysPerWeek)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), vm.Days[0].Date)
	require.Len(t, vm.Days[0].Meals.Breakfast, 1)
	assert.Equal(t, "Pancakes", vm.Days[0].Meals.Breakfast[0].RecipeName)
	assert.Equal(t, 2, vm.Stats.TotalMeals)
	assert.Equal(t, 2, vm.Stats.DaysWithMeals)
}

func TestProjectWeekMarksToday(t *testing.T) {
	store := seededStore(t)
	vm := Project(ViewWeek, testNow, store, testNow)

	// testNow is Wednesday, March 13.
	for i, cell := range vm.Days {
		assert.Equal(t, i == 2, cell.IsToday, "day %d", i)
	}
}

func TestProjectWeekLazilyCreatesPlan(t *testing.T) {
	store := NewStore("user-1")
	assert.Equal(t, 0, store.Len())

	vm := Project(ViewWeek, testNow, store, testNow)

	assert.Equal(t, 1, store.Len())
	require.Len(t, vm.Days, models.DaysPerWeek)
	for _, cell := range vm.Days {
		assert.Zero(t, cell.Meals.SlotCount())
	}
}

func TestProjectTodayReadsWithoutCreating(t *testing.T) {
	store := NewStore("user-1")

	vm := Project(ViewToday, testNow, store, testNow)

	assert.Equal(t, 0, store.Len())
	require.Len(t, vm.Days, 1)
	assert.True(t, vm.Days[0].IsToday)
	require.NotNil(t, vm.Days[0].Meals)
	assert.Zero(t, vm.Days[0].Meals.SlotCount())
}

func TestProjectTodayShowsPlannedMeals(t *testing.T) {
	store := seededStore(t)
	wednesday := time.Date(2024, 3, 13, 8, 0, 0, 0, time.Local)

	vm := Project(ViewToday, wednesday, store, testNow)

	require.Len(t, vm.Days, 1)
	require.Len(t, vm.Days[0].Meals.Dinner, 1)
	assert.Equal(t, "Curry", vm.Days[0].Meals.Dinner[0].RecipeName)
}

func TestProjectMonthGridShape(t *testing.T) {
	store := seededStore(t)
	cursor := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)

	vm := Project(ViewMonth, cursor, store, testNow)

	require.Len(t, vm.Days, 42)
	// Sunday-first grid.
	assert.Equal(t, time.Sunday, vm.Days[0].Date.Weekday())
	// March 2024 begins on a Friday; the grid starts February 25.
	assert.Equal(t, time.Date(2024, 2, 25, 0, 0, 0, 0, time.Local), vm.Days[0].Date)
	assert.False(t, vm.Days[0].IsCurrentMonth)

	inMonth := 0
	for _, cell := range vm.Days {
		require.NotNil(t, cell.Meals)
		if cell.IsCurrentMonth {
			inMonth++
		}
	}
	assert.Equal(t, 31, inMonth)
}

func TestProjectMonthNeverCreatesPlans(t *testing.T) {
	store := NewStore("user-1")
	cursor := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)

	Project(ViewMonth, cursor, store, testNow)
	Project(ViewToday, cursor, store, testNow)

	assert.Equal(t, 0, store.Len())
}

func TestProjectMonthStatsSpanLoadedPlans(t *testing.T) {
	store := seededStore(t)
	engine := NewEngine(store, func() time.Time { return testNow })
	_, err := engine.AddMeal(loc("2024-03-18", 0, models.MealLunch, 0), slotNamed("Tacos"))
	require.NoError(t, err)

	vm := Project(ViewMonth, time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local), store, testNow)

	assert.Equal(t, 3, vm.Stats.TotalMeals)
	assert.Equal(t, 2, vm.Stats.PlansLoaded)
}

func TestStatsAgreeAcrossViewsForOneWeek(t *testing.T) {
	store := seededStore(t)
	cursor := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)

	week := Project(ViewWeek, cursor, store, testNow)
	month := Project(ViewMonth, cursor, store, testNow)

	// Only one plan is loaded, so per-plan and per-store stats coincide.
	assert.Equal(t, week.Stats.TotalMeals, month.Stats.TotalMeals)
	assert.Equal(t, week.Stats.DaysWithMeals, month.Stats.DaysWithMeals)
}

func TestStepWeek(t *testing.T) {
	cursor := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)

	next := Step(ViewWeek, cursor, StepNext, testNow)
	assert.Equal(t, cursor.AddDate(0, 0, 7), next)

	prev := Step(ViewWeek, cursor, StepPrevious, testNow)
	assert.Equal(t, cursor.AddDate(0, 0, -7), prev)
}

func TestStepTodayAndMonth(t *testing.T) {
	cursor := time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local)

	assert.Equal(t, cursor.AddDate(0, 0, 1), Step(ViewToday, cursor, StepNext, testNow))
	assert.Equal(t, cursor.AddDate(0, 1, 0), Step(ViewMonth, cursor, StepNext, testNow))
	assert.Equal(t, Midnight(testNow), Step(ViewWeek, cursor, StepToday, testNow))
}

func TestStepNeverTouchesStore(t *testing.T) {
	store := NewStore("user-1")
	cursor := time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)

	Step(ViewWeek, cursor, StepNext, testNow)
	Step(ViewMonth, cursor, StepPrevious, testNow)

	assert.Equal(t, 0, store.Len())
}

func TestProjectionsDuringMidnightDSTGapWeek(t *testing.T) {
	scl, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skip("tz database unavailable")
	}
	orig := time.Local
	time.Local = scl
	defer func() { time.Local = orig }()

	// Clocks spring forward at 00:00 on Sunday September 8 2024, so the
	// week of September 2 ends on a day with no local midnight.
	store := NewStore("user-1")
	now := time.Date(2024, 9, 4, 12, 0, 0, 0, scl) // Wednesday
	engine := NewEngine(store, func() time.Time { return now })

	plan := store.GetOrCreate(time.Date(2024, 9, 8, 10, 0, 0, 0, scl))
	require.Equal(t, "2024-09-02", plan.WeekStartDate.Format("2006-01-02"))
	assert.Equal(t, 0, plan.WeekStartDate.Hour())
	for i := range plan.Days {
		assert.Equal(t, 2+i, plan.Days[i].Date.Day(), "day %d", i)
	}

	assert.Equal(t, 2, dayIndexOf(plan, time.Date(2024, 9, 4, 0, 0, 0, 0, scl)))
	assert.Equal(t, 6, dayIndexOf(plan, time.Date(2024, 9, 8, 15, 0, 0, 0, scl)))

	_, err = engine.AddMeal(loc("2024-09-02", 2, models.MealBreakfast, 0), slotNamed("Omelette"))
	require.NoError(t, err)

	vm := Project(ViewToday, now, store, now)
	require.Len(t, vm.Days, 1)
	assert.True(t, vm.Days[0].IsToday)
	require.NotNil(t, vm.Days[0].Meals)
	assert.Len(t, vm.Days[0].Meals.Breakfast, 1)
}

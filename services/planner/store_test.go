package planner

import (
	"testing"
	"time"

	"smartplates/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetOrCreateIsIdempotent(t *testing.T) {
	store := NewStore("user-1")
	thursday := time.Date(2024, 3, 14, 10, 0, 0, 0, time.Local)
	saturday := time.Date(2024, 3, 16, 20, 0, 0, 0, time.Local)

	first := store.GetOrCreate(thursday)
	second := store.GetOrCreate(saturday)

	// Same week, same instance.
	assert.Same(t, first, second)
	assert.Equal(t, 1, store.Len())
}

func TestStoreGetOrCreateShapesNewPlan(t *testing.T) {
	store := NewStore("user-1")
	plan := store.GetOrCreate(time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local))

	require.NotEmpty(t, plan.ID)
	assert.Equal(t, "user-1", plan.UserID)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), plan.WeekStartDate)
	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.Local), plan.WeekEndDate)
	require.Len(t, plan.Days, models.DaysPerWeek)
	for i, day := range plan.Days {
		assert.Equal(t, plan.WeekStartDate.AddDate(0, 0, i), day.Date)
		assert.Zero(t, day.SlotCount())
	}
}

func TestStoreGetMissesUnloadedWeek(t *testing.T) {
	store := NewStore("user-1")
	assert.Nil(t, store.Get("2024-03-11"))
	assert.Nil(t, store.GetForDate(time.Date(2024, 3, 14, 0, 0, 0, 0, time.Local)))
}

func TestStorePutReplacesByWeek(t *testing.T) {
	store := NewStore("user-1")
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)

	original := store.GetOrCreate(monday)
	replacement := models.NewMealPlan("user-1", monday)
	store.Put(replacement)

	assert.Equal(t, 1, store.Len())
	assert.Same(t, replacement, store.Get("2024-03-11"))
	assert.NotSame(t, original, store.Get("2024-03-11"))
}

func TestStorePutDropsStaleKeyForSamePlan(t *testing.T) {
	store := NewStore("user-1")
	monday := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	plan := store.GetOrCreate(monday)

	plan.Realign(monday.AddDate(0, 0, 7))
	store.Put(plan)

	assert.Equal(t, 1, store.Len())
	assert.Nil(t, store.Get("2024-03-11"))
	assert.Same(t, plan, store.Get("2024-03-18"))
}

func TestStorePlansSortedByWeekStart(t *testing.T) {
	store := NewStore("user-1")
	store.GetOrCreate(time.Date(2024, 3, 25, 0, 0, 0, 0, time.Local))
	store.GetOrCreate(time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local))
	store.GetOrCreate(time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local))

	plans := store.Plans()
	require.Len(t, plans, 3)
	assert.True(t, plans[0].WeekStartDate.Before(plans[1].WeekStartDate))
	assert.True(t, plans[1].WeekStartDate.Before(plans[2].WeekStartDate))
}

package planner

import (
	"testing"
	"time"

	"smartplates/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 13, 12, 0, 0, 0, time.Local)

func testEngine(t *testing.T) (*Engine, *Store) {
	t.Helper()
	store := NewStore("user-1")
	return NewEngine(store, func() time.Time { return testNow }), store
}

func slotNamed(name string) models.MealSlot {
	return models.MealSlot{
		ID:          name + "-id",
		RecipeName:  name,
		Servings:    2,
		Ingredients: []string{name + " base"},
	}
}

func loc(weekKey string, day int, mt models.MealType, idx int) Location {
	return Location{WeekKey: weekKey, DayIndex: day, MealType: mt, SlotIndex: idx}
}

func TestAddMealLazilyCreatesWeek(t *testing.T) {
	engine, store := testEngine(t)

	plan, err := engine.AddMeal(loc("2024-03-11", 0, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.Equal(t, 1, store.Len())
	require.Len(t, plan.Days[0].Breakfast, 1)
	assert.Equal(t, "Pancakes", plan.Days[0].Breakfast[0].RecipeName)
	assert.Equal(t, testNow, plan.UpdatedAt)
}

func TestAddMealDefaultsAndClampsServings(t *testing.T) {
	engine, _ := testEngine(t)
	target := loc("2024-03-11", 0, models.MealLunch, 0)

	noServings := slotNamed("Soup")
	noServings.Servings = 0
	plan, err := engine.AddMeal(target, noServings)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultServings, plan.Days[0].Lunch[0].Servings)

	huge := slotNamed("Feast")
	huge.Servings = 99
	plan, err = engine.AddMeal(target, huge)
	require.NoError(t, err)
	assert.Equal(t, models.MaxServings, plan.Days[0].Lunch[1].Servings)
}

func TestAddMealRejectsBadLocation(t *testing.T) {
	engine, _ := testEngine(t)

	_, err := engine.AddMeal(loc("2024-03-11", 7, models.MealDinner, 0), slotNamed("Stew"))
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = engine.AddMeal(loc("2024-03-11", 0, models.MealType("brunch"), 0), slotNamed("Stew"))
	assert.ErrorIs(t, err, ErrInvalidLocation)

	_, err = engine.AddMeal(loc("2024-03-12", 0, models.MealDinner, 0), slotNamed("Stew"))
	assert.ErrorIs(t, err, ErrInvalidLocation)
}

func TestMoveWithinSameDay(t *testing.T) {
	engine, _ := testEngine(t)
	_, err := engine.AddMeal(loc("2024-03-11", 2, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)

	plans, err := engine.Move(
		loc("2024-03-11", 2, models.MealBreakfast, 0),
		loc("2024-03-11", 2, models.MealLunch, 0),
	)
	require.NoError(t, err)
	require.Len(t, plans, 1)

	day := plans[0].Days[2]
	assert.Empty(t, day.Breakfast)
	require.Len(t, day.Lunch, 1)
	assert.Equal(t, "Pancakes", day.Lunch[0].RecipeName)
}

func TestMovePreservesSourceOrderAndAppendsToTarget(t *testing.T) {
	engine, _ := testEngine(t)
	src := loc("2024-03-11", 0, models.MealDinner, 0)
	for _, name := range []string{"One", "Two", "Three"} {
		_, err := engine.AddMeal(src, slotNamed(name))
		require.NoError(t, err)
	}
	_, err := engine.AddMeal(loc("2024-03-11", 1, models.MealDinner, 0), slotNamed("Existing"))
	require.NoError(t, err)

	// Move the middle slot out.
	plans, err := engine.Move(
		loc("2024-03-11", 0, models.MealDinner, 1),
		loc("2024-03-11", 1, models.MealDinner, 0),
	)
	require.NoError(t, err)

	plan := plans[0]
	require.Len(t, plan.Days[0].Dinner, 2)
	assert.Equal(t, "One", plan.Days[0].Dinner[0].RecipeName)
	assert.Equal(t, "Three", plan.Days[0].Dinner[1].RecipeName)

	require.Len(t, plan.Days[1].Dinner, 2)
	assert.Equal(t, "Existing", plan.Days[1].Dinner[0].RecipeName)
	assert.Equal(t, "Two", plan.Days[1].Dinner[1].RecipeName)
}

func TestMoveAcrossWeeksTouchesBothPlans(t *testing.T) {
	engine, store := testEngine(t)
	_, err := engine.AddMeal(loc("2024-03-11", 6, models.MealSnacks, 0), slotNamed("Trail Mix"))
	require.NoError(t, err)

	plans, err := engine.Move(
		loc("2024-03-11", 6, models.MealSnacks, 0),
		loc("2024-03-18", 0, models.MealSnacks, 0),
	)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	srcPlan := store.Get("2024-03-11")
	dstPlan := store.Get("2024-03-18")
	require.NotNil(t, srcPlan)
	require.NotNil(t, dstPlan)

	assert.Empty(t, srcPlan.Days[6].Snacks)
	require.Len(t, dstPlan.Days[0].Snacks, 1)
	assert.Equal(t, "Trail Mix", dstPlan.Days[0].Snacks[0].RecipeName)
	assert.Equal(t, testNow, srcPlan.UpdatedAt)
	assert.Equal(t, testNow, dstPlan.UpdatedAt)
}

func TestMoveConservesTotalSlotCount(t *testing.T) {
	engine, store := testEngine(t)
	for day := 0; day < 3; day++ {
		_, err := engine.AddMeal(loc("2024-03-11", day, models.MealLunch, 0), slotNamed("Meal"))
		require.NoError(t, err)
	}
	before := StoreStats(store).TotalMeals

	_, err := engine.Move(
		loc("2024-03-11", 0, models.MealLunch, 0),
		loc("2024-03-18", 4, models.MealDinner, 0),
	)
	require.NoError(t, err)

	assert.Equal(t, before, StoreStats(store).TotalMeals)
}

func TestMoveSelfDropIsRejected(t *testing.T) {
	engine, store := testEngine(t)
	target := loc("2024-03-11", 0, models.MealBreakfast, 0)
	_, err := engine.AddMeal(target, slotNamed("Pancakes"))
	require.NoError(t, err)

	_, err = engine.Move(target, target)
	assert.ErrorIs(t, err, ErrSelfDrop)

	// Nothing moved.
	require.Len(t, store.Get("2024-03-11").Days[0].Breakfast, 1)
}

func TestMoveStaleSourceIndexIsRejected(t *testing.T) {
	engine, store := testEngine(t)
	_, err := engine.AddMeal(loc("2024-03-11", 0, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)

	_, err = engine.Move(
		loc("2024-03-11", 0, models.MealBreakfast, 5),
		loc("2024-03-11", 1, models.MealBreakfast, 0),
	)
	assert.ErrorIs(t, err, ErrStaleIndex)

	plan := store.Get("2024-03-11")
	require.Len(t, plan.Days[0].Breakfast, 1)
	assert.Empty(t, plan.Days[1].Breakfast)
}

func TestMoveFromUnloadedWeekIsRejected(t *testing.T) {
	engine, _ := testEngine(t)
	_, err := engine.Move(
		loc("2024-03-11", 0, models.MealBreakfast, 0),
		loc("2024-03-18", 0, models.MealBreakfast, 0),
	)
	assert.ErrorIs(t, err, ErrUnknownWeek)
}

func TestMoveValidatesBeforeMutating(t *testing.T) {
	engine, store := testEngine(t)
	_, err := engine.AddMeal(loc("2024-03-11", 0, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)

	// Valid source, invalid target: source must stay intact.
	_, err = engine.Move(
		loc("2024-03-11", 0, models.MealBreakfast, 0),
		loc("2024-03-11", 9, models.MealBreakfast, 0),
	)
	assert.ErrorIs(t, err, ErrInvalidLocation)
	require.Len(t, store.Get("2024-03-11").Days[0].Breakfast, 1)
}

func TestRemoveMeal(t *testing.T) {
	engine, store := testEngine(t)
	target := loc("2024-03-11", 3, models.MealDinner, 0)
	_, err := engine.AddMeal(target, slotNamed("First"))
	require.NoError(t, err)
	_, err = engine.AddMeal(target, slotNamed("Second"))
	require.NoError(t, err)

	plan, err := engine.RemoveMeal(loc("2024-03-11", 3, models.MealDinner, 0))
	require.NoError(t, err)
	require.Len(t, plan.Days[3].Dinner, 1)
	assert.Equal(t, "Second", plan.Days[3].Dinner[0].RecipeName)

	_, err = engine.RemoveMeal(loc("2024-03-11", 3, models.MealDinner, 4))
	assert.ErrorIs(t, err, ErrStaleIndex)
	require.Len(t, store.Get("2024-03-11").Days[3].Dinner, 1)
}

func TestPasteMealDuplicatesWithFreshIdentity(t *testing.T) {
	engine, _ := testEngine(t)
	original := slotNamed("Lasagna")
	_, err := engine.AddMeal(loc("2024-03-11", 0, models.MealDinner, 0), original)
	require.NoError(t, err)

	plan, err := engine.PasteMeal(loc("2024-03-11", 1, models.MealDinner, 0), original)
	require.NoError(t, err)

	pasted := plan.Days[1].Dinner[0]
	assert.Equal(t, "Lasagna", pasted.RecipeName)
	assert.NotEqual(t, original.ID, pasted.ID)

	// The pasted slot's ingredient slice is independent.
	pasted.Ingredients[0] = "changed"
	assert.Equal(t, "Lasagna base", plan.Days[0].Dinner[0].Ingredients[0])
}

func TestAdjustServingsClamps(t *testing.T) {
	engine, _ := testEngine(t)
	target := loc("2024-03-11", 0, models.MealLunch, 0)
	_, err := engine.AddMeal(target, slotNamed("Salad"))
	require.NoError(t, err)

	plan, err := engine.AdjustServings(target, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, plan.Days[0].Lunch[0].Servings)

	plan, err = engine.AdjustServings(target, -100)
	require.NoError(t, err)
	assert.Equal(t, models.MinServings, plan.Days[0].Lunch[0].Servings)

	plan, err = engine.AdjustServings(target, 100)
	require.NoError(t, err)
	assert.Equal(t, models.MaxServings, plan.Days[0].Lunch[0].Servings)
}

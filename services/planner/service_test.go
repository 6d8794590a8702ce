package planner

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartplates/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPlanRepo is an in-memory MealPlanRepository for service tests.
type memPlanRepo struct {
	mu    sync.Mutex
	plans map[string]models.MealPlan
	lists int
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: make(map[string]models.MealPlan)}
}

func (r *memPlanRepo) GetByID(id string) (*models.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.plans[id]; ok {
		cp := *p.Clone()
		return &cp, nil
	}
	return nil, nil
}

func (r *memPlanRepo) ListByUserBetween(userID string, from, to time.Time) ([]models.MealPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	var out []models.MealPlan
	for _, p := range r.plans {
		if p.UserID != userID {
			continue
		}
		if p.WeekStartDate.Before(from) || p.WeekStartDate.After(to) {
			continue
		}
		out = append(out, *p.Clone())
	}
	return out, nil
}

func (r *memPlanRepo) Upsert(_ context.Context, plan *models.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = *plan.Clone()
	return nil
}

func (r *memPlanRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plans, id)
	return nil
}

func newTestService(repo *memPlanRepo) *DefaultPlannerService {
	svc := NewPlannerService(repo, NewBridge(repo, time.Minute), 2)
	svc.Now = func() time.Time { return testNow }
	return svc
}

func TestServiceAddAndViewWeek(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	res, err := svc.AddMeal("user-1",
		loc("2024-03-11", 0, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	require.Len(t, res.Plans, 1)

	vm, err := svc.View("user-1", ViewWeek, time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, vm.Days[0].Meals.Breakfast, 1)
	assert.Equal(t, "Pancakes", vm.Days[0].Meals.Breakfast[0].RecipeName)
}

func TestServiceRejectionsAreNotErrors(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)
	target := loc("2024-03-11", 0, models.MealBreakfast, 0)

	_, err := svc.AddMeal("user-1", target, slotNamed("Pancakes"))
	require.NoError(t, err)

	// Self-drop.
	res, err := svc.Move("user-1", target, target)
	require.NoError(t, err)
	assert.False(t, res.Applied)

	// Stale index.
	res, err = svc.RemoveMeal("user-1", loc("2024-03-11", 0, models.MealBreakfast, 9))
	require.NoError(t, err)
	assert.False(t, res.Applied)

	// Bad week key.
	res, err = svc.RemoveMeal("user-1", loc("2024-03-12", 0, models.MealBreakfast, 0))
	require.NoError(t, err)
	assert.False(t, res.Applied)

	// The original meal survived every rejection.
	plan, err := svc.Plan("user-1", "2024-03-11")
	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.Days[0].Breakfast, 1)
}

func TestServicePersistsMutationsThroughBridge(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	res, err := svc.AddMeal("user-1",
		loc("2024-03-11", 1, models.MealDinner, 0), slotNamed("Curry"))
	require.NoError(t, err)
	require.Len(t, res.Plans, 1)
	planID := res.Plans[0].ID

	svc.FlushAll()
	stored, err := repo.GetByID(planID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Days[1].Dinner, 1)
	assert.Equal(t, "Curry", stored.Days[1].Dinner[0].RecipeName)
}

func TestServiceHydratesExistingPlans(t *testing.T) {
	repo := newMemPlanRepo()
	seeded := models.NewMealPlan("user-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local))
	seeded.Days[0].Breakfast = append(seeded.Days[0].Breakfast,
		models.MealSlot{ID: "a", RecipeName: "Oatmeal", Servings: 2})
	require.NoError(t, repo.Upsert(context.Background(), seeded))

	svc := newTestService(repo)
	vm, err := svc.View("user-1", ViewWeek, time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, vm.Days[0].Meals.Breakfast, 1)
	assert.Equal(t, "Oatmeal", vm.Days[0].Meals.Breakfast[0].RecipeName)
}

func TestServiceHydrationSkipsCoveredRange(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)
	cursor := time.Date(2024, 3, 13, 0, 0, 0, 0, time.Local)

	_, err := svc.View("user-1", ViewWeek, cursor)
	require.NoError(t, err)
	listsAfterFirst := repo.lists

	// A second view inside the hydrated window queries nothing new.
	_, err = svc.View("user-1", ViewWeek, cursor.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, listsAfterFirst, repo.lists)
}

func TestServiceLocalPlansSurviveRehydration(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	_, err := svc.AddMeal("user-1",
		loc("2024-03-11", 0, models.MealLunch, 0), slotNamed("Tacos"))
	require.NoError(t, err)

	// Widen the hydration window far past the loaded range.
	_, err = svc.View("user-1", ViewWeek, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	plan, err := svc.Plan("user-1", "2024-03-11")
	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.Days[0].Lunch, 1)
}

func TestServiceCrossWeekMoveReturnsBothPlans(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	_, err := svc.AddMeal("user-1",
		loc("2024-03-11", 6, models.MealSnacks, 0), slotNamed("Trail Mix"))
	require.NoError(t, err)

	res, err := svc.Move("user-1",
		loc("2024-03-11", 6, models.MealSnacks, 0),
		loc("2024-03-18", 0, models.MealSnacks, 0))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	require.Len(t, res.Plans, 2)
}

func TestServicePlanReturnsCloneNotLiveState(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	_, err := svc.AddMeal("user-1",
		loc("2024-03-11", 0, models.MealBreakfast, 0), slotNamed("Pancakes"))
	require.NoError(t, err)

	snapshot, err := svc.Plan("user-1", "2024-03-11")
	require.NoError(t, err)
	snapshot.Days[0].Breakfast[0].RecipeName = "Tampered"

	fresh, err := svc.Plan("user-1", "2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", fresh.Days[0].Breakfast[0].RecipeName)
}

func TestServicePlanUnknownWeekIsNil(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	plan, err := svc.Plan("user-1", "2024-03-11")
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestServiceMutatePlanSchedulesSave(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)

	plan, err := svc.MutatePlan("user-1", "2024-03-11", func(p *models.MealPlan) error {
		p.Title = "Spring week"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Spring week", plan.Title)

	svc.FlushAll()
	stored, err := repo.GetByID(plan.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Spring week", stored.Title)
}

func TestServiceSaveStatusUnloadedWeekIsIdle(t *testing.T) {
	repo := newMemPlanRepo()
	svc := newTestService(repo)
	assert.Equal(t, SaveIdle, svc.SaveStatus("user-1", "2024-03-11"))
}

package planner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"smartplates/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSaver captures upserted snapshots and signals each write.
type recordingSaver struct {
	mu      sync.Mutex
	saved   []*models.MealPlan
	failErr error
	wrote   chan struct{}
}

func newRecordingSaver() *recordingSaver {
	return &recordingSaver{wrote: make(chan struct{}, 16)}
}

func (r *recordingSaver) Upsert(_ context.Context, plan *models.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		r.wrote <- struct{}{}
		return r.failErr
	}
	r.saved = append(r.saved, plan)
	r.wrote <- struct{}{}
	return nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}

func (r *recordingSaver) last() *models.MealPlan {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.saved) == 0 {
		return nil
	}
	return r.saved[len(r.saved)-1]
}

func waitForWrite(t *testing.T, saver *recordingSaver) {
	t.Helper()
	select {
	case <-saver.wrote:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save")
	}
}

func testPlan() *models.MealPlan {
	return models.NewMealPlan("user-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local))
}

func TestBridgeDebouncesRapidEditsIntoOneWrite(t *testing.T) {
	saver := newRecordingSaver()
	bridge := NewBridge(saver, 30*time.Millisecond)
	plan := testPlan()

	bridge.Save(plan)
	plan.Days[0].Breakfast = append(plan.Days[0].Breakfast, models.MealSlot{ID: "a", RecipeName: "Pancakes", Servings: 2})
	bridge.Save(plan)
	plan.Days[0].Lunch = append(plan.Days[0].Lunch, models.MealSlot{ID: "b", RecipeName: "Soup", Servings: 2})
	bridge.Save(plan)

	waitForWrite(t, saver)
	assert.Equal(t, 1, saver.count())

	// The single write carries the final state of the plan.
	got := saver.last()
	require.NotNil(t, got)
	require.Len(t, got.Days[0].Breakfast, 1)
	require.Len(t, got.Days[0].Lunch, 1)
}

func TestBridgeSnapshotsAtSaveTime(t *testing.T) {
	saver := newRecordingSaver()
	bridge := NewBridge(saver, 30*time.Millisecond)
	plan := testPlan()
	plan.Days[0].Dinner = append(plan.Days[0].Dinner, models.MealSlot{ID: "a", RecipeName: "Curry", Servings: 2})

	bridge.Save(plan)
	// Mutating the live plan after Save must not alter the queued snapshot.
	plan.Days[0].Dinner[0].RecipeName = "Changed"

	waitForWrite(t, saver)
	got := saver.last()
	require.NotNil(t, got)
	assert.Equal(t, "Curry", got.Days[0].Dinner[0].RecipeName)
}

func TestBridgeStatusLifecycle(t *testing.T) {
	saver := newRecordingSaver()
	bridge := NewBridge(saver, 20*time.Millisecond)
	plan := testPlan()

	assert.Equal(t, SaveIdle, bridge.Status(plan.ID))

	bridge.Save(plan)
	waitForWrite(t, saver)

	// Saved lingers before reverting to idle.
	assert.Eventually(t, func() bool {
		return bridge.Status(plan.ID) == SaveSaved
	}, time.Second, 5*time.Millisecond)
}

func TestBridgeErrorStateOnFailedWrite(t *testing.T) {
	saver := newRecordingSaver()
	saver.failErr = errors.New("write refused")
	bridge := NewBridge(saver, 20*time.Millisecond)
	plan := testPlan()

	bridge.Save(plan)
	waitForWrite(t, saver)

	assert.Eventually(t, func() bool {
		return bridge.Status(plan.ID) == SaveError
	}, time.Second, 5*time.Millisecond)
}

func TestBridgeSeparatePlansFlushIndependently(t *testing.T) {
	saver := newRecordingSaver()
	bridge := NewBridge(saver, 20*time.Millisecond)
	planA := testPlan()
	planB := models.NewMealPlan("user-1", time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local))

	bridge.Save(planA)
	bridge.Save(planB)

	waitForWrite(t, saver)
	waitForWrite(t, saver)
	assert.Equal(t, 2, saver.count())
}

func TestBridgeFlushBypassesDebounce(t *testing.T) {
	saver := newRecordingSaver()
	bridge := NewBridge(saver, time.Hour)
	plan := testPlan()

	bridge.Save(plan)
	assert.Equal(t, 0, saver.count())

	bridge.Flush(plan.ID)
	waitForWrite(t, saver)
	assert.Equal(t, 1, saver.count())
}

func TestBridgeFlushAllDrainsEverything(t *testing.T) {
	saver := newRecordingSaver()
	bridge := NewBridge(saver, time.Hour)

	bridge.Save(testPlan())
	bridge.Save(models.NewMealPlan("user-1", time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local)))

	bridge.FlushAll()
	waitForWrite(t, saver)
	waitForWrite(t, saver)
	assert.Equal(t, 2, saver.count())
}

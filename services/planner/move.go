package planner

import (
	"errors"
	"time"

	"smartplates/models"
)

// Move validation errors. Callers treat all of them as silent no-ops: a
// drop raced against a re-render is not worth an error toast.
var (
	ErrUnknownWeek     = errors.New("no plan loaded for week")
	ErrInvalidLocation = errors.New("invalid slot location")
	ErrStaleIndex      = errors.New("slot index out of range")
	ErrSelfDrop        = errors.New("source and target are identical")
)

// Location addresses one slot position: a week, a day within it, a bucket,
// and an index inside the bucket.
type Location struct {
	WeekKey   string          `json:"weekKey"`
	DayIndex  int             `json:"dayIndex"`
	MealType  models.MealType `json:"mealType"`
	SlotIndex int             `json:"slotIndex"`
}

// Engine applies meal mutations to a store. Every successful mutation bumps
// the touched plans' UpdatedAt; flushing them to the remote store is the
// caller's job.
type Engine struct {
	store *Store
	now   func() time.Time
}

// NewEngine wraps a store. The clock is injectable for tests.
func NewEngine(store *Store, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, now: now}
}

// bucketAt resolves a location to its bucket, without index validation.
func (e *Engine) bucketAt(loc Location, create bool) (*models.MealPlan, *[]models.MealSlot, error) {
	if !loc.MealType.Valid() || loc.DayIndex < 0 || loc.DayIndex >= models.DaysPerWeek {
		return nil, nil, ErrInvalidLocation
	}
	plan := e.store.Get(loc.WeekKey)
	if plan == nil {
		if !create {
			return nil, nil, ErrUnknownWeek
		}
		weekStart, err := ParseWeekKey(loc.WeekKey)
		if err != nil {
			return nil, nil, ErrInvalidLocation
		}
		plan = e.store.GetOrCreate(weekStart)
	}
	day := plan.Day(loc.DayIndex)
	bucket := day.Bucket(loc.MealType)
	if bucket == nil {
		return nil, nil, ErrInvalidLocation
	}
	return plan, bucket, nil
}

// Move relocates one slot from src to dst. Removal preserves the order of
// the remaining source slots; insertion appends at the end of the target
// bucket. A cross-week move updates both plans in one logical transaction:
// all validation happens before either plan is touched. Returns the
// updated plans (one, or two for cross-week moves).
func (e *Engine) Move(src, dst Location) ([]*models.MealPlan, error) {
	if src == dst {
		// Self-drop: the drag ended where it started.
		return nil, ErrSelfDrop
	}
	srcPlan, srcBucket, err := e.bucketAt(src, false)
	if err != nil {
		return nil, err
	}
	if src.SlotIndex < 0 || src.SlotIndex >= len(*srcBucket) {
		return nil, ErrStaleIndex
	}
	dstPlan, dstBucket, err := e.bucketAt(dst, true)
	if err != nil {
		return nil, err
	}
	slot := (*srcBucket)[src.SlotIndex]
	*srcBucket = append((*srcBucket)[:src.SlotIndex], (*srcBucket)[src.SlotIndex+1:]...)
	*dstBucket = append(*dstBucket, slot)

	now := e.now()
	srcPlan.UpdatedAt = now
	dstPlan.UpdatedAt = now
	if srcPlan == dstPlan {
		return []*models.MealPlan{srcPlan}, nil
	}
	return []*models.MealPlan{srcPlan, dstPlan}, nil
}

// AddMeal appends a slot to the addressed bucket, lazily creating the
// week's plan. SlotIndex on the location is ignored.
func (e *Engine) AddMeal(loc Location, slot models.MealSlot) (*models.MealPlan, error) {
	plan, bucket, err := e.bucketAt(loc, true)
	if err != nil {
		return nil, err
	}
	if slot.Servings == 0 {
		slot.Servings = models.DefaultServings
	}
	slot.Servings = models.ClampServings(slot.Servings)
	*bucket = append(*bucket, slot)
	plan.UpdatedAt = e.now()
	return plan, nil
}

// PasteMeal appends a duplicate of a previously copied slot. The duplicate
// gets its own identity so the two never share mutable state.
func (e *Engine) PasteMeal(loc Location, slot models.MealSlot) (*models.MealPlan, error) {
	return e.AddMeal(loc, slot.Clone())
}

// RemoveMeal deletes the slot at the location's index. The index is
// revalidated against the current bucket length: a stale index from a
// concurrent re-render is a no-op, not a crash.
func (e *Engine) RemoveMeal(loc Location) (*models.MealPlan, error) {
	plan, bucket, err := e.bucketAt(loc, false)
	if err != nil {
		return nil, err
	}
	if loc.SlotIndex < 0 || loc.SlotIndex >= len(*bucket) {
		return nil, ErrStaleIndex
	}
	*bucket = append((*bucket)[:loc.SlotIndex], (*bucket)[loc.SlotIndex+1:]...)
	plan.UpdatedAt = e.now()
	return plan, nil
}

// AdjustServings changes the serving count of the slot at loc by delta,
// clamped to the valid range.
func (e *Engine) AdjustServings(loc Location, delta int) (*models.MealPlan, error) {
	plan, bucket, err := e.bucketAt(loc, false)
	if err != nil {
		return nil, err
	}
	if loc.SlotIndex < 0 || loc.SlotIndex >= len(*bucket) {
		return nil, ErrStaleIndex
	}
	slot := &(*bucket)[loc.SlotIndex]
	slot.Servings = models.ClampServings(slot.Servings + delta)
	plan.UpdatedAt = e.now()
	return plan, nil
}

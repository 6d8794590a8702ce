package planner

import (
	"errors"
	"fmt"
	"sync"
	"time"

	mealplanRepo "smartplates/database/repository/mealplan"
	"smartplates/models"
	"smartplates/utils"

	"go.uber.org/zap"
)

// PlannerService is the only mutation path views get to a user's meal
// plans: projections, moves, edits, and save status.
type PlannerService interface {
	// View projects the store for the given mode and cursor date.
	View(userID string, mode ViewMode, cursor time.Time) (ViewModel, error)
	// Move relocates a slot between locations.
	Move(userID string, src, dst Location) (MoveResult, error)
	// AddMeal appends a slot to a bucket.
	AddMeal(userID string, loc Location, slot models.MealSlot) (MoveResult, error)
	// PasteMeal appends a duplicate of a copied slot.
	PasteMeal(userID string, loc Location, slot models.MealSlot) (MoveResult, error)
	// RemoveMeal deletes a slot by index.
	RemoveMeal(userID string, loc Location) (MoveResult, error)
	// AdjustServings changes a slot's serving count by delta.
	AdjustServings(userID string, loc Location, delta int) (MoveResult, error)
	// Plan returns a snapshot of the plan for the given week key, or nil.
	Plan(userID, weekKey string) (*models.MealPlan, error)
	// MutatePlan runs fn against the live plan for weekKey (lazily
	// creating it), then schedules a save. Used by collaborators such as
	// shopping-list generation.
	MutatePlan(userID, weekKey string, fn func(*models.MealPlan) error) (*models.MealPlan, error)
	// SaveStatus reports the persistence state for the week's plan.
	SaveStatus(userID, weekKey string) SaveState
	// FlushAll drains pending saves, for shutdown.
	FlushAll()
}

// MoveResult reports whether a mutation was applied and the plans it
// touched. Rejected mutations (stale index, self-drop) come back with
// Applied=false and no error: the UI simply re-renders.
type MoveResult struct {
	Applied bool               `json:"applied"`
	Plans   []*models.MealPlan `json:"plans,omitempty"`
}

// session is one user's store plus the repo range already hydrated into it.
type session struct {
	store      *Store
	loadedFrom time.Time
	loadedTo   time.Time
}

// DefaultPlannerService is the production implementation.
type DefaultPlannerService struct {
	Repo   mealplanRepo.MealPlanRepository
	Bridge *Bridge
	// HydrationWeeks is how many weeks either side of the first cursor get
	// loaded when a user's session starts.
	HydrationWeeks int
	Now            func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewPlannerService wires a service around the repo and bridge.
func NewPlannerService(repo mealplanRepo.MealPlanRepository, bridge *Bridge, hydrationWeeks int) *DefaultPlannerService {
	if hydrationWeeks <= 0 {
		hydrationWeeks = 5
	}
	return &DefaultPlannerService{
		Repo:           repo,
		Bridge:         bridge,
		HydrationWeeks: hydrationWeeks,
		Now:            time.Now,
		sessions:       make(map[string]*session),
	}
}

// sessionFor returns (creating if needed) the user's session with the
// weeks around the cursor hydrated. Caller must hold s.mu.
func (s *DefaultPlannerService) sessionFor(userID string, around time.Time) (*session, error) {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{store: NewStore(userID)}
		s.sessions[userID] = sess
	}
	span := time.Duration(s.HydrationWeeks) * 7 * 24 * time.Hour
	from := WeekStart(around.Add(-span))
	to := WeekStart(around.Add(span))
	if err := s.hydrate(sess, from, to); err != nil {
		return nil, err
	}
	return sess, nil
}

// hydrate loads repo plans for any part of [from, to] not yet covered.
// Locally loaded plans are never overwritten: the in-memory store stays
// authoritative for anything the user has touched.
func (s *DefaultPlannerService) hydrate(sess *session, from, to time.Time) error {
	if !sess.loadedFrom.IsZero() && !from.Before(sess.loadedFrom) && !to.After(sess.loadedTo) {
		return nil
	}
	if !sess.loadedFrom.IsZero() {
		if sess.loadedFrom.Before(from) {
			from = sess.loadedFrom
		}
		if sess.loadedTo.After(to) {
			to = sess.loadedTo
		}
	}
	plans, err := s.Repo.ListByUserBetween(sess.store.UserID(), from, AddDays(to, models.DaysPerWeek-1))
	if err != nil {
		return fmt.Errorf("failed to hydrate meal plans: %w", err)
	}
	for i := range plans {
		plan := plans[i]
		// Dates come back from the remote store as instants; realign to
		// local midnight so the index/date invariant holds.
		weekStart := WeekStart(plan.WeekStartDate.In(time.Local))
		plan.Realign(weekStart)
		if sess.store.Get(WeekKey(weekStart)) == nil {
			sess.store.Put(&plan)
		}
	}
	sess.loadedFrom = from
	sess.loadedTo = to
	return nil
}

// ensureWeek hydrates a single week addressed by key. Caller holds s.mu.
func (s *DefaultPlannerService) ensureWeek(sess *session, weekKey string) error {
	weekStart, err := ParseWeekKey(weekKey)
	if err != nil {
		return err
	}
	return s.hydrate(sess, weekStart, weekStart)
}

// View projects the user's store. Week views lazily create the cursor's
// plan; today and month views only read.
func (s *DefaultPlannerService) View(userID string, mode ViewMode, cursor time.Time) (ViewModel, error) {
	if !mode.Valid() {
		mode = ViewWeek
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(userID, cursor)
	if err != nil {
		return ViewModel{}, err
	}
	created := sess.store.Len()
	vm := Project(mode, cursor, sess.store, s.Now())
	if sess.store.Len() > created {
		// The projection minted a fresh plan for this week; persist it so
		// the week exists remotely even before the first edit.
		if plan := sess.store.GetForDate(cursor); plan != nil {
			s.Bridge.Save(plan)
		}
	}
	return vm, nil
}

// mutate runs a store mutation under the session lock, mapping validation
// rejections to an unapplied result and scheduling saves for every touched
// plan.
func (s *DefaultPlannerService) mutate(userID string, weeks []string, around time.Time, fn func(*Engine) ([]*models.MealPlan, error)) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(userID, around)
	if err != nil {
		return MoveResult{}, err
	}
	for _, wk := range weeks {
		if err := s.ensureWeek(sess, wk); err != nil {
			// Unparseable week keys are invalid locations, not failures.
			utils.GetLogger().Debug("rejecting mutation for bad week key",
				zap.String("weekKey", wk), zap.Error(err))
			return MoveResult{}, nil
		}
	}

	engine := NewEngine(sess.store, s.Now)
	plans, err := fn(engine)
	if err != nil {
		if isRejection(err) {
			return MoveResult{}, nil
		}
		return MoveResult{}, err
	}
	result := MoveResult{Applied: true, Plans: make([]*models.MealPlan, 0, len(plans))}
	for _, plan := range plans {
		s.Bridge.Save(plan)
		result.Plans = append(result.Plans, plan.Clone())
	}
	return result, nil
}

// isRejection classifies engine errors that are silent no-ops by design.
func isRejection(err error) bool {
	return errors.Is(err, ErrSelfDrop) ||
		errors.Is(err, ErrStaleIndex) ||
		errors.Is(err, ErrInvalidLocation) ||
		errors.Is(err, ErrUnknownWeek)
}

func (s *DefaultPlannerService) Move(userID string, src, dst Location) (MoveResult, error) {
	return s.mutate(userID, []string{src.WeekKey, dst.WeekKey}, s.Now(), func(e *Engine) ([]*models.MealPlan, error) {
		return e.Move(src, dst)
	})
}

func (s *DefaultPlannerService) AddMeal(userID string, loc Location, slot models.MealSlot) (MoveResult, error) {
	return s.mutate(userID, []string{loc.WeekKey}, s.Now(), func(e *Engine) ([]*models.MealPlan, error) {
		plan, err := e.AddMeal(loc, slot)
		if err != nil {
			return nil, err
		}
		return []*models.MealPlan{plan}, nil
	})
}

func (s *DefaultPlannerService) PasteMeal(userID string, loc Location, slot models.MealSlot) (MoveResult, error) {
	return s.mutate(userID, []string{loc.WeekKey}, s.Now(), func(e *Engine) ([]*models.MealPlan, error) {
		plan, err := e.PasteMeal(loc, slot)
		if err != nil {
			return nil, err
		}
		return []*models.MealPlan{plan}, nil
	})
}

func (s *DefaultPlannerService) RemoveMeal(userID string, loc Location) (MoveResult, error) {
	return s.mutate(userID, []string{loc.WeekKey}, s.Now(), func(e *Engine) ([]*models.MealPlan, error) {
		plan, err := e.RemoveMeal(loc)
		if err != nil {
			return nil, err
		}
		return []*models.MealPlan{plan}, nil
	})
}

func (s *DefaultPlannerService) AdjustServings(userID string, loc Location, delta int) (MoveResult, error) {
	return s.mutate(userID, []string{loc.WeekKey}, s.Now(), func(e *Engine) ([]*models.MealPlan, error) {
		plan, err := e.AdjustServings(loc, delta)
		if err != nil {
			return nil, err
		}
		return []*models.MealPlan{plan}, nil
	})
}

// Plan returns a snapshot of the plan for the given week key, or nil when
// the week holds no plan. Snapshots are clones: collaborators like export
// must never reach the live store state.
func (s *DefaultPlannerService) Plan(userID, weekKey string) (*models.MealPlan, error) {
	weekStart, err := ParseWeekKey(weekKey)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(userID, weekStart)
	if err != nil {
		return nil, err
	}
	plan := sess.store.Get(weekKey)
	if plan == nil {
		return nil, nil
	}
	return plan.Clone(), nil
}

// MutatePlan runs fn against the live plan for weekKey, lazily creating
// it, then bumps UpdatedAt and schedules a save.
func (s *DefaultPlannerService) MutatePlan(userID, weekKey string, fn func(*models.MealPlan) error) (*models.MealPlan, error) {
	weekStart, err := ParseWeekKey(weekKey)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessionFor(userID, weekStart)
	if err != nil {
		return nil, err
	}
	plan := sess.store.GetOrCreate(weekStart)
	if err := fn(plan); err != nil {
		return nil, err
	}
	plan.UpdatedAt = s.Now()
	s.Bridge.Save(plan)
	return plan.Clone(), nil
}

// SaveStatus reports the persistence state for the week's plan. Unloaded
// weeks are idle.
func (s *DefaultPlannerService) SaveStatus(userID, weekKey string) SaveState {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	var planID string
	if ok {
		if plan := sess.store.Get(weekKey); plan != nil {
			planID = plan.ID
		}
	}
	s.mu.Unlock()
	if planID == "" {
		return SaveIdle
	}
	return s.Bridge.Status(planID)
}

// FlushAll drains pending saves, for shutdown.
func (s *DefaultPlannerService) FlushAll() {
	s.Bridge.FlushAll()
}

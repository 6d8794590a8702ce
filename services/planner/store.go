package planner

import (
	"sort"
	"time"

	"smartplates/models"
)

// Store is the single source of truth for one user's loaded meal plans: a
// map from week key to plan. Views read from it and request mutations
// through the engine; nothing else writes to it. The owning service
// serializes access, so Store itself carries no lock.
type Store struct {
	userID string
	plans  map[string]*models.MealPlan
}

// NewStore creates an empty store for the given user.
func NewStore(userID string) *Store {
	return &Store{
		userID: userID,
		plans:  make(map[string]*models.MealPlan),
	}
}

// UserID returns the owning user.
func (s *Store) UserID() string {
	return s.userID
}

// Get returns the plan for the given week key, or nil when none is loaded.
func (s *Store) Get(weekKey string) *models.MealPlan {
	return s.plans[weekKey]
}

// GetForDate returns the plan owning the week containing date, or nil.
func (s *Store) GetForDate(date time.Time) *models.MealPlan {
	return s.plans[WeekKey(date)]
}

// GetOrCreate returns the plan for the week containing date, synthesizing
// an empty one when the week has never been touched. Idempotent: two calls
// with dates in the same week return the same plan instance.
func (s *Store) GetOrCreate(date time.Time) *models.MealPlan {
	key := WeekKey(date)
	if plan, ok := s.plans[key]; ok {
		return plan
	}
	plan := models.NewMealPlan(s.userID, WeekStart(date))
	s.plans[key] = plan
	return plan
}

// Put inserts or replaces the entry for the plan's week. Any stale entry
// still pointing at the same plan under a different key is dropped first,
// so a changed weekStartDate cannot leave the plan reachable twice.
func (s *Store) Put(plan *models.MealPlan) {
	key := WeekKey(plan.WeekStartDate)
	for k, p := range s.plans {
		if p.ID == plan.ID && k != key {
			delete(s.plans, k)
		}
	}
	s.plans[key] = plan
}

// Len reports how many plans are loaded.
func (s *Store) Len() int {
	return len(s.plans)
}

// Plans returns all loaded plans ordered by week start.
func (s *Store) Plans() []*models.MealPlan {
	out := make([]*models.MealPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WeekStartDate.Before(out[j].WeekStartDate)
	})
	return out
}

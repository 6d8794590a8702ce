package planner

import "smartplates/models"

// Stats summarizes meal coverage for a plan or a whole store.
type Stats struct {
	TotalMeals    int `json:"totalMeals"`
	DaysWithMeals int `json:"daysWithMeals"`
	PlansLoaded   int `json:"plansLoaded"`
}

// PlanStats sums slot counts across the seven days of one plan.
func PlanStats(plan *models.MealPlan) Stats {
	return Stats{
		TotalMeals:    plan.TotalSlots(),
		DaysWithMeals: plan.DaysWithMeals(),
		PlansLoaded:   1,
	}
}

// StoreStats sums across every plan currently loaded, for dashboard use.
func StoreStats(store *Store) Stats {
	var st Stats
	for _, plan := range store.Plans() {
		st.TotalMeals += plan.TotalSlots()
		st.DaysWithMeals += plan.DaysWithMeals()
		st.PlansLoaded++
	}
	return st
}

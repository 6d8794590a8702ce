package mealplanRepo

import (
	"context"
	"time"

	"smartplates/models"
)

// MealPlanRepository defines methods for meal-plan data access. Plans are
// keyed by their own ID and addressed by (userId, weekStartDate) for range
// queries.
type MealPlanRepository interface {
	// GetByID retrieves a plan by its unique ID.
	GetByID(id string) (*models.MealPlan, error)
	// ListByUserBetween retrieves all plans for a user whose week start
	// falls inside [from, to], ordered by week start.
	ListByUserBetween(userID string, from, to time.Time) ([]models.MealPlan, error)
	// Upsert writes the plan document, inserting it when missing.
	Upsert(ctx context.Context, plan *models.MealPlan) error
	// Delete removes a plan document by its ID.
	Delete(id string) error
}

package shopping

import (
	"strings"

	"smartplates/models"
	"smartplates/services/planner"
)

// BuildList aggregates the ingredients of every slot in the plan into one
// de-duplicated shopping list. Matching is case-insensitive; the first
// spelling seen wins, and items keep first-appearance order.
func BuildList(plan *models.MealPlan) []models.ShoppingItem {
	var items []models.ShoppingItem
	index := make(map[string]int)

	for d := range plan.Days {
		day := &plan.Days[d]
		for _, mt := range models.MealTypes {
			for _, slot := range *day.Bucket(mt) {
				for _, ing := range slot.Ingredients {
					name := strings.TrimSpace(ing)
					if name == "" {
						continue
					}
					key := strings.ToLower(name)
					if i, ok := index[key]; ok {
						items[i].Count++
						continue
					}
					index[key] = len(items)
					items = append(items, models.ShoppingItem{Name: name, Count: 1})
				}
			}
		}
	}
	return items
}

// ShoppingService generates and stores shopping lists for meal plans.
type ShoppingService interface {
	// Generate builds the shopping list for the plan of the given week and
	// records it on the plan document.
	Generate(userID, weekKey string) (*models.MealPlan, error)
}

// DefaultShoppingService is the production implementation. It mutates
// plans only through the planner, which owns the store.
type DefaultShoppingService struct {
	Planner planner.PlannerService
}

// Generate builds and persists the shopping list for one week's plan.
func (s *DefaultShoppingService) Generate(userID, weekKey string) (*models.MealPlan, error) {
	return s.Planner.MutatePlan(userID, weekKey, func(plan *models.MealPlan) error {
		plan.ShoppingList = BuildList(plan)
		plan.ShoppingListGenerated = true
		return nil
	})
}

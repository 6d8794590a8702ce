package shopping

import (
	"testing"
	"time"

	"smartplates/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planWithIngredients(t *testing.T) *models.MealPlan {
	t.Helper()
	plan := models.NewMealPlan("user-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local))
	plan.Days[0].Breakfast = append(plan.Days[0].Breakfast, models.MealSlot{
		ID: "a", RecipeName: "Omelette", Servings: 2,
		Ingredients: []string{"Eggs", "Butter", "chives"},
	})
	plan.Days[0].Dinner = append(plan.Days[0].Dinner, models.MealSlot{
		ID: "b", RecipeName: "Fried Rice", Servings: 2,
		Ingredients: []string{"eggs", "Rice", "  "},
	})
	plan.Days[3].Lunch = append(plan.Days[3].Lunch, models.MealSlot{
		ID: "c", RecipeName: "Egg Salad", Servings: 2,
		Ingredients: []string{"EGGS", "Butter"},
	})
	return plan
}

func TestBuildListAggregatesCaseInsensitively(t *testing.T) {
	list := BuildList(planWithIngredients(t))

	byName := make(map[string]models.ShoppingItem)
	for _, item := range list {
		byName[item.Name] = item
	}

	// First spelling seen wins.
	eggs, ok := byName["Eggs"]
	require.True(t, ok)
	assert.Equal(t, 3, eggs.Count)

	butter, ok := byName["Butter"]
	require.True(t, ok)
	assert.Equal(t, 2, butter.Count)

	assert.Contains(t, byName, "chives")
	assert.Contains(t, byName, "Rice")
	// Blank ingredients are dropped.
	assert.Len(t, list, 4)
}

func TestBuildListKeepsFirstAppearanceOrder(t *testing.T) {
	list := BuildList(planWithIngredients(t))
	require.Len(t, list, 4)
	assert.Equal(t, "Eggs", list[0].Name)
	assert.Equal(t, "Butter", list[1].Name)
	assert.Equal(t, "chives", list[2].Name)
	assert.Equal(t, "Rice", list[3].Name)
}

func TestBuildListEmptyPlan(t *testing.T) {
	plan := models.NewMealPlan("user-1", time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local))
	assert.Empty(t, BuildList(plan))
}

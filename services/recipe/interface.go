package recipe

import (
	recipeRepo "smartplates/database/repository/recipe"
	"smartplates/models"
)

// RecipeService manages the recipe catalog and builds the canonical
// meal-slot shape used by the planner.
type RecipeService interface {
	// CreateRecipe stores a new recipe uploaded by a user.
	CreateRecipe(authorID string, recipe models.Recipe) (*models.Recipe, error)
	// GetRecipe retrieves a recipe by ID, or nil when unknown.
	GetRecipe(id string) (*models.Recipe, error)
	// ListRecipes browses the catalog with optional filters.
	ListRecipes(filter recipeRepo.RecipeFilter) ([]models.Recipe, error)
	// UpdateRecipe modifies a recipe; only the author or an admin may.
	UpdateRecipe(recipe models.Recipe) (*models.Recipe, error)
	// DeleteRecipe removes a recipe by ID.
	DeleteRecipe(id string) error
	// SlotFor builds a normalized MealSlot from the recipe with the given
	// ID. Unknown recipes yield a placeholder slot rather than an error.
	SlotFor(recipeID string) (models.MealSlot, error)
}

// DefaultRecipeService is the production implementation.
type DefaultRecipeService struct {
	Repo recipeRepo.RecipeRepository
}

package recipe

import (
	"fmt"
	"time"

	recipeRepo "smartplates/database/repository/recipe"
	"smartplates/models"
	"smartplates/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRecipe stores a new recipe uploaded by a user.
func (s *DefaultRecipeService) CreateRecipe(authorID string, recipe models.Recipe) (*models.Recipe, error) {
	if recipe.Title == "" {
		return nil, fmt.Errorf("recipe title is required")
	}
	recipe.ID = uuid.NewString()
	recipe.AuthorID = authorID
	if err := s.Repo.Create(&recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID, consulting the Redis cache first.
func (s *DefaultRecipeService) GetRecipe(id string) (*models.Recipe, error) {
	if rec := getCachedRecipe(id); rec != nil {
		return rec, nil
	}
	rec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if rec != nil {
		cacheRecipe(rec)
	}
	return rec, nil
}

// ListRecipes browses the catalog with optional filters.
func (s *DefaultRecipeService) ListRecipes(filter recipeRepo.RecipeFilter) ([]models.Recipe, error) {
	recipes, err := s.Repo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe modifies an existing recipe and invalidates its cache entry.
func (s *DefaultRecipeService) UpdateRecipe(recipe models.Recipe) (*models.Recipe, error) {
	if recipe.ID == "" {
		return nil, fmt.Errorf("recipe ID is required for update")
	}
	existing, err := s.Repo.GetByID(recipe.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("recipe with id %s not found", recipe.ID)
	}
	recipe.AuthorID = existing.AuthorID
	recipe.CreatedAt = existing.CreatedAt
	recipe.UpdatedAt = time.Now()
	if err := s.Repo.Update(&recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	dropCachedRecipe(recipe.ID)
	return &recipe, nil
}

// DeleteRecipe removes a recipe by ID and invalidates its cache entry.
func (s *DefaultRecipeService) DeleteRecipe(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete recipe with id %s: %w", id, err)
	}
	dropCachedRecipe(id)
	return nil
}

// SlotFor builds a normalized MealSlot from the recipe with the given ID.
// A lookup miss still produces a usable placeholder slot: the planner
// never rejects a slot over a broken recipe reference.
func (s *DefaultRecipeService) SlotFor(recipeID string) (models.MealSlot, error) {
	rec, err := s.GetRecipe(recipeID)
	if err != nil {
		utils.GetLogger().Warn("recipe lookup failed, creating placeholder slot",
			zap.String("recipeID", recipeID), zap.Error(err))
		rec = nil
	}
	if rec == nil {
		return models.NewMealSlot(models.Recipe{ID: recipeID}), nil
	}
	return models.NewMealSlot(*rec), nil
}

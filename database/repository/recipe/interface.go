package recipeRepo

import "smartplates/models"

// RecipeFilter narrows a recipe listing.
type RecipeFilter struct {
	// Query is matched against title and description text.
	Query string
	// Tags must all be present on a matching recipe.
	Tags []string
	// AuthorID restricts results to one uploader.
	AuthorID string
	// Limit caps the number of results; 0 means the repository default.
	Limit int64
}

// RecipeRepository defines methods for recipe data access.
type RecipeRepository interface {
	// GetByID retrieves a recipe by its unique ID.
	GetByID(id string) (*models.Recipe, error)
	// List retrieves recipes matching the filter, newest first.
	List(filter RecipeFilter) ([]models.Recipe, error)
	// Create inserts a new recipe record.
	Create(recipe *models.Recipe) error
	// Update modifies an existing recipe record.
	Update(recipe *models.Recipe) error
	// Delete removes a recipe record by its ID.
	Delete(id string) error
}

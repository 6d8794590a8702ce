package handlers

import (
	"net/http"
	"strconv"
	"strings"

	recipeRepo "smartplates/database/repository/recipe"
	"smartplates/models"
	"smartplates/services/recipe"
	"smartplates/services/user"
	"smartplates/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipeHandler wraps the recipe catalog service.
type RecipeHandler struct {
	RecipeService recipe.RecipeService
	UserService   user.UserService
}

// CreateRecipeHandler handles POST /recipes.
func (h *RecipeHandler) CreateRecipeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var rec models.Recipe
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	created, err := h.RecipeService.CreateRecipe(userID, rec)
	if err != nil {
		logger.Error("Failed to create recipe", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRecipeHandler handles GET /recipes/:id.
func (h *RecipeHandler) GetRecipeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	rec, err := h.RecipeService.GetRecipe(id)
	if err != nil {
		logger.Error("Failed to fetch recipe", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListRecipesHandler handles GET /recipes?q=&tags=a,b&author=&limit=.
func (h *RecipeHandler) ListRecipesHandler(c *gin.Context) {
	logger := utils.GetLogger()
	filter := recipeRepo.RecipeFilter{
		Query:    c.Query("q"),
		AuthorID: c.Query("author"),
	}
	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		filter.Limit = limit
	}
	recipes, err := h.RecipeService.ListRecipes(filter)
	if err != nil {
		logger.Error("Failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// UpdateRecipeHandler handles PUT /recipes/:id. Only the author or an
// admin may edit a recipe.
func (h *RecipeHandler) UpdateRecipeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	var rec models.Recipe
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	rec.ID = id

	if !h.canModify(c, userID, id) {
		return
	}
	updated, err := h.RecipeService.UpdateRecipe(rec)
	if err != nil {
		logger.Error("Failed to update recipe", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteRecipeHandler handles DELETE /recipes/:id.
func (h *RecipeHandler) DeleteRecipeHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !h.canModify(c, userID, id) {
		return
	}
	if err := h.RecipeService.DeleteRecipe(id); err != nil {
		logger.Error("Failed to delete recipe", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// canModify checks that the caller authored the recipe or holds the admin
// role, writing the error response itself on rejection.
func (h *RecipeHandler) canModify(c *gin.Context, userID, recipeID string) bool {
	existing, err := h.RecipeService.GetRecipe(recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return false
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return false
	}
	if existing.AuthorID == userID {
		return true
	}
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil || usr == nil || !usr.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to modify this recipe"})
		return false
	}
	return true
}

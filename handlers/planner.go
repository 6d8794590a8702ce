package handlers

import (
	"net/http"
	"time"

	"smartplates/models"
	"smartplates/services/export"
	"smartplates/services/planner"
	"smartplates/services/recipe"
	"smartplates/services/shopping"
	"smartplates/services/tasks"
	"smartplates/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PlannerHandler exposes the meal-plan views and editing operations.
type PlannerHandler struct {
	Planner   planner.PlannerService
	Recipes   recipe.RecipeService
	Shopping  shopping.ShoppingService
	Reminders *asynq.Client
}

// authedUserID pulls the user ID set by the auth middleware.
func authedUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		utils.GetLogger().Error("Invalid user ID type in context", zap.Any("userID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID type"})
		return "", false
	}
	return idStr, true
}

// ViewPlanHandler handles GET /plans/view?mode=week&date=2024-03-11.
// Mode defaults to week, date to today.
func (h *PlannerHandler) ViewPlanHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	mode := planner.ViewMode(c.DefaultQuery("mode", string(planner.ViewWeek)))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view mode"})
		return
	}
	cursor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		cursor = parsed
	}

	vm, err := h.Planner.View(userID, mode, cursor)
	if err != nil {
		logger.Error("Failed to project plan view",
			zap.String("userID", userID), zap.String("mode", string(mode)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan view"})
		return
	}
	c.JSON(http.StatusOK, vm)
}

// NavigatePlanHandler handles GET /plans/navigate?mode=week&date=...&direction=next.
// It returns the shifted cursor plus the projection for it, so clients never
// implement the date math themselves.
func (h *PlannerHandler) NavigatePlanHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	mode := planner.ViewMode(c.DefaultQuery("mode", string(planner.ViewWeek)))
	dir := planner.Direction(c.DefaultQuery("direction", string(planner.StepToday)))
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view mode"})
		return
	}
	cursor := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		cursor = parsed
	}

	next := planner.Step(mode, cursor, dir, time.Now())
	vm, err := h.Planner.View(userID, mode, next)
	if err != nil {
		logger.Error("Failed to project plan view after navigation",
			zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plan view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cursor": next.Format("2006-01-02"), "view": vm})
}

// GetPlanHandler handles GET /plans/week/:weekKey.
func (h *PlannerHandler) GetPlanHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	weekKey := c.Param("weekKey")
	plan, err := h.Planner.Plan(userID, weekKey)
	if err != nil {
		logger.Error("Failed to fetch plan", zap.String("weekKey", weekKey), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week key"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plan for that week"})
		return
	}
	c.JSON(http.StatusOK, plan)
}

type moveMealRequest struct {
	Source planner.Location `json:"source" binding:"required"`
	Target planner.Location `json:"target" binding:"required"`
}

// MoveMealHandler handles POST /plans/meals/move. A rejected move (stale
// index, identical source and target) returns 200 with applied=false so the
// client re-renders from the returned state.
func (h *PlannerHandler) MoveMealHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req moveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	result, err := h.Planner.Move(userID, req.Source, req.Target)
	if err != nil {
		logger.Error("Failed to move meal", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move meal"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type addMealRequest struct {
	WeekKey  string           `json:"weekKey" binding:"required"`
	DayIndex int              `json:"dayIndex"`
	MealType models.MealType  `json:"mealType" binding:"required"`
	RecipeID string           `json:"recipeId"`
	Slot     *models.MealSlot `json:"slot"`
	Servings int              `json:"servings"`
}

// AddMealHandler handles POST /plans/meals. The meal comes either from a
// recipe reference or an inline slot payload.
func (h *PlannerHandler) AddMealHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req addMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var slot models.MealSlot
	switch {
	case req.RecipeID != "":
		var err error
		slot, err = h.Recipes.SlotFor(req.RecipeID)
		if err != nil {
			logger.Error("Failed to build slot from recipe",
				zap.String("recipeID", req.RecipeID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve recipe"})
			return
		}
	case req.Slot != nil:
		slot = *req.Slot
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either recipeId or slot is required"})
		return
	}
	if req.Servings > 0 {
		slot.Servings = models.ClampServings(req.Servings)
	}

	loc := planner.Location{WeekKey: req.WeekKey, DayIndex: req.DayIndex, MealType: req.MealType}
	result, err := h.Planner.AddMeal(userID, loc, slot)
	if err != nil {
		logger.Error("Failed to add meal", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add meal"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type pasteMealRequest struct {
	WeekKey  string          `json:"weekKey" binding:"required"`
	DayIndex int             `json:"dayIndex"`
	MealType models.MealType `json:"mealType" binding:"required"`
	Slot     models.MealSlot `json:"slot" binding:"required"`
}

// PasteMealHandler handles POST /plans/meals/paste. The copied slot is
// duplicated under a fresh ID; the source slot is untouched.
func (h *PlannerHandler) PasteMealHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req pasteMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	loc := planner.Location{WeekKey: req.WeekKey, DayIndex: req.DayIndex, MealType: req.MealType}
	result, err := h.Planner.PasteMeal(userID, loc, req.Slot)
	if err != nil {
		logger.Error("Failed to paste meal", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to paste meal"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveMealHandler handles POST /plans/meals/remove.
func (h *PlannerHandler) RemoveMealHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var loc planner.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	result, err := h.Planner.RemoveMeal(userID, loc)
	if err != nil {
		logger.Error("Failed to remove meal", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove meal"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type adjustServingsRequest struct {
	Location planner.Location `json:"location" binding:"required"`
	Delta    int              `json:"delta" binding:"required"`
}

// AdjustServingsHandler handles POST /plans/meals/servings.
func (h *PlannerHandler) AdjustServingsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req adjustServingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	result, err := h.Planner.AdjustServings(userID, req.Location, req.Delta)
	if err != nil {
		logger.Error("Failed to adjust servings", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust servings"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SaveStatusHandler handles GET /plans/week/:weekKey/save-status. Clients poll
// this to drive the idle/saving/saved indicator.
func (h *PlannerHandler) SaveStatusHandler(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	weekKey := c.Param("weekKey")
	state := h.Planner.SaveStatus(userID, weekKey)
	c.JSON(http.StatusOK, gin.H{"weekKey": weekKey, "status": state})
}

// GenerateShoppingListHandler handles POST /plans/week/:weekKey/shopping-list.
func (h *PlannerHandler) GenerateShoppingListHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	weekKey := c.Param("weekKey")
	plan, err := h.Shopping.Generate(userID, weekKey)
	if err != nil {
		logger.Error("Failed to generate shopping list",
			zap.String("userID", userID), zap.String("weekKey", weekKey), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate shopping list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekKey": weekKey, "shoppingList": plan.ShoppingList})
}

// ExportPlanHandler handles GET /plans/week/:weekKey/export.ics and streams the
// week as an iCalendar attachment.
func (h *PlannerHandler) ExportPlanHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	weekKey := c.Param("weekKey")
	plan, err := h.Planner.Plan(userID, weekKey)
	if err != nil {
		logger.Error("Failed to fetch plan for export", zap.String("weekKey", weekKey), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week key"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plan for that week"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+export.FileName(plan))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(export.RenderICS(plan)))
}

type scheduleRemindersRequest struct {
	DayIndex int `json:"dayIndex"`
}

// ScheduleRemindersHandler handles POST /plans/week/:weekKey/reminders. It
// enqueues one reminder task per planned meal on the requested day.
func (h *PlannerHandler) ScheduleRemindersHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	weekKey := c.Param("weekKey")
	var req scheduleRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.DayIndex < 0 || req.DayIndex >= models.DaysPerWeek {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dayIndex must be between 0 and 6"})
		return
	}

	plan, err := h.Planner.Plan(userID, weekKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week key"})
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No plan for that week"})
		return
	}

	payloads := tasks.RemindersForDay(plan, req.DayIndex)
	scheduled := 0
	for _, p := range payloads {
		fireAt := tasks.FireTime(plan.Days[req.DayIndex].Date, models.MealType(p.MealType))
		if fireAt.Before(time.Now()) {
			continue
		}
		task, opts, err := tasks.NewMealReminderTask(p, fireAt)
		if err != nil {
			logger.Error("Failed to build reminder task", zap.Error(err))
			continue
		}
		if _, err := h.Reminders.Enqueue(task, opts...); err != nil {
			logger.Error("Failed to enqueue reminder task", zap.Error(err))
			continue
		}
		scheduled++
	}
	c.JSON(http.StatusOK, gin.H{"scheduled": scheduled})
}

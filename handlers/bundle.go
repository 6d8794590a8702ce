package handlers

import (
	userRepoPkg "smartplates/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth and user endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc
	GetProfileHandler          gin.HandlerFunc
	UpdateUserHandler          gin.HandlerFunc
	UpdateUserPasswordHandler  gin.HandlerFunc
	DeleteUserHandler          gin.HandlerFunc
	GetNotificationsHandler    gin.HandlerFunc

	// Planner endpoints
	ViewPlanHandler             gin.HandlerFunc
	NavigatePlanHandler         gin.HandlerFunc
	GetPlanHandler              gin.HandlerFunc
	MoveMealHandler             gin.HandlerFunc
	AddMealHandler              gin.HandlerFunc
	PasteMealHandler            gin.HandlerFunc
	RemoveMealHandler           gin.HandlerFunc
	AdjustServingsHandler       gin.HandlerFunc
	SaveStatusHandler           gin.HandlerFunc
	GenerateShoppingListHandler gin.HandlerFunc
	ExportPlanHandler           gin.HandlerFunc
	ScheduleRemindersHandler    gin.HandlerFunc

	// Recipe endpoints
	CreateRecipeHandler gin.HandlerFunc
	GetRecipeHandler    gin.HandlerFunc
	ListRecipesHandler  gin.HandlerFunc
	UpdateRecipeHandler gin.HandlerFunc
	DeleteRecipeHandler gin.HandlerFunc

	// AI endpoints
	RecognizeIngredientsHandler gin.HandlerFunc

	// Storage endpoints
	UploadImageHandler gin.HandlerFunc
	DeleteImageHandler gin.HandlerFunc
	SecureURLHandler   gin.HandlerFunc

	// Admin endpoints
	GetAllUsersHandler    gin.HandlerFunc
	DeleteUserByIDHandler gin.HandlerFunc
}

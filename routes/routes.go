package routes

import (
	"net/http"
	"time"

	"smartplates/handlers"
	"smartplates/middleware"
	"smartplates/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and logout endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/logout", hb.RevokeUserAuthTokenHandler)
	}
}

// RegisterUserRoutes registers account endpoints for the authenticated user.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateUserHandler)
		api.PUT("/me/password", hb.UpdateUserPasswordHandler)
		api.DELETE("/me", hb.DeleteUserHandler)
		api.GET("/me/notifications", hb.GetNotificationsHandler)
	}
}

// RegisterPlanRoutes registers meal-plan views, editing and export.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/plans")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.GET("/view", hb.ViewPlanHandler)
		api.GET("/navigate", hb.NavigatePlanHandler)
		api.GET("/week/:weekKey", hb.GetPlanHandler)
		api.GET("/week/:weekKey/save-status", hb.SaveStatusHandler)
		api.GET("/week/:weekKey/export.ics", hb.ExportPlanHandler)
		api.POST("/week/:weekKey/shopping-list", hb.GenerateShoppingListHandler)
		api.POST("/week/:weekKey/reminders", hb.ScheduleRemindersHandler)

		api.POST("/meals", hb.AddMealHandler)
		api.POST("/meals/move", hb.MoveMealHandler)
		api.POST("/meals/paste", hb.PasteMealHandler)
		api.POST("/meals/remove", hb.RemoveMealHandler)
		api.POST("/meals/servings", hb.AdjustServingsHandler)
	}
}

// RegisterRecipeRoutes registers the recipe catalog endpoints. Browsing is
// public; contributing requires authentication.
func RegisterRecipeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/recipes")
	{
		api.GET("", hb.ListRecipesHandler)
		api.GET("/:id", hb.GetRecipeHandler)

		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("", hb.CreateRecipeHandler)
		api.PUT("/:id", hb.UpdateRecipeHandler)
		api.DELETE("/:id", hb.DeleteRecipeHandler)
	}
}

// RegisterAIRoutes registers ingredient-recognition endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/ingredients", hb.RecognizeIngredientsHandler)
	}
}

// RegisterStorageRoutes registers image upload and URL endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		api.POST("/upload/:bucket", hb.UploadImageHandler)
		api.DELETE("", hb.DeleteImageHandler)
		api.GET("/secure-url", hb.SecureURLHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.AdminOnlyMiddleware(hb.UserRepo))
		adminGroup.GET("/users", hb.GetAllUsersHandler)
		adminGroup.DELETE("/users/:id", hb.DeleteUserByIDHandler)
		adminGroup.GET("/recipes", hb.ListRecipesHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterPlanRoutes(r, hb)
	RegisterRecipeRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}

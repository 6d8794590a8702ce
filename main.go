package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartplates/config"
	"smartplates/cron"
	"smartplates/database"
	mealplanRepoPkg "smartplates/database/repository/mealplan"
	recipeRepoPkg "smartplates/database/repository/recipe"
	userRepoPkg "smartplates/database/repository/user"
	"smartplates/handlers"
	"smartplates/middleware"
	"smartplates/routes"
	ai "smartplates/services/intelligence"
	"smartplates/services/planner"
	"smartplates/services/recipe"
	"smartplates/services/shopping"
	"smartplates/services/user"
	"smartplates/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	recipeRepo := recipeRepoPkg.NewMongoRecipeRepo()
	mealplanRepo := mealplanRepoPkg.NewMongoMealPlanRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	recipeService := &recipe.DefaultRecipeService{
		Repo: recipeRepo,
	}

	debounce := time.Duration(config.AppConfig.PlanSaveDebounceMS) * time.Millisecond
	bridge := planner.NewBridge(mealplanRepo, debounce)
	plannerService := planner.NewPlannerService(mealplanRepo, bridge, config.AppConfig.PlanHydrationWeeks)

	shoppingService := &shopping.DefaultShoppingService{
		Planner: plannerService,
	}

	aiSvc := ai.NewDefaultAIService(
		config.AppConfig.GeminiAPIKey,
		utils.GetCacheClient(),
	)

	reminderClient := cron.NewReminderClient()
	defer reminderClient.Close()
	cron.InitReminderWorker(userService)

	userHandler := &handlers.UserHandler{UserService: userService}
	recipeHandler := &handlers.RecipeHandler{RecipeService: recipeService, UserService: userService}
	plannerHandler := &handlers.PlannerHandler{
		Planner:   plannerService,
		Recipes:   recipeService,
		Shopping:  shoppingService,
		Reminders: reminderClient,
	}
	aiHandler := &handlers.AIHandler{AIService: aiSvc}
	storageHandler := handlers.NewStorageHandler(cloudinaryStorageService)
	adminHandler := handlers.NewAdminHandler(userService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth and user endpoints.
		RegisterUserHandler:        userHandler.RegisterUserHandler,
		AuthenticateUserHandler:    userHandler.AuthenticateUserHandler,
		RevokeUserAuthTokenHandler: userHandler.RevokeUserAuthTokenHandler,
		GetProfileHandler:          userHandler.GetProfileHandler,
		UpdateUserHandler:          userHandler.UpdateUserHandler,
		UpdateUserPasswordHandler:  userHandler.UpdateUserPasswordHandler,
		DeleteUserHandler:          userHandler.DeleteUserHandler,
		GetNotificationsHandler:    userHandler.GetNotificationsHandler,

		// Planner endpoints.
		ViewPlanHandler:             plannerHandler.ViewPlanHandler,
		NavigatePlanHandler:         plannerHandler.NavigatePlanHandler,
		GetPlanHandler:              plannerHandler.GetPlanHandler,
		MoveMealHandler:             plannerHandler.MoveMealHandler,
		AddMealHandler:              plannerHandler.AddMealHandler,
		PasteMealHandler:            plannerHandler.PasteMealHandler,
		RemoveMealHandler:           plannerHandler.RemoveMealHandler,
		AdjustServingsHandler:       plannerHandler.AdjustServingsHandler,
		SaveStatusHandler:           plannerHandler.SaveStatusHandler,
		GenerateShoppingListHandler: plannerHandler.GenerateShoppingListHandler,
		ExportPlanHandler:           plannerHandler.ExportPlanHandler,
		ScheduleRemindersHandler:    plannerHandler.ScheduleRemindersHandler,

		// Recipe endpoints.
		CreateRecipeHandler: recipeHandler.CreateRecipeHandler,
		GetRecipeHandler:    recipeHandler.GetRecipeHandler,
		ListRecipesHandler:  recipeHandler.ListRecipesHandler,
		UpdateRecipeHandler: recipeHandler.UpdateRecipeHandler,
		DeleteRecipeHandler: recipeHandler.DeleteRecipeHandler,

		// AI endpoints.
		RecognizeIngredientsHandler: aiHandler.RecognizeIngredientsHandler,

		// Storage endpoints.
		UploadImageHandler: storageHandler.UploadImageHandler,
		DeleteImageHandler: storageHandler.DeleteImageHandler,
		SecureURLHandler:   storageHandler.SecureURLHandler,

		// Admin endpoints.
		GetAllUsersHandler:    adminHandler.GetAllUsersHandler,
		DeleteUserByIDHandler: adminHandler.DeleteUserByIDHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	// Drain pending plan saves before the process exits.
	plannerService.FlushAll()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

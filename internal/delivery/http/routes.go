package http

import (
	"github.com/gin-gonic/gin"

	"github.com/macrolens/nutrilog/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		foods := v1.Group("/foods")
		{
			foods.GET("/search", handler.SearchFoods)
			foods.GET("/saved", handler.ListSavedFoods)
			foods.POST("/saved", handler.ToggleSavedFood)
			foods.GET("/:fdcId", handler.GetFood)
		}

		logs := v1.Group("/log")
		{
			logs.GET("", handler.ListLog)
			logs.POST("/foods", handler.LogFood)
			logs.POST("/meals/:mealId", handler.LogMeal)
			logs.DELETE("/today", handler.ResetToday)
			logs.DELETE("/:entryId", handler.DeleteLogEntry)
		}

		v1.GET("/totals", handler.GetTotals)

		meals := v1.Group("/meals")
		{
			meals.GET("", handler.ListMeals)
			meals.POST("", handler.CreateMeal)
			meals.POST("/hydrate", handler.HydrateFoods)
			meals.GET("/:id", handler.GetMeal)
			meals.PUT("/:id", handler.UpdateMeal)
			meals.DELETE("/:id", handler.DeleteMeal)
			meals.GET("/:id/calories", handler.GetMealCalories)
		}

		settings := v1.Group("/settings")
		{
			settings.GET("/profile", handler.GetProfile)
			settings.PUT("/profile", handler.SetProfile)
		}
	}

	return router
}

// Package api exposes the REST surface: auth, habits, categories, time
// records, focus sessions, and the analytics endpoints.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/flowstate/api/internal/auth"
	"github.com/flowstate/api/internal/service"
	"github.com/flowstate/api/internal/storage"
)

// API bundles the services behind the HTTP handlers.
type API struct {
	tokens      *auth.Manager
	users       *service.UserService
	habits      *service.HabitService
	categories  *service.CategoryService
	timeRecords *service.TimeRecordService
	focus       *service.FocusService
	analytics   *service.AnalyticsService
}

// New wires an API over the store.
func New(store *storage.Store, tokens *auth.Manager) *API {
	return &API{
		tokens:      tokens,
		users:       service.NewUserService(store),
		habits:      service.NewHabitService(store),
		categories:  service.NewCategoryService(store),
		timeRecords: service.NewTimeRecordService(store),
		focus:       service.NewFocusService(store),
		analytics:   service.NewAnalyticsService(store),
	}
}

// Router builds the gin engine with all routes registered.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", a.register)
		authGroup.POST("/login", a.login)
	}

	protected := api.Group("/")
	protected.Use(a.authenticate())
	{
		habits := protected.Group("/habits")
		{
			habits.GET("/today", a.getTodayHabits)
			habits.POST("", a.createHabit)
			habits.POST("/:habitId/log", a.logHabit)
			habits.POST("/seed", a.seedHabitHistory)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", a.getCategories)
			categories.POST("", a.createCategory)
			categories.DELETE("/:id", a.deleteCategory)
		}

		records := protected.Group("/time-records")
		{
			records.GET("", a.getTimeRecords)
			records.POST("", a.createTimeRecord)
			records.PUT("/:id", a.updateTimeRecord)
			records.DELETE("/:id", a.deleteTimeRecord)
		}

		focus := protected.Group("/focus")
		{
			focus.POST("/sessions", a.createFocusSession)
			focus.GET("/sessions", a.getFocusSessions)
			focus.GET("/today-stats", a.getFocusTodayStats)
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/time-allocation", a.getTimeAllocation)
			analytics.GET("/habit-consistency", a.getHabitConsistency)
			analytics.GET("/habit-heatmap", a.getHabitHeatmap)
			analytics.GET("/heatmap", a.getHeatmap)
			analytics.GET("/achievements", a.getAchievements)
		}
	}

	return r
}

package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/northpole96/habit/internal/api/handlers"
)

type HabitsRoutes struct {
	handler *handlers.HabitsHandler
}

func NewHabitsRoutes(handler *handlers.HabitsHandler) *HabitsRoutes {
	return &HabitsRoutes{
		handler: handler,
	}
}

// RegisterRoutes registers all habit-related routes
func (h *HabitsRoutes) RegisterRoutes(router *gin.Engine) {
	habits := router.Group("/api/habits")

	// List and aggregate views first, compressed; grids and heatmaps
	// are the largest payloads the API serves.
	habits.GET("", gzip.Gzip(gzip.DefaultCompression), h.handler.ListHabits)
	habits.POST("", h.handler.CreateHabit)
	habits.GET("/heatmap", gzip.Gzip(gzip.DefaultCompression), h.handler.GetHeatmap)
	habits.POST("/reorder", h.handler.ReorderHabits)

	// CRUD operations with parameters
	habits.GET("/:id", h.handler.GetHabit)
	habits.PUT("/:id", h.handler.UpdateHabit)
	habits.DELETE("/:id", h.handler.DeleteHabit)

	// History mutation
	habits.POST("/:id/toggle", h.handler.ToggleDay)
	habits.POST("/:id/entries", h.handler.SetEntry)

	// Derived views
	habits.GET("/:id/stats", h.handler.GetHabitStats)
	habits.GET("/:id/grid", gzip.Gzip(gzip.DefaultCompression), h.handler.GetHabitGrid)
	habits.GET("/:id/activity", h.handler.GetHabitActivity)
}

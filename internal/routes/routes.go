package routes

import (
	"github.com/shaoyun/taskmaster-pro/internal/handlers"
	"github.com/shaoyun/taskmaster-pro/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Setup wires the API route table onto a fresh gin engine.
func Setup(h *handlers.Handler) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Task endpoints
		api.GET("/tasks", h.ListTasks)
		api.GET("/tasks/matrix", h.GetMatrix)
		api.POST("/tasks", h.CreateTask)
		api.GET("/tasks/:id", h.GetTaskByID)
		api.PUT("/tasks/:id", h.UpdateTask)
		api.PATCH("/tasks/:id/status", h.UpdateTaskStatus)
		api.POST("/tasks/:id/toggle", h.ToggleTaskStatus)
		api.DELETE("/tasks/:id", h.DeleteTask)

		// Sprint endpoints
		api.GET("/sprints", h.ListSprints)
		api.GET("/sprints/active", h.GetActiveSprint)
		api.POST("/sprints", h.CreateSprint)
		api.GET("/sprints/:id", h.GetSprintByID)
		api.PUT("/sprints/:id", h.UpdateSprint)
		api.PATCH("/sprints/:id/status", h.UpdateSprintStatus)
		api.GET("/sprints/:id/stats", h.GetSprintStats)
		api.DELETE("/sprints/:id", h.DeleteSprint)

		// Derived views
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/calendar", h.GetCalendar)
		api.GET("/reminders", h.GetReminders)

		// Tags and configuration
		api.GET("/tags", h.ListTags)
		api.GET("/config/sprint", h.GetSprintConfig)
		api.PUT("/config/sprint", h.UpdateSprintConfig)

		// External enrichment
		api.POST("/ai/breakdown", h.BreakdownTask)
		api.GET("/holidays", h.GetHolidays)
	}

	return router
}

package handlers

import (
	"net/http"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"github.com/gin-gonic/gin"
)

// SprintConfigRequest is the wire form of the recurrence configuration.
type SprintConfigRequest struct {
	DurationUnit models.DurationUnit `json:"duration_unit" binding:"required"`
	StartDay     int                 `json:"start_day"`
	StartTime    string              `json:"start_time" binding:"required"`
}

// GetSprintConfig handles GET /api/config/sprint
func (h *Handler) GetSprintConfig(c *gin.Context) {
	cfg, err := h.settings.LoadSprintConfig(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "sprint config unavailable")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateSprintConfig handles PUT /api/config/sprint
func (h *Handler) UpdateSprintConfig(c *gin.Context) {
	var req SprintConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := models.SprintConfig{
		DurationUnit: req.DurationUnit,
		StartDay:     time.Weekday(req.StartDay),
		StartTime:    req.StartTime,
	}
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.SaveSprintConfig(c.Request.Context(), cfg); err != nil {
		respondStoreError(c, err, "sprint config unavailable")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

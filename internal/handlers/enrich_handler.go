package handlers

import (
	"net/http"
	"strconv"

	"github.com/shaoyun/taskmaster-pro/internal/enrich"

	"github.com/gin-gonic/gin"
)

// BreakdownRequest asks for AI subtask suggestions for a task title.
type BreakdownRequest struct {
	Title string `json:"title" binding:"required"`
}

// BreakdownTask handles POST /api/ai/breakdown
// Suggestions are advisory text only; an empty list means the service was
// unavailable or had nothing to offer, and either way the caller proceeds.
func (h *Handler) BreakdownTask(c *gin.Context) {
	var req BreakdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions := h.ai.Breakdown(c.Request.Context(), req.Title)
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"subtasks": suggestions})
}

// GetHolidays handles GET /api/holidays?year=
// Decoration data for the calendar view; failures degrade to an empty list.
func (h *Handler) GetHolidays(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	holidays := h.holidays.ForYear(c.Request.Context(), year)
	if holidays == nil {
		holidays = []enrich.Holiday{}
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "holidays": holidays})
}

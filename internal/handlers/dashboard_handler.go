package handlers

import (
	"net/http"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/sprints"
	"github.com/shaoyun/taskmaster-pro/internal/views"

	"github.com/gin-gonic/gin"
)

// GetDashboard handles GET /api/dashboard
// Aggregate counts plus the resolved active sprint and its stats.
func (h *Handler) GetDashboard(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "tasks unavailable")
		return
	}
	allSprints, err := h.sprints.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "sprints unavailable")
		return
	}

	now := h.nowFn()
	resp := gin.H{
		"stats":         views.Dashboard(tasks, now, viewerLocation(c)),
		"active_sprint": nil,
	}
	if active := sprints.Resolve(allSprints, now); active != nil {
		resp["active_sprint"] = active
		resp["sprint_stats"] = sprints.ComputeStats(*active, tasks, now)
	}
	c.JSON(http.StatusOK, resp)
}

// GetCalendar handles GET /api/calendar?from=&to=
// Defaults to the current ISO week when the range is omitted.
func (h *Handler) GetCalendar(c *gin.Context) {
	loc := viewerLocation(c)
	now := h.nowFn().In(loc)

	from, ok := parseDay(c.Query("from"), loc)
	if !ok {
		monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
		from = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
	}
	to, ok := parseDay(c.Query("to"), loc)
	if !ok {
		to = from.AddDate(0, 0, 7)
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before to"})
		return
	}

	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "tasks unavailable")
		return
	}

	events := views.Place(tasks, from, to, loc)
	c.JSON(http.StatusOK, gin.H{
		"from":   from.Format("2006-01-02"),
		"to":     to.Format("2006-01-02"),
		"groups": views.Stack(events, views.StackCap),
	})
}

// GetReminders handles GET /api/reminders
// Read-only view of the latest due-task scan.
func (h *Handler) GetReminders(c *gin.Context) {
	reminders := h.scan.Current()
	c.JSON(http.StatusOK, gin.H{"reminders": reminders, "count": len(reminders)})
}

func parseDay(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

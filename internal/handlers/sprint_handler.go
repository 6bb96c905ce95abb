package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"
	"github.com/shaoyun/taskmaster-pro/internal/sprints"

	"github.com/gin-gonic/gin"
)

// CreateSprintRequest represents the request payload for creating a sprint.
// Omitted dates fall back to the scheduler's default window.
type CreateSprintRequest struct {
	Name      string     `json:"name" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateSprintRequest edits name and window only; status moves through the
// dedicated transition endpoint.
type UpdateSprintRequest struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// UpdateSprintStatusRequest requests a manual lifecycle transition.
type UpdateSprintStatusRequest struct {
	Status models.SprintStatus `json:"status" binding:"required"`
}

// sprintView decorates a sprint with the scheduler's window suggestion.
type sprintView struct {
	models.Sprint
	WindowReached bool `json:"window_reached"`
}

// ListSprints handles GET /api/sprints
func (h *Handler) ListSprints(c *gin.Context) {
	all, err := h.sprints.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "sprints unavailable")
		return
	}

	now := h.nowFn()
	out := make([]sprintView, 0, len(all))
	for _, s := range all {
		out = append(out, sprintView{Sprint: s, WindowReached: sprints.WindowReached(s, now)})
	}
	c.JSON(http.StatusOK, gin.H{"sprints": out, "count": len(out)})
}

// CreateSprint handles POST /api/sprints
func (h *Handler) CreateSprint(c *gin.Context) {
	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := h.nowFn()
	var start, end time.Time
	if req.StartDate != nil && req.EndDate != nil {
		start, end = *req.StartDate, *req.EndDate
	} else {
		cfg, err := h.settings.LoadSprintConfig(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "sprint config unavailable")
			return
		}
		prior, err := h.sprints.FindLatest(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "sprints unavailable")
			return
		}
		start, end, err = sprints.DefaultWindow(cfg, prior, now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sprint, err := models.NewSprint(req.Name, start, end, now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sprints.Create(c.Request.Context(), sprint); err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	c.JSON(http.StatusCreated, sprint)
}

// GetSprintByID handles GET /api/sprints/:id
func (h *Handler) GetSprintByID(c *gin.Context) {
	sprint, err := h.sprints.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	c.JSON(http.StatusOK, sprintView{Sprint: *sprint, WindowReached: sprints.WindowReached(*sprint, h.nowFn())})
}

// UpdateSprint handles PUT /api/sprints/:id
func (h *Handler) UpdateSprint(c *gin.Context) {
	existing, err := h.sprints.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}

	var req UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptySprintName.Error()})
			return
		}
		existing.Name = *req.Name
	}
	if req.StartDate != nil {
		existing.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		existing.EndDate = *req.EndDate
	}
	if !existing.StartDate.Before(existing.EndDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidSprintWindow.Error()})
		return
	}
	existing.UpdatedAt = h.nowFn()

	if err := h.sprints.Update(c.Request.Context(), existing); err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	c.JSON(http.StatusOK, existing)
}

// UpdateSprintStatus handles PATCH /api/sprints/:id/status
// Lifecycle moves are always explicit; the clock only ever suggests.
func (h *Handler) UpdateSprintStatus(c *gin.Context) {
	existing, err := h.sprints.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}

	var req UpdateSprintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := sprints.Transition(*existing, req.Status)
	if err != nil {
		if errors.Is(err, sprints.ErrInvalidTransition) || errors.Is(err, models.ErrInvalidSprintStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		return
	}
	updated.UpdatedAt = h.nowFn()

	if err := h.sprints.Update(c.Request.Context(), &updated); err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetSprintStats handles GET /api/sprints/:id/stats
func (h *Handler) GetSprintStats(c *gin.Context) {
	sprint, err := h.sprints.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "tasks unavailable")
		return
	}
	c.JSON(http.StatusOK, sprints.ComputeStats(*sprint, tasks, h.nowFn()))
}

// GetActiveSprint handles GET /api/sprints/active
// Responds 200 with a null sprint when nothing resolves.
func (h *Handler) GetActiveSprint(c *gin.Context) {
	all, err := h.sprints.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "sprints unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sprint": sprints.Resolve(all, h.nowFn())})
}

// DeleteSprint handles DELETE /api/sprints/:id
// Tasks keep their sprint_id; readers tolerate the dangling reference.
func (h *Handler) DeleteSprint(c *gin.Context) {
	sprintID := c.Param("id")
	if _, err := h.sprints.FindByID(c.Request.Context(), sprintID); err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	if err := h.sprints.Delete(c.Request.Context(), sprintID); err != nil {
		respondStoreError(c, err, "sprint not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Sprint deleted successfully",
		"id":      sprintID,
	})
}

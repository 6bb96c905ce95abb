package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/engine"
	"github.com/shaoyun/taskmaster-pro/internal/models"
	"github.com/shaoyun/taskmaster-pro/internal/views"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	Tags        []string            `json:"tags"`
	SprintID    *string             `json:"sprint_id"`
}

// UpdateTaskRequest represents the request payload for editing task fields.
// Status is deliberately absent: status moves only through the transition
// endpoints, so edits can never touch completed_at.
type UpdateTaskRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Priority     *models.TaskPriority `json:"priority"`
	DueDate      *time.Time           `json:"due_date"`
	ClearDueDate bool                 `json:"clear_due_date"`
	Tags         *[]string            `json:"tags"`
	SprintID     *string              `json:"sprint_id"`
	ClearSprint  bool                 `json:"clear_sprint"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// ListTasks handles GET /api/tasks
// Query params: view, sprint (for view=sprint and the sprint filter),
// search, status, priority, tags (comma-separated), sort, page, limit, tz.
func (h *Handler) ListTasks(c *gin.Context) {
	pageSize := h.pageSize
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > 100 {
				limit = 100
			}
			pageSize = limit
		}
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var tagFilter []string
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tagFilter = append(tagFilter, t)
			}
		}
	}

	state := views.State{
		View:     views.View(c.DefaultQuery("view", string(views.ViewAll))),
		SprintID: c.Query("sprint"),
		Search:   c.Query("search"),
		Filters: views.Filters{
			Status:   c.Query("status"),
			Priority: models.TaskPriority(c.Query("priority")),
			Tags:     tagFilter,
			Sprint:   c.Query("sprint"),
		},
		Sort:     views.SortKey(c.DefaultQuery("sort", string(views.SortCreated))),
		Page:     page,
		PageSize: pageSize,
	}
	if state.View == views.ViewSprint {
		// the sprint id is the base predicate here, not a secondary filter
		state.Filters.Sprint = ""
	}

	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "tasks unavailable")
		return
	}

	result := views.Project(tasks, state, h.nowFn(), viewerLocation(c))
	c.JSON(http.StatusOK, gin.H{
		"tasks":      result.Tasks,
		"count":      len(result.Tasks),
		"total":      result.Total,
		"page":       result.Page,
		"page_count": result.PageCount,
		"view":       state.View,
		"sort":       state.Sort,
	})
}

// GetMatrix handles GET /api/tasks/matrix
// Returns the four priority quadrants over non-done tasks.
func (h *Handler) GetMatrix(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "tasks unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quadrants": views.Matrix(tasks, c.Query("search"))})
}

// CreateTask handles POST /api/tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := models.NewTask(req.Title, req.Description, req.Status, req.Priority, req.DueDate, req.Tags, req.SprintID, h.nowFn())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		respondStoreError(c, err, "task not found")
		return
	}

	// fire-and-forget: accounting drift is tolerated, the create is done
	h.acct.OnCreate(c.Request.Context(), *task)

	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
func (h *Handler) GetTaskByID(c *gin.Context) {
	task, err := h.tasks.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "task not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Edits fields only; completed_at is untouchable from here.
func (h *Handler) UpdateTask(c *gin.Context) {
	existing, err := h.tasks.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "task not found")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrEmptyTitle.Error()})
			return
		}
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidPriority.Error()})
			return
		}
		existing.Priority = *req.Priority
	}
	if req.ClearDueDate {
		existing.DueDate = nil
	} else if req.DueDate != nil {
		existing.DueDate = req.DueDate
	}
	oldTags := existing.Tags
	if req.Tags != nil {
		existing.Tags = models.DedupTags(*req.Tags)
	}
	if req.ClearSprint {
		existing.SprintID = nil
	} else if req.SprintID != nil {
		existing.SprintID = req.SprintID
	}
	existing.UpdatedAt = h.nowFn()

	if err := h.tasks.Update(c.Request.Context(), existing); err != nil {
		respondStoreError(c, err, "task not found")
		return
	}

	if req.Tags != nil {
		h.acct.OnUpdate(c.Request.Context(), oldTags, existing.Tags)
	}

	c.JSON(http.StatusOK, existing)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
// All status movement funnels through the transition engine.
func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.applyStatus(c, func(task models.Task) (models.Task, error) {
		return engine.Apply(task, req.Status, h.nowFn())
	})
}

// ToggleTaskStatus handles POST /api/tasks/:id/toggle
// Advances the task one step around TODO → IN_PROGRESS → DONE → TODO.
func (h *Handler) ToggleTaskStatus(c *gin.Context) {
	h.applyStatus(c, func(task models.Task) (models.Task, error) {
		return engine.Toggle(task, h.nowFn())
	})
}

func (h *Handler) applyStatus(c *gin.Context, transition func(models.Task) (models.Task, error)) {
	existing, err := h.tasks.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "task not found")
		return
	}

	updated, err := transition(*existing)
	if err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		return
	}
	updated.UpdatedAt = h.nowFn()

	if err := h.tasks.Update(c.Request.Context(), &updated); err != nil {
		respondStoreError(c, err, "task not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	task, err := h.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		respondStoreError(c, err, "task not found")
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID); err != nil {
		respondStoreError(c, err, "task not found")
		return
	}

	h.acct.OnDelete(c.Request.Context(), *task)

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/enrich"
	"github.com/shaoyun/taskmaster-pro/internal/models"
	"github.com/shaoyun/taskmaster-pro/internal/repositories"
	"github.com/shaoyun/taskmaster-pro/internal/scanner"
	"github.com/shaoyun/taskmaster-pro/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var frozenNow = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC) // a Wednesday

func newTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	h := New(
		db,
		enrich.NewAIClient("", ""),
		enrich.NewHolidayClient(""),
		scanner.New(repositories.NewTaskRepository(db), time.Minute),
		10,
	)
	h.nowFn = func() time.Time { return frozenNow }
	return h, db
}

func newTaskRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.GET("/api/tasks", h.ListTasks)
	r.GET("/api/tasks/matrix", h.GetMatrix)
	r.POST("/api/tasks", h.CreateTask)
	r.GET("/api/tasks/:id", h.GetTaskByID)
	r.PUT("/api/tasks/:id", h.UpdateTask)
	r.PATCH("/api/tasks/:id/status", h.UpdateTaskStatus)
	r.POST("/api/tasks/:id/toggle", h.ToggleTaskStatus)
	r.DELETE("/api/tasks/:id", h.DeleteTask)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTask_Success(t *testing.T) {
	h, db := newTestHandler(t)
	r := newTaskRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Write report",
		"priority": "Q1",
		"tags":     []string{"work", "work", "writing"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.StatusTodo, created.Status)
	require.Equal(t, models.TagList{"work", "writing"}, created.Tags)
	require.Nil(t, created.CompletedAt)
	require.Equal(t, frozenNow.Unix(), created.CreatedAt.Unix())

	// accounting ran for each distinct tag
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestCreateTask_EmptyTitleRejected(t *testing.T) {
	h, db := newTestHandler(t)
	r := newTaskRouter(h)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", map[string]any{"title": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// no partial effects
	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}

func createTask(t *testing.T, r *gin.Engine, payload map[string]any) models.Task {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/tasks", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func TestToggle_StampsAndClearsCompletedAt(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTaskRouter(h)
	task := createTask(t, r, map[string]any{"title": "cycle me"})

	toggle := func() models.Task {
		w := doJSON(t, r, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var out models.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	step1 := toggle()
	require.Equal(t, models.StatusInProgress, step1.Status)
	require.Nil(t, step1.CompletedAt)

	step2 := toggle()
	require.Equal(t, models.StatusDone, step2.Status)
	require.NotNil(t, step2.CompletedAt)

	step3 := toggle()
	require.Equal(t, models.StatusTodo, step3.Status)
	require.Nil(t, step3.CompletedAt)
}

func TestUpdateTaskStatus_InvalidRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTaskRouter(h)
	task := createTask(t, r, map[string]any{"title": "x"})

	w := doJSON(t, r, http.MethodPatch, "/api/tasks/"+task.ID+"/status", map[string]any{"status": "ARCHIVED"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// the stored task is untouched
	g := doJSON(t, r, http.MethodGet, "/api/tasks/"+task.ID, nil)
	var stored models.Task
	require.NoError(t, json.Unmarshal(g.Body.Bytes(), &stored))
	require.Equal(t, models.StatusTodo, stored.Status)
}

// Field edits never touch completed_at.
func TestUpdateTask_EditIsolation(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTaskRouter(h)
	task := createTask(t, r, map[string]any{"title": "done already", "status": "DONE"})
	require.NotNil(t, task.CompletedAt)

	w := doJSON(t, r, http.MethodPut, "/api/tasks/"+task.ID, map[string]any{
		"title":       "renamed",
		"description": "new text",
		"priority":    "Q3",
		"due_date":    "2024-03-20T09:00:00Z",
		"tags":        []string{"later"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "renamed", updated.Title)
	require.Equal(t, models.StatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.Equal(t, task.CompletedAt.Unix(), updated.CompletedAt.Unix())
}

// Scenario: tags ["urgent","backend"] edited to ["backend","ui"]: backend
// keeps its count, urgent is pruned, ui appears.
func TestUpdateTask_TagAccounting(t *testing.T) {
	h, db := newTestHandler(t)
	r := newTaskRouter(h)
	task := createTask(t, r, map[string]any{"title": "api", "tags": []string{"urgent", "backend"}})

	w := doJSON(t, r, http.MethodPut, "/api/tasks/"+task.ID, map[string]any{
		"tags": []string{"backend", "ui"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored []models.Tag
	require.NoError(t, db.Order("name asc").Find(&stored).Error)
	require.Len(t, stored, 2)
	require.Equal(t, "backend", stored[0].Name)
	require.Equal(t, 1, stored[0].UsageCount)
	require.Equal(t, "ui", stored[1].Name)
	require.Equal(t, 1, stored[1].UsageCount)
}

func TestDeleteTask_ReleasesTags(t *testing.T) {
	h, db := newTestHandler(t)
	r := newTaskRouter(h)
	task := createTask(t, r, map[string]any{"title": "gone", "tags": []string{"solo"}})

	w := doJSON(t, r, http.MethodDelete, "/api/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tagCount, taskCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	require.NoError(t, db.Model(&models.Task{}).Count(&taskCount).Error)
	require.Zero(t, tagCount)
	require.Zero(t, taskCount)

	g := doJSON(t, r, http.MethodGet, "/api/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusNotFound, g.Code)
}

func TestListTasks_InboxView(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTaskRouter(h)
	createTask(t, r, map[string]any{"title": "draft"})
	createTask(t, r, map[string]any{"title": "scheduled", "due_date": "2024-03-14T09:00:00Z"})
	createTask(t, r, map[string]any{"title": "finished", "status": "DONE"})

	w := doJSON(t, r, http.MethodGet, "/api/tasks?view=inbox", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	require.Equal(t, "draft", resp.Tasks[0].Title)
}

// Scenario: 12 matches at page size 10; page 3 clamps to the last page.
func TestListTasks_PaginationClamps(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTaskRouter(h)
	for i := 0; i < 12; i++ {
		createTask(t, r, map[string]any{"title": fmt.Sprintf("t%02d", i)})
	}

	var resp struct {
		Tasks     []models.Task `json:"tasks"`
		Page      int           `json:"page"`
		PageCount int           `json:"page_count"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/tasks?page=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Page)
	require.Equal(t, 2, resp.PageCount)
	require.Len(t, resp.Tasks, 2)
}

func TestGetMatrix_AllQuadrantsPresent(t *testing.T) {
	h, _ := newTestHandler(t)
	r := newTaskRouter(h)
	createTask(t, r, map[string]any{"title": "fire", "priority": "Q1"})

	w := doJSON(t, r, http.MethodGet, "/api/tasks/matrix", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Quadrants map[models.TaskPriority][]models.Task `json:"quadrants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Quadrants, 4)
	require.Len(t, resp.Quadrants[models.PriorityQ1], 1)
	require.Empty(t, resp.Quadrants[models.PriorityQ4])
}

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/enrich"
	"github.com/shaoyun/taskmaster-pro/internal/handlers"
	"github.com/shaoyun/taskmaster-pro/internal/repositories"
	"github.com/shaoyun/taskmaster-pro/internal/scanner"
	"github.com/shaoyun/taskmaster-pro/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	h := handlers.New(
		db,
		enrich.NewAIClient("", ""),
		enrich.NewHolidayClient(""),
		scanner.New(repositories.NewTaskRepository(db), time.Minute),
		10,
	)
	return Setup(h)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORSHeadersSet(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

// The literal /sprints/active route must win over /sprints/:id.
func TestActiveSprintRouteNotShadowed(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sprints/active", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"sprint":null}`, w.Body.String())
}

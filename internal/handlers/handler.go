package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/database"
	"github.com/shaoyun/taskmaster-pro/internal/enrich"
	"github.com/shaoyun/taskmaster-pro/internal/repositories"
	"github.com/shaoyun/taskmaster-pro/internal/scanner"
	"github.com/shaoyun/taskmaster-pro/internal/tags"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler bundles the repositories and engines the API works through.
type Handler struct {
	tasks    *repositories.TaskRepository
	sprints  *repositories.SprintRepository
	tagRepo  *repositories.TagRepository
	settings *repositories.SettingsRepository
	acct     *tags.Accountant
	ai       *enrich.AIClient
	holidays *enrich.HolidayClient
	scan     *scanner.Scanner

	pageSize int

	// nowFn is swapped in tests for deterministic timestamps
	nowFn func() time.Time
}

func New(db *gorm.DB, ai *enrich.AIClient, holidays *enrich.HolidayClient, scan *scanner.Scanner, pageSize int) *Handler {
	tagRepo := repositories.NewTagRepository(db)
	return &Handler{
		tasks:    repositories.NewTaskRepository(db),
		sprints:  repositories.NewSprintRepository(db),
		tagRepo:  tagRepo,
		settings: repositories.NewSettingsRepository(db),
		acct:     tags.NewAccountant(tagRepo),
		ai:       ai,
		holidays: holidays,
		scan:     scan,
		pageSize: pageSize,
		nowFn:    time.Now,
	}
}

// respondStoreError maps storage failures onto the API error taxonomy:
// missing rows are 404, an unconfigured store degrades to 503, anything
// else is a plain 500.
func respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, database.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store not configured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
	}
}

// viewerLocation resolves the viewer's timezone from the optional tz query
// parameter, falling back to the server's local zone.
func viewerLocation(c *gin.Context) *time.Location {
	name := c.Query("tz")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

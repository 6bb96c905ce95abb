package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SprintStatus is the manual lifecycle state of a sprint. The clock never
// advances it; only explicit user transitions do.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "PLANNING"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
)

// Valid reports whether s is a known sprint status.
func (s SprintStatus) Valid() bool {
	switch s {
	case SprintPlanning, SprintActive, SprintCompleted:
		return true
	}
	return false
}

var (
	// ErrEmptySprintName is returned when a sprint is constructed without a name.
	ErrEmptySprintName = errors.New("sprint name must not be empty")

	// ErrInvalidSprintWindow is returned when startDate is not strictly before endDate.
	ErrInvalidSprintWindow = errors.New("sprint start date must be before end date")

	// ErrInvalidSprintStatus is returned for a status outside the known set.
	ErrInvalidSprintStatus = errors.New("invalid sprint status")
)

// Sprint is a fixed time-boxed planning period. Tasks reference it weakly:
// deleting a sprint leaves its tasks in place with a dangling sprint_id.
type Sprint struct {
	ID        string       `json:"id" gorm:"primaryKey;size:36"`
	Name      string       `json:"name" gorm:"not null"`
	StartDate time.Time    `json:"start_date" gorm:"column:start_date;not null"`
	EndDate   time.Time    `json:"end_date" gorm:"column:end_date;not null"`
	Status    SprintStatus `json:"status" gorm:"type:varchar(20);not null;default:'PLANNING'"`
	CreatedAt time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"column:updated_at"`
}

// TableName specifies the table name for Sprint Model
func (Sprint) TableName() string {
	return "sprints"
}

// NewSprint is the single construction path for sprints. New sprints always
// start in PLANNING.
func NewSprint(name string, start, end time.Time, now time.Time) (*Sprint, error) {
	if name == "" {
		return nil, ErrEmptySprintName
	}
	if !start.Before(end) {
		return nil, ErrInvalidSprintWindow
	}
	return &Sprint{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    SprintPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DurationUnit selects the length of a default sprint window.
type DurationUnit string

const (
	DurationWeek     DurationUnit = "week"
	DurationTwoWeeks DurationUnit = "2weeks"
)

// SprintConfig is the user-scoped recurrence configuration used only when
// computing default windows for new sprints.
type SprintConfig struct {
	DurationUnit DurationUnit `json:"duration_unit"`
	StartDay     time.Weekday `json:"start_day"`  // 0=Sunday .. 6=Saturday
	StartTime    string       `json:"start_time"` // "HH:mm"
}

// DefaultSprintConfig returns the documented defaults: weekly sprints
// starting Friday at midnight.
func DefaultSprintConfig() SprintConfig {
	return SprintConfig{
		DurationUnit: DurationWeek,
		StartDay:     time.Friday,
		StartTime:    "00:00",
	}
}

// Validate checks the config fields without mutating them.
func (c SprintConfig) Validate() error {
	if c.DurationUnit != DurationWeek && c.DurationUnit != DurationTwoWeeks {
		return fmt.Errorf("invalid duration unit %q", c.DurationUnit)
	}
	if c.StartDay < time.Sunday || c.StartDay > time.Saturday {
		return fmt.Errorf("invalid start day %d", c.StartDay)
	}
	if _, err := time.Parse("15:04", c.StartTime); err != nil {
		return fmt.Errorf("invalid start time %q: %w", c.StartTime, err)
	}
	return nil
}

// Days returns the window length in days.
func (u DurationUnit) Days() int {
	if u == DurationTwoWeeks {
		return 14
	}
	return 7
}

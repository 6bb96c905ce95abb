// Package sprints computes default sprint windows from the recurrence
// configuration, derives per-sprint statistics, and validates the manual
// PLANNING → ACTIVE → COMPLETED lifecycle.
package sprints

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// ErrInvalidTransition is returned for a lifecycle move outside the table.
var ErrInvalidTransition = errors.New("invalid sprint status transition")

// transitions is the allowed lifecycle table. Status never moves backwards
// and the clock never moves it at all.
var transitions = map[models.SprintStatus]map[models.SprintStatus]bool{
	models.SprintPlanning:  {models.SprintActive: true},
	models.SprintActive:    {models.SprintCompleted: true},
	models.SprintCompleted: {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to models.SprintStatus) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	return next[to]
}

// Transition validates and applies a lifecycle move, returning the updated
// sprint copy.
func Transition(sprint models.Sprint, to models.SprintStatus) (models.Sprint, error) {
	if !to.Valid() {
		return sprint, models.ErrInvalidSprintStatus
	}
	if !CanTransition(sprint.Status, to) {
		return sprint, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sprint.Status, to)
	}
	sprint.Status = to
	return sprint, nil
}

// DefaultWindow computes the [start, end) window for a new sprint.
//
// With a prior sprint the new one starts exactly at the prior's end date:
// contiguous, no gap, no overlap. Without one, the start is the next
// occurrence of the configured weekday and time at or after now; when now
// falls exactly on that instant the same day is an eligible start.
func DefaultWindow(cfg models.SprintConfig, prior *models.Sprint, now time.Time) (start, end time.Time, err error) {
	if err := cfg.Validate(); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if prior != nil {
		start = prior.EndDate
	} else {
		at, _ := time.Parse("15:04", cfg.StartTime)
		start = time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
		for start.Weekday() != cfg.StartDay || start.Before(now) {
			start = start.AddDate(0, 0, 1)
		}
	}

	end = start.AddDate(0, 0, cfg.DurationUnit.Days())
	if !start.Before(end) {
		return time.Time{}, time.Time{}, models.ErrInvalidSprintWindow
	}
	return start, end, nil
}

// Stats are derived, read-only sprint numbers recomputed on demand.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"`
	DaysLeft       int `json:"days_left"`
}

// ComputeStats derives statistics for one sprint over the full task set.
func ComputeStats(sprint models.Sprint, tasks []models.Task, now time.Time) Stats {
	var s Stats
	for _, task := range tasks {
		if task.SprintID == nil || *task.SprintID != sprint.ID {
			continue
		}
		s.Total++
		if task.Status == models.StatusDone {
			s.Completed++
			continue
		}
		if task.DueDate != nil && task.DueDate.Before(now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.Completed) / float64(s.Total)))
	}
	if left := sprint.EndDate.Sub(now); left > 0 {
		s.DaysLeft = int(left.Hours() / 24)
	}
	return s
}

// Resolve picks the active sprint for the dashboard: an explicitly ACTIVE
// sprint wins (most recently started when there are several); otherwise any
// non-COMPLETED sprint whose window contains now; otherwise nil.
func Resolve(sprints []models.Sprint, now time.Time) *models.Sprint {
	var active *models.Sprint
	for i := range sprints {
		s := &sprints[i]
		if s.Status != models.SprintActive {
			continue
		}
		if active == nil || s.StartDate.After(active.StartDate) {
			active = s
		}
	}
	if active != nil {
		return active
	}

	for i := range sprints {
		s := &sprints[i]
		if s.Status == models.SprintCompleted {
			continue
		}
		if !now.Before(s.StartDate) && !now.After(s.EndDate) {
			return s
		}
	}
	return nil
}

// WindowReached reports whether the wall clock suggests the sprint's next
// lifecycle step: PLANNING past its start date, or ACTIVE past its end date.
// It is a suggestion only; transitions stay manual.
func WindowReached(sprint models.Sprint, now time.Time) bool {
	switch sprint.Status {
	case models.SprintPlanning:
		return !now.Before(sprint.StartDate)
	case models.SprintActive:
		return !now.Before(sprint.EndDate)
	}
	return false
}

// Package engine owns the task status lifecycle: which transitions exist
// and how completedAt moves with them. Nothing else may write completedAt.
package engine

import (
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// Apply returns a copy of task with the requested status applied and
// completedAt updated by the transition rules:
//
//   - entering DONE keeps an already-set completedAt (re-entering DONE after
//     a transient detour must not fabricate a fresh completion time) and
//     stamps now otherwise
//   - leaving DONE clears completedAt
//   - transitions between non-DONE statuses leave completedAt alone
//
// An unknown status is rejected with models.ErrInvalidStatus and the input
// task is returned unchanged.
func Apply(task models.Task, newStatus models.TaskStatus, now time.Time) (models.Task, error) {
	if !newStatus.Valid() {
		return task, models.ErrInvalidStatus
	}

	out := task
	out.Status = newStatus

	switch {
	case newStatus == models.StatusDone:
		if out.CompletedAt == nil {
			completed := now
			out.CompletedAt = &completed
		}
	case task.Status == models.StatusDone:
		out.CompletedAt = nil
	}
	return out, nil
}

// Next returns the status the cycle button moves to:
// TODO → IN_PROGRESS → DONE → TODO → …
func Next(status models.TaskStatus) models.TaskStatus {
	switch status {
	case models.StatusTodo:
		return models.StatusInProgress
	case models.StatusInProgress:
		return models.StatusDone
	default:
		return models.StatusTodo
	}
}

// Toggle advances task one step around the cycle through Apply.
func Toggle(task models.Task, now time.Time) (models.Task, error) {
	return Apply(task, Next(task.Status), now)
}

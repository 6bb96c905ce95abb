package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle status of a task
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority is the Eisenhower quadrant a task belongs to.
// Q1 urgent+important, Q2 important, Q3 urgent, Q4 neither.
type TaskPriority string

const (
	PriorityQ1 TaskPriority = "Q1"
	PriorityQ2 TaskPriority = "Q2"
	PriorityQ3 TaskPriority = "Q3"
	PriorityQ4 TaskPriority = "Q4"
)

// Priorities lists the quadrants in display order.
var Priorities = []TaskPriority{PriorityQ1, PriorityQ2, PriorityQ3, PriorityQ4}

// Valid reports whether p is one of the four quadrants.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityQ1, PriorityQ2, PriorityQ3, PriorityQ4:
		return true
	}
	return false
}

// TagList is a task's tag set, deduplicated but order-preserving for display.
type TagList []string

var (
	// ErrEmptyTitle is returned when a task is constructed without a title.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrInvalidStatus is returned for a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority is returned for a priority outside Q1..Q4.
	ErrInvalidPriority = errors.New("invalid task priority")
)

// Task represents a unit of work in the system
type Task struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'TODO'"`
	Priority    TaskPriority `json:"priority" gorm:"type:varchar(4);not null;default:'Q2'"`
	DueDate     *time.Time   `json:"due_date,omitempty" gorm:"column:due_date"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" gorm:"column:completed_at"`
	Tags        TagList      `json:"tags" gorm:"serializer:json"`
	SprintID    *string      `json:"sprint_id,omitempty" gorm:"column:sprint_id;size:36;index"`
	CreatedAt   time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"column:updated_at"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// NewTask is the single construction path for tasks. It assigns the ID and
// createdAt, stamps completedAt only when the initial status is DONE, and
// deduplicates tags. No other code may build a Task from scratch.
func NewTask(title, description string, status TaskStatus, priority TaskPriority, dueDate *time.Time, tags []string, sprintID *string, now time.Time) (*Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if priority == "" {
		priority = PriorityQ2
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		Tags:        DedupTags(tags),
		SprintID:    sprintID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == StatusDone {
		completed := now
		task.CompletedAt = &completed
	}
	return task, nil
}

// DedupTags removes exact duplicates while preserving first-seen order.
// Matching is case-sensitive; blank entries are dropped.
func DedupTags(tags []string) TagList {
	if len(tags) == 0 {
		return TagList{}
	}
	seen := make(map[string]struct{}, len(tags))
	out := make(TagList, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Contains reports whether the tag set holds name (exact match).
func (l TagList) Contains(name string) bool {
	for _, t := range l {
		if t == name {
			return true
		}
	}
	return false
}

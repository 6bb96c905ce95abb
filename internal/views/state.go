// Package views projects the full task set into the UI's derived views.
// Everything in here is a pure function of (tasks, state, now, location);
// no clock reads, no storage access.
package views

import (
	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// View selects the base predicate a projection starts from.
type View string

const (
	ViewInbox     View = "inbox"
	ViewToday     View = "today"
	ViewTomorrow  View = "tomorrow"
	ViewWeek      View = "week"
	ViewOverdue   View = "overdue"
	ViewCompleted View = "completed"
	ViewAll       View = "all"
	ViewSprint    View = "sprint"
)

// SortKey selects the projection ordering.
type SortKey string

const (
	SortCreated SortKey = "created" // createdAt descending (default)
	SortDueDate SortKey = "dueDate" // ascending, nil due dates last
)

// Filter wildcard values. An empty string always means "no constraint".
const (
	FilterAll        = "ALL"
	FilterUnfinished = "UNFINISHED"
	FilterUnassigned = "UNASSIGNED"
)

// Filters are the explicit, independently toggleable narrowing predicates
// applied after the view's base predicate. Groups combine with AND; the tag
// group matches internally with OR.
type Filters struct {
	Status   string              // "", ALL, UNFINISHED, or a concrete status
	Priority models.TaskPriority // "" or a concrete quadrant
	Tags     []string            // any-of; empty means no constraint
	Sprint   string              // "", ALL, UNASSIGNED, or a sprint id
}

// State is the immutable view-state value the projection runs over. UI
// interactions never mutate a State; they derive a new one through the
// With* helpers, which is what makes Project replayable.
type State struct {
	View     View
	SprintID string // base predicate for ViewSprint
	Search   string
	Filters  Filters
	Sort     SortKey
	Page     int
	PageSize int // <= 0 disables pagination
}

// WithView returns a copy pointed at another view, back on page 1.
func (s State) WithView(v View) State {
	s.View = v
	s.Page = 1
	return s
}

// WithSearch returns a copy with a new search query, back on page 1.
func (s State) WithSearch(q string) State {
	s.Search = q
	s.Page = 1
	return s
}

// WithFilters returns a copy with replaced filters, back on page 1.
func (s State) WithFilters(f Filters) State {
	s.Filters = f
	s.Page = 1
	return s
}

// WithPage returns a copy on another page; clamping happens in Project.
func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

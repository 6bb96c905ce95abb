package views

import (
	"sort"
	"strings"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// Result is one projected page plus the numbers the UI needs around it.
type Result struct {
	Tasks     []models.Task `json:"tasks"`
	Total     int           `json:"total"` // matches after filtering, before pagination
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
}

// Project filters, orders, and paginates the full task set for one view
// state. Search applies first, then the view's base predicate, then the
// explicit filters, then sorting and clamped pagination.
func Project(tasks []models.Task, state State, now time.Time, loc *time.Location) Result {
	if loc == nil {
		loc = now.Location()
	}

	matched := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if !matchSearch(task, state.Search) {
			continue
		}
		if !matchView(task, state, now, loc) {
			continue
		}
		if !matchFilters(task, state.Filters) {
			continue
		}
		matched = append(matched, task)
	}

	sortTasks(matched, state.Sort)
	return paginate(matched, state.Page, state.PageSize)
}

// Quadrants is the priority matrix: every quadrant is present even when
// empty, so the board renders four lists regardless of content.
type Quadrants map[models.TaskPriority][]models.Task

// Matrix partitions non-done tasks into the four priority quadrants,
// respecting the search query, each quadrant ordered by creation descending.
func Matrix(tasks []models.Task, search string) Quadrants {
	q := make(Quadrants, len(models.Priorities))
	for _, p := range models.Priorities {
		q[p] = []models.Task{}
	}
	for _, task := range tasks {
		if task.Status == models.StatusDone {
			continue
		}
		if !matchSearch(task, search) {
			continue
		}
		if _, ok := q[task.Priority]; !ok {
			continue
		}
		q[task.Priority] = append(q[task.Priority], task)
	}
	for p := range q {
		sortTasks(q[p], SortCreated)
	}
	return q
}

func matchSearch(task models.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(task.Title), q) ||
		strings.Contains(strings.ToLower(task.Description), q)
}

func matchView(task models.Task, state State, now time.Time, loc *time.Location) bool {
	switch state.View {
	case ViewInbox:
		return task.Status != models.StatusDone && task.DueDate == nil
	case ViewToday:
		return task.Status != models.StatusDone && dueOnDay(task, now, loc)
	case ViewTomorrow:
		return task.Status != models.StatusDone && dueOnDay(task, now.AddDate(0, 0, 1), loc)
	case ViewWeek:
		if task.Status == models.StatusDone || task.DueDate == nil {
			return false
		}
		weekStart := startOfISOWeek(now, loc)
		due := task.DueDate.In(loc)
		return !due.Before(weekStart) && due.Before(weekStart.AddDate(0, 0, 7))
	case ViewOverdue:
		return task.Status != models.StatusDone && task.DueDate != nil && task.DueDate.Before(now)
	case ViewCompleted:
		return task.Status == models.StatusDone
	case ViewSprint:
		return task.SprintID != nil && *task.SprintID == state.SprintID
	default: // ViewAll and unknown selectors constrain nothing
		return true
	}
}

func matchFilters(task models.Task, f Filters) bool {
	switch f.Status {
	case "", FilterAll:
	case FilterUnfinished:
		if task.Status == models.StatusDone {
			return false
		}
	default:
		if task.Status != models.TaskStatus(f.Status) {
			return false
		}
	}

	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}

	if len(f.Tags) > 0 {
		any := false
		for _, t := range f.Tags {
			if task.Tags.Contains(t) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	switch f.Sprint {
	case "", FilterAll:
	case FilterUnassigned:
		if task.SprintID != nil {
			return false
		}
	default:
		if task.SprintID == nil || *task.SprintID != f.Sprint {
			return false
		}
	}
	return true
}

func sortTasks(tasks []models.Task, key SortKey) {
	switch key {
	case SortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			// nil due dates sort last regardless of direction
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	default: // SortCreated
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

func paginate(tasks []models.Task, page, pageSize int) Result {
	total := len(tasks)
	if pageSize <= 0 {
		return Result{Tasks: tasks, Total: total, Page: 1, PageCount: 1}
	}

	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}
	return Result{Tasks: tasks[lo:hi], Total: total, Page: page, PageCount: pageCount}
}

// dueOnDay reports whether the task's due date falls on the same calendar
// day as ref, evaluated in the viewer's timezone.
func dueOnDay(task models.Task, ref time.Time, loc *time.Location) bool {
	if task.DueDate == nil {
		return false
	}
	due := task.DueDate.In(loc)
	ref = ref.In(loc)
	return due.Year() == ref.Year() && due.Month() == ref.Month() && due.Day() == ref.Day()
}

// startOfISOWeek returns midnight of the Monday of the week containing t.
func startOfISOWeek(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -offset)
}

package views

import (
	"math"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// DayCount is one calendar-day bucket of an aggregate series.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD in the viewer's timezone
	Count int    `json:"count"`
}

// DashboardStats are the derived aggregates the dashboard renders.
type DashboardStats struct {
	Total          int                         `json:"total"`
	ByStatus       map[models.TaskStatus]int   `json:"by_status"`
	ByPriority     map[models.TaskPriority]int `json:"by_priority"` // non-done tasks only
	Overdue        int                         `json:"overdue"`
	CompletionRate int                         `json:"completion_rate"`
	CompletedTrend []DayCount                  `json:"completed_trend"` // trailing 7 days incl. today
	DueThisWeek    []DayCount                  `json:"due_this_week"`   // Mon..Sun of the current ISO week
}

// Dashboard computes all aggregate outputs in one pass over the task set.
func Dashboard(tasks []models.Task, now time.Time, loc *time.Location) DashboardStats {
	if loc == nil {
		loc = now.Location()
	}

	stats := DashboardStats{
		ByStatus: map[models.TaskStatus]int{
			models.StatusTodo:       0,
			models.StatusInProgress: 0,
			models.StatusDone:       0,
		},
		ByPriority: map[models.TaskPriority]int{},
	}
	for _, p := range models.Priorities {
		stats.ByPriority[p] = 0
	}

	today := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	trendStart := today.AddDate(0, 0, -6)
	weekStart := startOfISOWeek(now, loc)

	trend := make(map[string]int, 7)
	dueWeek := make(map[string]int, 7)

	for _, task := range tasks {
		stats.Total++
		stats.ByStatus[task.Status]++

		if task.Status != models.StatusDone {
			stats.ByPriority[task.Priority]++
			if task.DueDate != nil && task.DueDate.Before(now) {
				stats.Overdue++
			}
			if task.DueDate != nil {
				due := task.DueDate.In(loc)
				if !due.Before(weekStart) && due.Before(weekStart.AddDate(0, 0, 7)) {
					dueWeek[due.Format("2006-01-02")]++
				}
			}
			continue
		}

		if task.CompletedAt != nil {
			done := task.CompletedAt.In(loc)
			if !done.Before(trendStart) && done.Before(today.AddDate(0, 0, 1)) {
				trend[done.Format("2006-01-02")]++
			}
		}
	}

	if stats.Total > 0 {
		done := stats.ByStatus[models.StatusDone]
		stats.CompletionRate = int(math.Round(100 * float64(done) / float64(stats.Total)))
	}

	for i := 0; i < 7; i++ {
		day := trendStart.AddDate(0, 0, i).Format("2006-01-02")
		stats.CompletedTrend = append(stats.CompletedTrend, DayCount{Day: day, Count: trend[day]})
	}
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		stats.DueThisWeek = append(stats.DueThisWeek, DayCount{Day: day, Count: dueWeek[day]})
	}
	return stats
}

// Package scanner runs the periodic due-task scan. It only reads the task
// list and publishes its findings; it never blocks or is blocked by
// mutation handling.
package scanner

import (
	"context"
	"log"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/cache"
	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// DueSoonHorizon is how far ahead a due date counts as "due soon".
const DueSoonHorizon = 24 * time.Hour

const resultsKey = "current"

// TaskLister is the read-only slice of the task store the scanner needs.
type TaskLister interface {
	List(ctx context.Context) ([]models.Task, error)
}

// Reminder is one scan finding: a non-done task that is overdue or coming
// due inside the horizon.
type Reminder struct {
	TaskID  string     `json:"task_id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date"`
	Overdue bool       `json:"overdue"`
}

// Scanner polls the task list on a fixed interval.
type Scanner struct {
	tasks    TaskLister
	interval time.Duration
	results  *cache.TTLCache[string, []Reminder]
	nowFn    func() time.Time
}

func New(tasks TaskLister, interval time.Duration) *Scanner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scanner{
		tasks:    tasks,
		interval: interval,
		results:  cache.New[string, []Reminder](),
		nowFn:    time.Now,
	}
}

// Run scans immediately and then on every tick until ctx is cancelled.
func (s *Scanner) Run(ctx context.Context) {
	s.scan(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *Scanner) scan(ctx context.Context) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		// keep the previous results; the next tick retries
		log.Printf("due scan: list tasks: %v", err)
		return
	}

	now := s.nowFn()
	var reminders []Reminder
	for _, task := range tasks {
		if task.Status == models.StatusDone || task.DueDate == nil {
			continue
		}
		overdue := task.DueDate.Before(now)
		if !overdue && task.DueDate.Sub(now) > DueSoonHorizon {
			continue
		}
		reminders = append(reminders, Reminder{
			TaskID:  task.ID,
			Title:   task.Title,
			DueDate: task.DueDate,
			Overdue: overdue,
		})
	}
	s.results.Set(resultsKey, reminders, 0)
}

// Current returns the latest published scan results.
func (s *Scanner) Current() []Reminder {
	reminders, _ := s.results.Get(resultsKey)
	return reminders
}

package views

import (
	"sort"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// EventMinutes is the display duration given to every task on the calendar
// grid. It exists only for layout; nothing is stored.
const EventMinutes = 60

// StackCap is how many overlapping events render before the rest collapse
// into an overflow indicator.
const StackCap = 3

// Event is a task placed on the calendar grid at its local-time due date.
type Event struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Day         string `json:"day"` // YYYY-MM-DD
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// EventGroup is a set of same-day events whose display windows intersect,
// stacked for rendering. Events always carries the full group so the
// overflow indicator can expand it; Visible holds at most StackCap of them.
type EventGroup struct {
	Day      string  `json:"day"`
	Visible  []Event `json:"visible"`
	Overflow int     `json:"overflow"`
	Events   []Event `json:"events"`
}

// Place maps every task with a due date inside [from, to) onto the grid.
func Place(tasks []models.Task, from, to time.Time, loc *time.Location) []Event {
	if loc == nil {
		loc = from.Location()
	}
	events := make([]Event, 0, len(tasks))
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(from) || !task.DueDate.Before(to) {
			continue
		}
		due := task.DueDate.In(loc)
		start := due.Hour()*60 + due.Minute()
		events = append(events, Event{
			TaskID:      task.ID,
			Title:       task.Title,
			Day:         due.Format("2006-01-02"),
			StartMinute: start,
			EndMinute:   start + EventMinutes,
		})
	}
	return events
}

// Stack groups intersecting same-day events and applies the visible cap.
// cap <= 0 falls back to StackCap.
func Stack(events []Event, cap int) []EventGroup {
	if cap <= 0 {
		cap = StackCap
	}

	byDay := make(map[string][]Event)
	for _, e := range events {
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var groups []EventGroup
	for _, day := range days {
		dayEvents := byDay[day]
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].StartMinute < dayEvents[j].StartMinute
		})

		// sweep: events merge into the open group while they intersect its
		// running window
		var cur []Event
		curEnd := -1
		flush := func() {
			if len(cur) == 0 {
				return
			}
			g := EventGroup{Day: day, Events: cur}
			if len(cur) > cap {
				g.Visible = cur[:cap]
				g.Overflow = len(cur) - cap
			} else {
				g.Visible = cur
			}
			groups = append(groups, g)
		}
		for _, e := range dayEvents {
			if len(cur) > 0 && e.StartMinute < curEnd {
				cur = append(cur, e)
				if e.EndMinute > curEnd {
					curEnd = e.EndMinute
				}
				continue
			}
			flush()
			cur = []Event{e}
			curEnd = e.EndMinute
		}
		flush()
	}
	return groups
}

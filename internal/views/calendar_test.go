package views

import (
	"fmt"
	"testing"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPlace_WindowAndOffsets(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	tasks := []models.Task{
		mkTask(t, "in", withDue(time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC))),
		mkTask(t, "boundary-start", withDue(from)),
		mkTask(t, "boundary-end", withDue(to)),
		mkTask(t, "before", withDue(from.Add(-time.Minute))),
		mkTask(t, "undated"),
	}

	events := Place(tasks, from, to, time.UTC)
	require.Len(t, events, 2)

	require.Equal(t, "2024-03-12", events[0].Day)
	require.Equal(t, 9*60+30, events[0].StartMinute)
	require.Equal(t, 9*60+30+EventMinutes, events[0].EndMinute)
}

func TestPlace_LocalTimePlacement(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*3600)
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	// 23:00 UTC is 08:00 next day in Tokyo
	task := mkTask(t, "late", withDue(time.Date(2024, 3, 12, 23, 0, 0, 0, time.UTC)))
	events := Place([]models.Task{task}, from, to, tokyo)
	require.Len(t, events, 1)
	require.Equal(t, "2024-03-13", events[0].Day)
	require.Equal(t, 8*60, events[0].StartMinute)
}

func TestStack_GroupsIntersectingWindows(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	tasks := []models.Task{
		mkTask(t, "nine", withDue(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC))),
		mkTask(t, "nine-thirty", withDue(time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC))),
		mkTask(t, "eleven", withDue(time.Date(2024, 3, 12, 11, 0, 0, 0, time.UTC))),
		mkTask(t, "other-day", withDue(time.Date(2024, 3, 13, 9, 15, 0, 0, time.UTC))),
	}

	groups := Stack(Place(tasks, from, to, time.UTC), StackCap)
	require.Len(t, groups, 3)

	// 9:00 and 9:30 windows intersect; 11:00 stands alone
	require.Len(t, groups[0].Events, 2)
	require.Zero(t, groups[0].Overflow)
	require.Len(t, groups[1].Events, 1)
	require.Equal(t, "2024-03-13", groups[2].Day)
}

func TestStack_OverflowCapping(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	var tasks []models.Task
	for i := 0; i < 5; i++ {
		tasks = append(tasks, mkTask(t, fmt.Sprintf("t%d", i),
			withDue(time.Date(2024, 3, 12, 9, i*10, 0, 0, time.UTC))))
	}

	groups := Stack(Place(tasks, from, to, time.UTC), 3)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Visible, 3)
	require.Equal(t, 2, groups[0].Overflow)
	// the full group stays available for the expanded overflow list
	require.Len(t, groups[0].Events, 5)
}

func TestStack_TouchingWindowsDoNotGroup(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	tasks := []models.Task{
		mkTask(t, "nine", withDue(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC))),
		mkTask(t, "ten", withDue(time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC))),
	}

	// [540,600) and [600,660) share only the boundary minute
	groups := Stack(Place(tasks, from, to, time.UTC), StackCap)
	require.Len(t, groups, 2)
}

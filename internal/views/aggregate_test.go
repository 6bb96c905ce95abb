package views

import (
	"testing"
	"time"

	"github.com/shaoyun/taskmaster-pro/internal/models"

	"github.com/stretchr/testify/require"
)

func withCompleted(at time.Time) taskOpt {
	return func(t *models.Task) {
		t.Status = models.StatusDone
		t.CompletedAt = &at
	}
}

func TestDashboard_Counts(t *testing.T) {
	tasks := []models.Task{
		mkTask(t, "a", withStatus(models.StatusTodo), withPriority(models.PriorityQ1), withDue(testNow.Add(-time.Hour))),
		mkTask(t, "b", withStatus(models.StatusInProgress), withPriority(models.PriorityQ1)),
		mkTask(t, "c", withCompleted(testNow.Add(-time.Hour)), withPriority(models.PriorityQ3)),
		mkTask(t, "d", withCompleted(testNow.Add(-26*time.Hour))),
	}

	stats := Dashboard(tasks, testNow, time.UTC)
	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.ByStatus[models.StatusTodo])
	require.Equal(t, 1, stats.ByStatus[models.StatusInProgress])
	require.Equal(t, 2, stats.ByStatus[models.StatusDone])

	// priority counts ignore done tasks
	require.Equal(t, 2, stats.ByPriority[models.PriorityQ1])
	require.Equal(t, 0, stats.ByPriority[models.PriorityQ3])

	require.Equal(t, 1, stats.Overdue)
	require.Equal(t, 50, stats.CompletionRate)
}

func TestDashboard_EmptyNeverDividesByZero(t *testing.T) {
	stats := Dashboard(nil, testNow, time.UTC)
	require.Zero(t, stats.Total)
	require.Zero(t, stats.CompletionRate)
	require.Len(t, stats.CompletedTrend, 7)
	require.Len(t, stats.DueThisWeek, 7)
}

func TestDashboard_CompletedTrendBuckets(t *testing.T) {
	tasks := []models.Task{
		mkTask(t, "today", withCompleted(testNow.Add(-time.Hour))),
		mkTask(t, "also-today", withCompleted(testNow.Add(-2*time.Hour))),
		mkTask(t, "six-days-ago", withCompleted(testNow.AddDate(0, 0, -6))),
		mkTask(t, "too-old", withCompleted(testNow.AddDate(0, 0, -8))),
	}

	stats := Dashboard(tasks, testNow, time.UTC)
	require.Len(t, stats.CompletedTrend, 7)
	require.Equal(t, "2024-03-07", stats.CompletedTrend[0].Day)
	require.Equal(t, 1, stats.CompletedTrend[0].Count)
	require.Equal(t, "2024-03-13", stats.CompletedTrend[6].Day)
	require.Equal(t, 2, stats.CompletedTrend[6].Count)

	total := 0
	for _, b := range stats.CompletedTrend {
		total += b.Count
	}
	require.Equal(t, 3, total) // the 8-day-old completion is outside the window
}

func TestDashboard_DueThisWeekBuckets(t *testing.T) {
	tasks := []models.Task{
		mkTask(t, "monday", withDue(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC))),
		mkTask(t, "sunday", withDue(time.Date(2024, 3, 17, 22, 0, 0, 0, time.UTC))),
		mkTask(t, "next-week", withDue(time.Date(2024, 3, 18, 9, 0, 0, 0, time.UTC))),
		mkTask(t, "done-this-week", withDue(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)), withCompleted(testNow)),
	}

	stats := Dashboard(tasks, testNow, time.UTC)
	require.Len(t, stats.DueThisWeek, 7)
	require.Equal(t, "2024-03-11", stats.DueThisWeek[0].Day)
	require.Equal(t, 1, stats.DueThisWeek[0].Count)
	require.Equal(t, "2024-03-17", stats.DueThisWeek[6].Day)
	require.Equal(t, 1, stats.DueThisWeek[6].Count)

	// done tasks and next week's tasks contribute nothing
	total := 0
	for _, b := range stats.DueThisWeek {
		total += b.Count
	}
	require.Equal(t, 2, total)
}

// Package tags keeps per-tag usage counts in step with the task set.
// Counting is a side effect of task mutation: failures here are logged and
// tolerated as drift, never surfaced to the mutation that triggered them.
package tags

import (
	"context"
	"log"

	"github.com/shaoyun/taskmaster-pro/internal/models"
)

// Counter is the accounting store the Accountant writes through.
// Implementations clamp counts at zero and delete rows that reach it.
type Counter interface {
	Increment(ctx context.Context, names []string) error
	Decrement(ctx context.Context, names []string) error
	ResetAll(ctx context.Context, counts map[string]int) error
}

// Delta is the tag-set change produced by one task mutation.
type Delta struct {
	Added   []string
	Removed []string
}

// Empty reports whether the delta carries no work.
func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff computes the delta between a task's old and new tag sets by exact
// string match. Tags present in both sets produce no writes.
func Diff(oldTags, newTags models.TagList) Delta {
	var d Delta
	for _, t := range newTags {
		if !oldTags.Contains(t) {
			d.Added = append(d.Added, t)
		}
	}
	for _, t := range oldTags {
		if !newTags.Contains(t) {
			d.Removed = append(d.Removed, t)
		}
	}
	return d
}

// Accountant consumes tag deltas against a Counter.
type Accountant struct {
	counter Counter
}

func NewAccountant(counter Counter) *Accountant {
	return &Accountant{counter: counter}
}

// Apply pushes a delta into the counter. Errors are logged and swallowed:
// the task mutation that produced the delta has already committed and must
// not be rolled back over a counter write.
func (a *Accountant) Apply(ctx context.Context, d Delta) {
	if d.Empty() {
		return
	}
	if len(d.Added) > 0 {
		if err := a.counter.Increment(ctx, d.Added); err != nil {
			log.Printf("tag accounting: increment %v failed: %v", d.Added, err)
		}
	}
	if len(d.Removed) > 0 {
		if err := a.counter.Decrement(ctx, d.Removed); err != nil {
			log.Printf("tag accounting: decrement %v failed: %v", d.Removed, err)
		}
	}
}

// OnCreate accounts for a newly created task.
func (a *Accountant) OnCreate(ctx context.Context, task models.Task) {
	a.Apply(ctx, Delta{Added: task.Tags})
}

// OnUpdate accounts for an edit that may have changed the tag set.
func (a *Accountant) OnUpdate(ctx context.Context, oldTags, newTags models.TagList) {
	a.Apply(ctx, Diff(oldTags, newTags))
}

// OnDelete accounts for a deleted task.
func (a *Accountant) OnDelete(ctx context.Context, task models.Task) {
	a.Apply(ctx, Delta{Removed: task.Tags})
}

// Reconcile recounts usage from the live task set and overwrites the store.
// It repairs drift accumulated from tolerated accounting failures; unlike
// Apply it returns its error because the caller invoked it deliberately.
func (a *Accountant) Reconcile(ctx context.Context, tasks []models.Task) error {
	counts := make(map[string]int)
	for _, task := range tasks {
		for _, t := range task.Tags {
			counts[t]++
		}
	}
	return a.counter.ResetAll(ctx, counts)
}

package analyzer

import (
	"math"
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// Productivity score weighting: 70% completion rate, 30% on-time rate.
// Fixed policy constants, not user-configurable.
const (
	completionWeight = 0.7
	onTimeWeight     = 0.3
)

// CompletionRate returns the percentage of tasks that are completed, as an
// unrounded value in [0, 100]. Empty input yields 0.
func CompletionRate(tasks []entity.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed() {
			completed++
		}
	}
	return 100 * float64(completed) / float64(len(tasks))
}

// OnTimeRate returns the percentage of completed tasks with a due date whose
// last update happened on or before the due date, unrounded in [0, 100].
// Tasks without a due date are excluded from the denominator; 0 when no
// completed task carries one.
func OnTimeRate(tasks []entity.Task) float64 {
	withDue := 0
	onTime := 0
	for _, t := range tasks {
		if !t.Completed() || t.DueDate == "" {
			continue
		}
		due := entity.ParseTimestamp(t.DueDate)
		if due.IsZero() {
			continue
		}
		withDue++
		updated := entity.ParseTimestamp(t.UpdatedAt)
		if !updated.IsZero() && !updated.After(due) {
			onTime++
		}
	}
	if withDue == 0 {
		return 0
	}
	return 100 * float64(onTime) / float64(withDue)
}

// ProductivityScore returns the weighted productivity score for a task set,
// rounded to the nearest integer. Only the final value is rounded; the
// component rates stay unrounded during composition.
func ProductivityScore(tasks []entity.Task) int {
	return int(math.Round(completionWeight*CompletionRate(tasks) + onTimeWeight*OnTimeRate(tasks)))
}

// BranchEfficiency returns round(100 * completed / total) for a branch's
// task set, 0 when empty.
func BranchEfficiency(tasks []entity.Task) int {
	return int(math.Round(CompletionRate(tasks)))
}

// roundRate rounds an unrounded percentage to the nearest integer for
// display.
func roundRate(rate float64) int {
	return int(math.Round(rate))
}

// ActiveUserCount counts distinct user ids appearing as assignee or creator
// across the task set, ignoring absent ids.
func ActiveUserCount(tasks []entity.Task) int {
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.AssigneeID != "" {
			seen[t.AssigneeID] = true
		}
		if t.CreatedBy != "" {
			seen[t.CreatedBy] = true
		}
	}
	return len(seen)
}

// Overdue returns the tasks whose due date has passed relative to now and
// that are not completed. Tasks without a parseable due date are skipped.
func Overdue(tasks []entity.Task, now time.Time) []entity.Task {
	var out []entity.Task
	for _, t := range tasks {
		if t.Completed() || t.DueDate == "" {
			continue
		}
		due := entity.ParseTimestamp(t.DueDate)
		if due.IsZero() {
			continue
		}
		if due.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// TasksInRange filters tasks to those created within the half-open window.
func TasksInRange(tasks []entity.Task, dr entity.DateRange) []entity.Task {
	var out []entity.Task
	for _, t := range tasks {
		created := entity.ParseTimestamp(t.CreatedAt)
		if created.IsZero() {
			continue
		}
		if dr.Contains(created) {
			out = append(out, t)
		}
	}
	return out
}

// TasksOfUser filters tasks to those assigned to or created by the user.
func TasksOfUser(tasks []entity.Task, userID string) []entity.Task {
	var out []entity.Task
	for _, t := range tasks {
		if t.AssigneeID == userID || t.CreatedBy == userID {
			out = append(out, t)
		}
	}
	return out
}

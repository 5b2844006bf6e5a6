package analyzer

import (
	"testing"
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
)

func TestBuildStats(t *testing.T) {
	now := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	dr := entity.DateRange{
		From: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
		To:   now,
	}

	tasks := []entity.Task{
		// Current window: 1 of 2 completed.
		{ID: "c1", Status: entity.StatusCompleted, CreatedAt: "2026-01-12T00:00:00Z", UpdatedAt: "2026-01-13T00:00:00Z", AssigneeID: "u1", CreatedBy: "u1"},
		{ID: "c2", Status: entity.StatusTodo, CreatedAt: "2026-01-15T00:00:00Z", UpdatedAt: "2026-01-15T00:00:00Z", AssigneeID: "u2", CreatedBy: "u1"},
		// Previous window [Jan 1, Jan 11): 1 of 1 completed.
		{ID: "p1", Status: entity.StatusCompleted, CreatedAt: "2026-01-05T00:00:00Z", UpdatedAt: "2026-01-06T00:00:00Z", AssigneeID: "u1", CreatedBy: "u1"},
		// Outside both windows.
		{ID: "old", Status: entity.StatusCompleted, CreatedAt: "2025-11-01T00:00:00Z", UpdatedAt: "2025-11-02T00:00:00Z", AssigneeID: "u9", CreatedBy: "u9"},
	}

	projects := []entity.Project{
		{ID: "pr1", Status: "active", DueDate: "2026-01-24"},
		{ID: "pr2", Status: "active", DueDate: "2026-03-01"},
		{ID: "pr3", Status: "completed"},
		{ID: "pr4", Status: "archived"},
	}

	stats := BuildStats(tasks, projects, dr, now)

	// Current: completion 50, no on-time data -> score 0.7*50 = 35.
	// Previous: completion 100 -> score 70.
	if stats.AvgProductivity != 35 {
		t.Errorf("AvgProductivity = %d, want 35", stats.AvgProductivity)
	}
	if stats.ProductivityChange.Direction != TrendDown {
		t.Errorf("ProductivityChange.Direction = %v, want down", stats.ProductivityChange.Direction)
	}
	if stats.TaskCompletion != 50 {
		t.Errorf("TaskCompletion = %d, want 50", stats.TaskCompletion)
	}
	if stats.TaskCompletionChange.Pct != -50 {
		t.Errorf("TaskCompletionChange.Pct = %v, want -50", stats.TaskCompletionChange.Pct)
	}
	if stats.ActiveUsers != 2 {
		t.Errorf("ActiveUsers = %d, want 2", stats.ActiveUsers)
	}
	if stats.ActiveUsersChange.Direction != TrendUp {
		t.Errorf("ActiveUsersChange.Direction = %v, want up", stats.ActiveUsersChange.Direction)
	}
	if stats.ProjectsActive != 2 {
		t.Errorf("ProjectsActive = %d, want 2", stats.ProjectsActive)
	}
	if stats.ProjectsDueThisWeek != 1 {
		t.Errorf("ProjectsDueThisWeek = %d, want 1", stats.ProjectsDueThisWeek)
	}
}

func TestBuildStats_EmptyInputs(t *testing.T) {
	now := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	dr := entity.LastNDays(now, 30)

	stats := BuildStats(nil, nil, dr, now)

	if stats.AvgProductivity != 0 || stats.TaskCompletion != 0 || stats.ActiveUsers != 0 {
		t.Errorf("empty inputs should yield zero metrics, got %+v", stats)
	}
	if stats.ProductivityChange.Direction != TrendFlat {
		t.Errorf("empty inputs should yield flat deltas, got %v", stats.ProductivityChange.Direction)
	}
}

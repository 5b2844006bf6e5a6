package analyzer

import (
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// closedProjectStatuses are the project states excluded from "active".
var closedProjectStatuses = map[string]bool{
	"completed": true,
	"cancelled": true,
	"archived":  true,
}

// BuildStats computes the dashboard stats cards for a date range. Both the
// current and the previous window are evaluated against the same aggregated,
// deduplicated task set, filtered by creation time.
func BuildStats(tasks []entity.Task, projects []entity.Project, dr entity.DateRange, now time.Time) StatsData {
	current := TasksInRange(tasks, dr)
	previous := TasksInRange(tasks, dr.Previous())

	currentScore := ProductivityScore(current)
	previousScore := ProductivityScore(previous)

	currentCompletion := CompletionRate(current)
	previousCompletion := CompletionRate(previous)

	currentActive := ActiveUserCount(current)
	previousActive := ActiveUserCount(previous)

	stats := StatsData{
		AvgProductivity:      currentScore,
		ProductivityChange:   Delta(float64(currentScore), float64(previousScore)),
		TaskCompletion:       roundRate(currentCompletion),
		TaskCompletionChange: Delta(currentCompletion, previousCompletion),
		ActiveUsers:          currentActive,
		ActiveUsersChange:    Delta(float64(currentActive), float64(previousActive)),
	}

	weekAhead := now.AddDate(0, 0, 7)
	for _, p := range projects {
		if !closedProjectStatuses[p.Status] {
			stats.ProjectsActive++
		}
		if p.DueDate == "" {
			continue
		}
		due := entity.ParseTimestamp(p.DueDate)
		if due.IsZero() {
			continue
		}
		if !due.Before(now) && due.Before(weekAhead) {
			stats.ProjectsDueThisWeek++
		}
	}

	return stats
}

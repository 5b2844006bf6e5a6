package watcher

import (
	"fmt"
	"time"
)

// Thresholds for metric regression alerts, in percentage points.
const (
	productivityDropCritical = 15
	completionDropWarning    = 10
)

// Compare detects notable changes between two watch states and returns
// alerts, most severe first.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert
	now := time.Now()

	// Productivity score dropped sharply.
	if drop := prev.AvgProductivity - curr.AvgProductivity; drop >= productivityDropCritical {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   "Productivity score drop",
			Message: fmt.Sprintf("Score fell from %d to %d since the last check", prev.AvgProductivity, curr.AvgProductivity),
			Time:    now,
		})
	}

	// Completion rate regressed.
	if drop := prev.TaskCompletion - curr.TaskCompletion; drop >= completionDropWarning {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Task completion drop",
			Message: fmt.Sprintf("Completion rate fell from %d%% to %d%%", prev.TaskCompletion, curr.TaskCompletion),
			Time:    now,
		})
	}

	// Aggregation became partial: some workspaces stopped answering.
	if curr.Partial && !prev.Partial {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Title:   "Partial aggregation",
			Message: fmt.Sprintf("%d workspace(s) failed to answer; metrics may undercount", len(curr.FailedWorkspaces)),
			Time:    now,
		})
	}

	// Everyone went quiet.
	if prev.ActiveUsers > 0 && curr.ActiveUsers == 0 {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "No active users",
			Message: "No task activity in the current window",
			Time:    now,
		})
	}

	// Recovery: completion climbed back by a meaningful margin.
	if gain := curr.TaskCompletion - prev.TaskCompletion; gain >= completionDropWarning {
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   "Task completion recovering",
			Message: fmt.Sprintf("Completion rate rose from %d%% to %d%%", prev.TaskCompletion, curr.TaskCompletion),
			Time:    now,
		})
	}

	return alerts
}

package analyzer

import (
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// BuildMemberStats computes the per-member analytics view from the member's
// task set. Projects are used to decide which of the member's projects are
// still open; a task whose project is unknown to the snapshot still counts
// toward ActiveProjects, since the engine cannot prove it closed.
func BuildMemberStats(tasks []entity.Task, projects []entity.Project, memberID string, now time.Time) MemberStatsData {
	mine := TasksOfUser(tasks, memberID)

	projectStatus := make(map[string]string, len(projects))
	for _, p := range projects {
		projectStatus[p.ID] = p.Status
	}

	stats := MemberStatsData{
		TotalTasks:     len(mine),
		OverdueTasks:   len(Overdue(mine, now)),
		CompletionRate: roundRate(CompletionRate(mine)),
	}

	activeProjects := make(map[string]bool)
	for _, t := range mine {
		switch t.Status {
		case entity.StatusCompleted:
			stats.CompletedTasks++
		case entity.StatusInProgress:
			stats.InProgressTasks++
		}

		if t.ProjectID == "" {
			continue
		}
		if status, known := projectStatus[t.ProjectID]; known && closedProjectStatuses[status] {
			continue
		}
		activeProjects[t.ProjectID] = true
	}
	stats.ActiveProjects = len(activeProjects)

	return stats
}

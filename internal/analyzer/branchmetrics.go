package analyzer

import "github.com/brightline-systems/workpulse/internal/entity"

// BuildBranchMetrics computes one branch-performance row per branch. Tasks
// are attributed via project membership or the branch's user roster; the
// roster is drawn from the merged user set, which covers every queried
// workspace plus each branch's own source workspace.
func BuildBranchMetrics(branches []entity.Branch, tasks []entity.Task, projects []entity.Project, users []entity.User) []BranchMetricsData {
	rows := make([]BranchMetricsData, 0, len(branches))

	for _, b := range branches {
		roster := BranchRoster(users, b.ID)
		branchTasks := AttributeToBranch(b, tasks, projects, roster)

		completed := 0
		for _, t := range branchTasks {
			if t.Completed() {
				completed++
			}
		}

		rows = append(rows, BranchMetricsData{
			Branch:      b.Name,
			Tasks:       len(branchTasks),
			Completed:   completed,
			Efficiency:  BranchEfficiency(branchTasks),
			ActiveUsers: ActiveUserCount(branchTasks),
		})
	}

	return rows
}

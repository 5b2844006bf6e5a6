package analyzer

import "github.com/brightline-systems/workpulse/internal/entity"

// AttributeToBranch returns the tasks belonging to a branch. A task matches
// when either its project belongs to the branch, or its assignee or creator
// is on the branch's user roster. The two clauses are a union, not a
// priority order, so a task satisfying different clauses for two branches is
// counted by both; that ambiguity is accepted, documented behavior.
func AttributeToBranch(branch entity.Branch, tasks []entity.Task, projects []entity.Project, roster []entity.User) []entity.Task {
	branchProjects := make(map[string]bool)
	for _, p := range projects {
		if p.BranchID == branch.ID {
			branchProjects[p.ID] = true
		}
	}

	rosterIDs := make(map[string]bool, len(roster))
	for _, u := range roster {
		rosterIDs[u.ID] = true
	}

	var out []entity.Task
	for _, t := range tasks {
		if t.ProjectID != "" && branchProjects[t.ProjectID] {
			out = append(out, t)
			continue
		}
		if rosterIDs[t.AssigneeID] || rosterIDs[t.CreatedBy] {
			out = append(out, t)
		}
	}
	return out
}

// BranchRoster filters a merged user set down to the members of one branch.
func BranchRoster(users []entity.User, branchID string) []entity.User {
	var out []entity.User
	for _, u := range users {
		if u.BranchID == branchID {
			out = append(out, u)
		}
	}
	return out
}

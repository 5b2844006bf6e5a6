// Package analyzer computes derived workspace metrics from aggregated
// entity snapshots: completion and on-time rates, the weighted productivity
// score, branch efficiency, weekly trend buckets, and period-over-period
// deltas. Everything here is pure; suspension points live in the aggregator.
package analyzer

// Direction classifies a period-over-period movement.
type Direction string

// Delta directions.
const (
	TrendUp   Direction = "up"
	TrendDown Direction = "down"
	TrendFlat Direction = "flat"
)

// Change is a period-over-period delta.
type Change struct {
	// Pct is the percentage change relative to the previous value. It is 0
	// when the previous value was 0, regardless of the current value.
	Pct float64 `json:"pct"`

	// Direction is up, down, or flat.
	Direction Direction `json:"direction"`
}

// StatsData powers the dashboard stats cards.
type StatsData struct {
	// AvgProductivity is the weighted productivity score (0-100) for the
	// current period.
	AvgProductivity int `json:"avg_productivity"`

	// ProductivityChange compares against the immediately preceding period.
	ProductivityChange Change `json:"productivity_change"`

	// TaskCompletion is the completion rate (0-100) for the current period.
	TaskCompletion int `json:"task_completion"`

	// TaskCompletionChange compares against the preceding period.
	TaskCompletionChange Change `json:"task_completion_change"`

	// ActiveUsers counts distinct assignees and creators in the period.
	ActiveUsers int `json:"active_users"`

	// ActiveUsersChange compares against the preceding period.
	ActiveUsersChange Change `json:"active_users_change"`

	// ProjectsActive counts projects not yet closed.
	ProjectsActive int `json:"projects_active"`

	// ProjectsDueThisWeek counts projects due within 7 days of now.
	ProjectsDueThisWeek int `json:"projects_due_this_week"`
}

// BranchMetricsData is one row of the branch-performance chart.
type BranchMetricsData struct {
	// Branch is the branch display name.
	Branch string `json:"branch"`

	// Tasks is the number of tasks attributed to the branch.
	Tasks int `json:"tasks"`

	// Completed is the number of those tasks that are completed.
	Completed int `json:"completed"`

	// Efficiency is round(100 * completed / tasks), 0 when empty.
	Efficiency int `json:"efficiency"`

	// ActiveUsers counts distinct assignees and creators on branch tasks.
	ActiveUsers int `json:"active_users"`
}

// ProductivityTrendData is one point of the productivity-trend chart.
type ProductivityTrendData struct {
	// Week is the bucket label (W1..W8).
	Week string `json:"week"`

	// Individual is the caller's productivity score within the bucket.
	Individual int `json:"individual"`

	// Team is the whole scope's productivity score within the bucket.
	Team int `json:"team"`

	// Period is a human-readable date span for the bucket.
	Period string `json:"period"`
}

// MemberStatsData powers the per-member analytics view.
type MemberStatsData struct {
	TotalTasks      int `json:"total_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	OverdueTasks    int `json:"overdue_tasks"`

	// CompletionRate is the member's completion rate (0-100).
	CompletionRate int `json:"completion_rate"`

	// ActiveProjects counts distinct open projects the member's tasks
	// belong to.
	ActiveProjects int `json:"active_projects"`
}

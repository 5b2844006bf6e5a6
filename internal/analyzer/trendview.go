package analyzer

import "github.com/brightline-systems/workpulse/internal/entity"

// BuildProductivityTrend computes the productivity-trend chart: one point
// per weekly bucket, comparing the caller's own productivity score against
// the whole scope's. Tasks are assigned to buckets by creation time.
func BuildProductivityTrend(tasks []entity.Task, callerID string, dr entity.DateRange) []ProductivityTrendData {
	buckets := WeeklyBuckets(dr.From, dr.To, LabelWeek)
	points := make([]ProductivityTrendData, 0, len(buckets))

	for _, b := range buckets {
		window := entity.DateRange{From: b.Start, To: b.End}
		bucketTasks := TasksInRange(tasks, window)

		points = append(points, ProductivityTrendData{
			Week:       b.Label,
			Individual: ProductivityScore(TasksOfUser(bucketTasks, callerID)),
			Team:       ProductivityScore(bucketTasks),
			Period:     b.Period(),
		})
	}

	return points
}

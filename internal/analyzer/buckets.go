package analyzer

import (
	"fmt"
	"time"
)

// MaxBuckets caps the number of trend buckets regardless of range length.
// Longer ranges are truncated, not resampled; a readability trade-off for
// chart rendering.
const MaxBuckets = 8

// LabelScheme selects how bucket labels are rendered.
type LabelScheme int

// Label schemes shared by the trend and rollup views.
const (
	// LabelWeek labels buckets W1..W8.
	LabelWeek LabelScheme = iota

	// LabelMonth labels buckets with the short month name of their start.
	LabelMonth
)

// Bucket is a single trend window. Start is inclusive, End exclusive except
// for the final bucket, whose End is clamped to the range end.
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
}

// Period returns a human-readable date span for the bucket.
func (b Bucket) Period() string {
	return b.Start.Format("Jan 02") + " - " + b.End.Format("Jan 02")
}

// WeeklyBuckets splits [from, to) into consecutive 7-day windows starting at
// from. The final window's end is clamped to to even if shorter than 7 days,
// and at most MaxBuckets windows are produced. Always returns at least one
// bucket. An inverted range collapses to a single empty [from, from) bucket.
func WeeklyBuckets(from, to time.Time, scheme LabelScheme) []Bucket {
	if to.Before(from) {
		to = from
	}

	var buckets []Bucket

	for i := 0; i < MaxBuckets; i++ {
		start := from.AddDate(0, 0, 7*i)
		if i > 0 && !start.Before(to) {
			break
		}
		end := start.AddDate(0, 0, 7)
		if end.After(to) {
			end = to
		}

		buckets = append(buckets, Bucket{
			Start: start,
			End:   end,
			Label: bucketLabel(scheme, i, start),
		})

		if !end.Before(to) {
			break
		}
	}

	return buckets
}

func bucketLabel(scheme LabelScheme, index int, start time.Time) string {
	if scheme == LabelMonth {
		return start.Format("Jan")
	}
	return fmt.Sprintf("W%d", index+1)
}

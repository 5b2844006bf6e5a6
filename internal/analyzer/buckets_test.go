package analyzer

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyBuckets_ClampsFinalBucket(t *testing.T) {
	// 10 days: one full week plus a 3-day remainder.
	buckets := WeeklyBuckets(day(2026, 1, 1), day(2026, 1, 11), LabelWeek)

	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if !buckets[0].Start.Equal(day(2026, 1, 1)) || !buckets[0].End.Equal(day(2026, 1, 8)) {
		t.Errorf("bucket 0 = [%v, %v), want [Jan 1, Jan 8)", buckets[0].Start, buckets[0].End)
	}
	if !buckets[1].Start.Equal(day(2026, 1, 8)) || !buckets[1].End.Equal(day(2026, 1, 11)) {
		t.Errorf("bucket 1 = [%v, %v), want [Jan 8, Jan 11)", buckets[1].Start, buckets[1].End)
	}
}

func TestWeeklyBuckets_CapsAtMax(t *testing.T) {
	// A year-long range still yields at most MaxBuckets windows.
	buckets := WeeklyBuckets(day(2026, 1, 1), day(2027, 1, 1), LabelWeek)

	if len(buckets) != MaxBuckets {
		t.Fatalf("got %d buckets, want %d", len(buckets), MaxBuckets)
	}
	last := buckets[len(buckets)-1]
	if !last.End.Equal(day(2026, 2, 26)) {
		t.Errorf("last bucket end = %v, want 2026-02-26 (8 full weeks)", last.End)
	}
}

func TestWeeklyBuckets_ShortRange(t *testing.T) {
	buckets := WeeklyBuckets(day(2026, 1, 1), day(2026, 1, 3), LabelWeek)

	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if !buckets[0].End.Equal(day(2026, 1, 3)) {
		t.Errorf("bucket end = %v, want clamp to range end", buckets[0].End)
	}
}

func TestWeeklyBuckets_InvertedRange(t *testing.T) {
	buckets := WeeklyBuckets(day(2026, 1, 11), day(2026, 1, 1), LabelWeek)

	if len(buckets) != 1 {
		t.Fatalf("got %d buckets, want 1", len(buckets))
	}
	if buckets[0].End.Before(buckets[0].Start) {
		t.Errorf("bucket end %v precedes start %v", buckets[0].End, buckets[0].Start)
	}
}

func TestWeeklyBuckets_Labels(t *testing.T) {
	weekly := WeeklyBuckets(day(2026, 1, 1), day(2026, 1, 22), LabelWeek)
	for i, b := range weekly {
		want := []string{"W1", "W2", "W3"}[i]
		if b.Label != want {
			t.Errorf("bucket %d label = %q, want %q", i, b.Label, want)
		}
	}

	monthly := WeeklyBuckets(day(2026, 1, 29), day(2026, 2, 12), LabelMonth)
	if monthly[0].Label != "Jan" {
		t.Errorf("first month label = %q, want Jan", monthly[0].Label)
	}
	if monthly[1].Label != "Feb" {
		t.Errorf("second month label = %q, want Feb", monthly[1].Label)
	}
}

func TestBucket_Period(t *testing.T) {
	b := Bucket{Start: day(2026, 1, 1), End: day(2026, 1, 8)}
	if got := b.Period(); got != "Jan 01 - Jan 08" {
		t.Errorf("Period = %q", got)
	}
}

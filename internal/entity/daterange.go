package entity

import "time"

// DateRange is a half-open [From, To) window over which metrics are computed.
// Preset carries the UI preset name ("7d", "30d", "90d", "custom") and is
// informational only; From and To are authoritative.
type DateRange struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Preset string    `json:"preset,omitempty"`
}

// Duration returns the length of the window.
func (d DateRange) Duration() time.Duration {
	return d.To.Sub(d.From)
}

// Previous returns the immediately preceding window of identical length,
// i.e. [From - (To - From), From).
func (d DateRange) Previous() DateRange {
	return DateRange{
		From:   d.From.Add(-d.Duration()),
		To:     d.From,
		Preset: d.Preset,
	}
}

// Contains reports whether t falls inside the window.
func (d DateRange) Contains(t time.Time) bool {
	return !t.Before(d.From) && t.Before(d.To)
}

// LastNDays returns a range ending at now covering the previous n days.
func LastNDays(now time.Time, n int) DateRange {
	return DateRange{
		From:   now.AddDate(0, 0, -n),
		To:     now,
		Preset: presetForDays(n),
	}
}

func presetForDays(n int) string {
	switch n {
	case 7:
		return "7d"
	case 30:
		return "30d"
	case 90:
		return "90d"
	default:
		return "custom"
	}
}

// ParseTimestamp parses an ISO 8601 timestamp string as stored by the
// document store. It tries RFC3339Nano, RFC3339, and a plain date. Returns
// the zero time if the string is empty or cannot be parsed.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			// Fallback for date-only fields such as due dates.
			t, err = time.Parse("2006-01-02", s)
			if err != nil {
				return time.Time{}
			}
		}
	}
	return t
}

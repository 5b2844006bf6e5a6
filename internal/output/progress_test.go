package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	bar := ScoreBar(80, 10)
	if got := strings.Count(bar, "█"); got != 8 {
		t.Errorf("expected 8 filled cells for score 80 width 10, got %d", got)
	}
	if got := strings.Count(bar, "░"); got != 2 {
		t.Errorf("expected 2 empty cells, got %d", got)
	}
	if !strings.Contains(bar, "80/100") {
		t.Errorf("expected score label in %q", bar)
	}
}

func TestScoreBar_Clamps(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := strings.Count(ScoreBar(150, 10), "█"); got != 10 {
		t.Errorf("over-range score should fill the whole bar, got %d cells", got)
	}
	if got := strings.Count(ScoreBar(-20, 10), "█"); got != 0 {
		t.Errorf("negative score should fill nothing, got %d cells", got)
	}
}

func TestScoreBar_DefaultWidth(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	bar := ScoreBar(50, 0)
	cells := strings.Count(bar, "█") + strings.Count(bar, "░")
	if cells != 20 {
		t.Errorf("zero width should fall back to 20 cells, got %d", cells)
	}
}

func TestTrendArrowPercent(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		name           string
		delta          float64
		higherIsBetter bool
		want           string
	}{
		{"zero is flat", 0, true, "─"},
		{"positive when higher is better", 20, true, "▲ +20%"},
		{"negative when higher is better", -5, true, "▼ -5%"},
		{"positive when lower is better", 15, false, "▲ +15%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrendArrowPercent(tc.delta, tc.higherIsBetter); got != tc.want {
				t.Errorf("TrendArrowPercent(%v, %v) = %q, want %q",
					tc.delta, tc.higherIsBetter, got, tc.want)
			}
		})
	}
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	s := Section("Branch Metrics")
	if !strings.Contains(s, "Branch Metrics") {
		t.Error("expected title in section header")
	}
	if !strings.Contains(s, "─") {
		t.Error("expected horizontal rule in section header")
	}
}

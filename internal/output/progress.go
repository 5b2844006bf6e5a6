package output

import (
	"fmt"
	"strings"
)

// ScoreBar renders a 0-100 productivity score as a filled bar.
// Example: "████████░░ 80/100"
func ScoreBar(score, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := score * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleError
	switch {
	case score >= 70:
		style = StyleSuccess
	case score >= 40:
		style = StyleWarning
	}

	return style.Render(bar) + " " + StyleMuted.Render(fmt.Sprintf("%d/100", score))
}

// TrendArrowPercent renders a period-over-period percentage change as a
// styled arrow. Zero renders as a muted dash; the color reflects whether the
// movement is an improvement, given whether higher values are better for the
// metric.
func TrendArrowPercent(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	arrow := fmt.Sprintf("▼ %.0f%%", delta)
	if delta > 0 {
		arrow = fmt.Sprintf("▲ +%.0f%%", delta)
	}

	if (delta > 0) == higherIsBetter {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatCard renders a single dashboard stat card: a label, a large value,
// and an optional delta line.
type StatCard struct {
	Label string
	Value string
	Delta string // pre-styled delta indicator; empty hides the line
}

// Render returns the card as a bordered block.
func (c StatCard) Render() string {
	label := StyleMuted.Render(c.Label)
	value := StyleBold.Render(c.Value)

	body := label + "\n" + value
	if c.Delta != "" {
		body += "\n" + c.Delta
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 2).
		Width(22)
	if IsNoColor() {
		border = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 2).
			Width(22)
	}

	return border.Render(body)
}

// CardRow renders cards side by side, separated by a space.
func CardRow(cards ...StatCard) string {
	if len(cards) == 0 {
		return ""
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = c.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// PartialNotice renders the warning line shown when aggregation lost one or
// more workspaces.
func PartialNotice(failed []string) string {
	if len(failed) == 0 {
		return ""
	}
	msg := fmt.Sprintf("⚠ partial results: %d workspace(s) failed to answer (%s)",
		len(failed), strings.Join(failed, ", "))
	return StyleWarning.Render(msg)
}

package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dashboard stat cards with period-over-period deltas",
	Long: `Computes the dashboard statistics for the resolved scope: average
productivity score, task completion rate, active users, and project counts,
each with the change versus the preceding period of equal length.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	in, err := buildInputs(cfg)
	if err != nil {
		return err
	}

	e := engine.New(src, newLogger())
	view, err := e.Dashboard(cmd.Context(), e.NextRequest(in))
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	fmt.Println(output.Section(fmt.Sprintf("Workspace Stats (%s)", in.DateRange.Preset)))
	fmt.Println()
	printPartialNotice(view.FailedWorkspaces)

	s := view.Stats
	fmt.Println(output.CardRow(
		output.StatCard{
			Label: "Avg Productivity",
			Value: fmt.Sprintf("%d", s.AvgProductivity),
			Delta: output.TrendArrowPercent(s.ProductivityChange.Pct, true),
		},
		output.StatCard{
			Label: "Task Completion",
			Value: fmt.Sprintf("%d%%", s.TaskCompletion),
			Delta: output.TrendArrowPercent(s.TaskCompletionChange.Pct, true),
		},
	))
	fmt.Println(output.CardRow(
		output.StatCard{
			Label: "Active Users",
			Value: fmt.Sprintf("%d", s.ActiveUsers),
			Delta: output.TrendArrowPercent(s.ActiveUsersChange.Pct, true),
		},
		output.StatCard{
			Label: "Active Projects",
			Value: fmt.Sprintf("%d", s.ProjectsActive),
			Delta: "",
		},
	))
	fmt.Println()
	fmt.Printf("  Projects due this week: %d\n", s.ProjectsDueThisWeek)
	fmt.Println()
	fmt.Println("  Productivity", output.ScoreBar(s.AvgProductivity, 20))

	return nil
}

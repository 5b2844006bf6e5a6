package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/output"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Weekly individual vs. team productivity trend",
	Long: `Splits the date range into weekly buckets (up to eight) and computes
the productivity score of the caller's own tasks versus the whole scope's
tasks in each bucket.`,
	RunE: runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) error {
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
		return enc.Encode(map[string]any{
			"trend":             view.Trend,
			"partial":           view.Partial,
			"failed_workspaces": view.FailedWorkspaces,
		})
	}

	fmt.Println(output.Section("Productivity Trend"))
	fmt.Println()
	printPartialNotice(view.FailedWorkspaces)

	table := output.NewTable("Week", "Period", "You", "Team")
	for _, w := range view.Trend {
		table.AddRow(
			w.Week,
			w.Period,
			output.ScoreBar(w.Individual, 10),
			output.ScoreBar(w.Team, 10),
		)
	}
	table.Print()

	return nil
}

package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/output"
)

var memberCmd = &cobra.Command{
	Use:   "member [user-id]",
	Short: "Per-member task analytics",
	Long: `Computes one member's task analytics within the resolved scope: task
counts by state, overdue tasks, completion rate, and active projects. With no
argument the caller's own stats are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMember,
}

func init() {
	rootCmd.AddCommand(memberCmd)
}

func runMember(cmd *cobra.Command, args []string) error {
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

	memberID := in.UserID
	if len(args) == 1 {
		memberID = args[0]
	}
	if memberID == "" {
		return errors.New("no member given: pass a user id or set --user")
	}

	e := engine.New(src, newLogger())
	view, err := e.Member(cmd.Context(), e.NextRequest(in), memberID)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	fmt.Println(output.Section(fmt.Sprintf("Member Stats: %s", memberID)))
	fmt.Println()
	printPartialNotice(view.FailedWorkspaces)

	s := view.Stats
	fmt.Println(output.CardRow(
		output.StatCard{Label: "Total Tasks", Value: fmt.Sprintf("%d", s.TotalTasks)},
		output.StatCard{Label: "Completed", Value: fmt.Sprintf("%d", s.CompletedTasks)},
		output.StatCard{Label: "In Progress", Value: fmt.Sprintf("%d", s.InProgressTasks)},
	))
	fmt.Println(output.CardRow(
		output.StatCard{Label: "Overdue", Value: fmt.Sprintf("%d", s.OverdueTasks)},
		output.StatCard{Label: "Completion", Value: fmt.Sprintf("%d%%", s.CompletionRate)},
		output.StatCard{Label: "Active Projects", Value: fmt.Sprintf("%d", s.ActiveProjects)},
	))

	return nil
}

package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/output"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "Branch performance and efficiency table",
	Long: `Computes per-branch metrics for the resolved scope. A task counts
toward a branch when its project belongs to the branch or when its assignee
or creator is rostered there.`,
	RunE: runBranches,
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}

func runBranches(cmd *cobra.Command, args []string) error {
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
			"branches":          view.Branches,
			"partial":           view.Partial,
			"failed_workspaces": view.FailedWorkspaces,
		})
	}

	fmt.Println(output.Section("Branch Performance"))
	fmt.Println()
	printPartialNotice(view.FailedWorkspaces)

	if len(view.Branches) == 0 {
		fmt.Println("  No branches in scope.")
		return nil
	}

	table := output.NewTable("Branch", "Tasks", "Completed", "Efficiency", "Active Users")
	for _, b := range view.Branches {
		table.AddRow(
			b.Branch,
			fmt.Sprintf("%d", b.Tasks),
			fmt.Sprintf("%d", b.Completed),
			fmt.Sprintf("%d%%", b.Efficiency),
			fmt.Sprintf("%d", b.ActiveUsers),
		)
	}
	table.Print()

	return nil
}

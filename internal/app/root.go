// Package app contains the Cobra command tree for workpulse.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool

	flagWorkspace string
	flagUser      string
	flagRole      string
	flagDays      int
	flagFrom      string
	flagTo        string
	flagAll       bool
	flagRemote    bool
)

var rootCmd = &cobra.Command{
	Use:   "workpulse",
	Short: "Cross-workspace analytics for team workspaces",
	Long: `workpulse computes analytics across the workspaces you can see: task
completion, on-time delivery, a weighted productivity score, branch
performance, and week-over-week trends. It reads live entity snapshots from
the workspace suite's document store (or a local replica) and recomputes
every view on demand.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("workpulse", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  stats     Dashboard stat cards with period-over-period deltas")
		fmt.Println("  branches  Branch performance and efficiency table")
		fmt.Println("  trend     Weekly individual vs. team productivity trend")
		fmt.Println("  member    Per-member task analytics")
		fmt.Println("  sync      Pull a local replica of the document store")
		fmt.Println("  serve     Expose the view models over HTTP")
		fmt.Println("  watch     Poll metrics and alert on regressions")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/workpulse/config.yaml)")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	pf.StringVar(&flagWorkspace, "workspace", "", "Current workspace id (default from config)")
	pf.StringVar(&flagUser, "user", "", "Caller user id (default from config)")
	pf.StringVar(&flagRole, "role", "", "Caller role: member, admin, or owner")
	pf.IntVar(&flagDays, "days", 0, "Date range: last N days (default from config)")
	pf.StringVar(&flagFrom, "from", "", "Date range start (YYYY-MM-DD or RFC3339)")
	pf.StringVar(&flagTo, "to", "", "Date range end (exclusive)")
	pf.BoolVar(&flagAll, "all-workspaces", false, "Aggregate across all accessible workspaces (owner only)")
	pf.BoolVar(&flagRemote, "remote", false, "Read from the remote document store instead of the local replica")
}

package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/output"
	"github.com/brightline-systems/workpulse/internal/watcher"
)

var flagWatchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll metrics and alert on regressions",
	Long: `Recomputes the dashboard metrics at a fixed interval and prints an
alert when they regress: a sharp productivity drop, a falling completion
rate, workspaces dropping out of aggregation, or activity going quiet.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 5*time.Minute, "Polling interval")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	w := watcher.New(engine.New(src, newLogger()), in, flagWatchInterval, printAlert)

	fmt.Printf("Watching workspace metrics every %s (Ctrl+C to stop)\n", flagWatchInterval)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("\nStopped.")
	return nil
}

// printAlert writes one styled alert line.
func printAlert(a watcher.Alert) {
	stamp := a.Time.Format("15:04:05")
	line := fmt.Sprintf("[%s] %s: %s", stamp, a.Title, a.Message)
	switch a.Level {
	case "critical":
		fmt.Println(output.StyleError.Render(line))
	case "warning":
		fmt.Println(output.StyleWarning.Render(line))
	default:
		fmt.Println(output.StyleMuted.Render(line))
	}
}

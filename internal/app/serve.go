package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/httpapi"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the view models over HTTP",
	Long: `Runs an HTTP server exposing the analytics view models as JSON under
/v1. Scope parameters come from each request's query string, so one server
can answer for any caller.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	log, err := zap.NewProduction()
	if flagVerbose {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	defer log.Sync()

	addr := flagServeAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	router := httpapi.NewRouter(engine.New(src, log), log)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

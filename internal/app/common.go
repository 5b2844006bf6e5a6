package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/brightline-systems/workpulse/internal/config"
	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/output"
	"github.com/brightline-systems/workpulse/internal/source"
	"github.com/brightline-systems/workpulse/internal/store"
)

// loadConfig loads configuration and applies the global output flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.AutoColor()

	return cfg, nil
}

// newLogger builds the CLI logger: silent by default, development output
// with --verbose.
func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openStore selects the entity backend: the local replica when it exists
// (and --remote was not given), otherwise the remote document store. The
// returned closer releases the replica connection when one was opened.
func openStore(cfg *config.Config) (source.Store, func(), error) {
	if !flagRemote {
		if _, err := os.Stat(cfg.Replica.Path); err == nil {
			db, err := store.Open(cfg.Replica.Path)
			if err != nil {
				return nil, nil, fmt.Errorf("opening replica: %w", err)
			}
			return db, func() { _ = db.Close() }, nil
		}
	}

	if cfg.Source.BaseURL == "" {
		return nil, nil, errors.New("no replica found and source.base_url is not configured; run 'workpulse sync' or set the source endpoint")
	}

	src := source.NewHTTPStore(cfg.Source.BaseURL, cfg.Source.APIKey,
		time.Duration(cfg.Source.TimeoutSec)*time.Second)
	return src, func() {}, nil
}

// remoteStore always returns the HTTP document-store client (used by sync).
func remoteStore(cfg *config.Config) (*source.HTTPStore, error) {
	if cfg.Source.BaseURL == "" {
		return nil, errors.New("source.base_url is not configured")
	}
	return source.NewHTTPStore(cfg.Source.BaseURL, cfg.Source.APIKey,
		time.Duration(cfg.Source.TimeoutSec)*time.Second), nil
}

// buildInputs assembles the engine inputs from flags and config defaults.
func buildInputs(cfg *config.Config) (engine.Inputs, error) {
	in := engine.Inputs{
		WorkspaceID:       flagWorkspace,
		UserID:            flagUser,
		Role:              entity.Role(flagRole),
		ShowAllWorkspaces: flagAll,
	}
	if in.WorkspaceID == "" {
		in.WorkspaceID = cfg.Scope.WorkspaceID
	}
	if in.UserID == "" {
		in.UserID = cfg.Scope.UserID
	}
	if in.Role == "" {
		in.Role = entity.Role(cfg.Scope.Role)
	}
	if !in.Role.Valid() {
		return engine.Inputs{}, fmt.Errorf("unknown role %q", in.Role)
	}

	dr, err := buildDateRange(cfg)
	if err != nil {
		return engine.Inputs{}, err
	}
	in.DateRange = dr

	return in, nil
}

// buildDateRange resolves --from/--to or --days into a concrete window.
func buildDateRange(cfg *config.Config) (entity.DateRange, error) {
	if flagFrom != "" || flagTo != "" {
		from := entity.ParseTimestamp(flagFrom)
		to := entity.ParseTimestamp(flagTo)
		if from.IsZero() || to.IsZero() {
			return entity.DateRange{}, errors.New("--from and --to must both be valid dates")
		}
		if !from.Before(to) {
			return entity.DateRange{}, errors.New("--from must precede --to")
		}
		return entity.DateRange{From: from, To: to, Preset: "custom"}, nil
	}

	days := flagDays
	if days <= 0 {
		days = cfg.Scope.RangeDays
	}
	if days <= 0 {
		days = config.DefaultRangeDays
	}
	return entity.LastNDays(time.Now(), days), nil
}

// printPartialNotice warns when the view was computed from partial results.
func printPartialNotice(failed []string) {
	if notice := output.PartialNotice(failed); notice != "" {
		fmt.Println(notice)
		fmt.Println()
	}
}

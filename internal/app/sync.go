package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightline-systems/workpulse/internal/config"
	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/source"
	"github.com/brightline-systems/workpulse/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync [workspace-id...]",
	Short: "Pull a local replica of the document store",
	Long: `Fetches tasks, projects, users, and branches for one or more
workspaces from the remote document store and writes them to the local
SQLite replica. Subsequent commands read the replica unless --remote is
given. With --all-workspaces every workspace accessible to --user is synced.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := remoteStore(cfg)
	if err != nil {
		return err
	}

	ids, err := syncTargets(cmd.Context(), cfg, src, args)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Replica.Path)
	if err != nil {
		return fmt.Errorf("opening replica: %w", err)
	}
	defer db.Close()

	log := newLogger()
	var failed int
	for _, id := range ids {
		if err := syncWorkspace(cmd.Context(), src, db, id, log); err != nil {
			failed++
			fmt.Printf("  ✗ %s: %v\n", id, err)
			continue
		}
		fmt.Printf("  ✓ %s\n", id)
	}

	fmt.Printf("\nSynced %d of %d workspace(s) to %s\n", len(ids)-failed, len(ids), cfg.Replica.Path)
	if failed > 0 {
		return fmt.Errorf("%d workspace(s) failed to sync", failed)
	}
	return nil
}

// syncTargets resolves which workspaces to sync: explicit args, everything
// accessible to the caller, or the current workspace.
func syncTargets(ctx context.Context, cfg *config.Config, src *source.HTTPStore, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if flagAll {
		userID := flagUser
		if userID == "" {
			userID = cfg.Scope.UserID
		}
		if userID == "" {
			return nil, errors.New("--all-workspaces needs --user to list accessible workspaces")
		}
		acc, err := src.AccessibleWorkspaces(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing accessible workspaces: %w", err)
		}
		var ids []string
		for _, ws := range acc.All() {
			ids = append(ids, ws.ID)
		}
		if len(ids) == 0 {
			return nil, errors.New("no accessible workspaces to sync")
		}
		return ids, nil
	}

	wsID := flagWorkspace
	if wsID == "" {
		wsID = cfg.Scope.WorkspaceID
	}
	if wsID == "" {
		return nil, errors.New("no workspace given: pass ids, set --workspace, or use --all-workspaces")
	}
	return []string{wsID}, nil
}

// syncWorkspace replaces one workspace's replica rows with a fresh snapshot.
// Branches are fetched from the workspace's branch source, so a
// sub-workspace also refreshes its parent's branch rows.
func syncWorkspace(ctx context.Context, src *source.HTTPStore, db *store.DB, workspaceID string, log *zap.Logger) error {
	ws, err := src.Workspace(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetching workspace: %w", err)
	}
	if err := db.UpsertWorkspace(ctx, *ws); err != nil {
		return fmt.Errorf("storing workspace: %w", err)
	}

	tasks, err := src.WorkspaceTasks(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetching tasks: %w", err)
	}
	projects, err := src.WorkspaceProjects(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}
	users, err := src.WorkspaceUsers(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetching users: %w", err)
	}

	branchSource := workspaceID
	if ws.Type == entity.WorkspaceSub && ws.ParentWorkspaceID != "" {
		branchSource = ws.ParentWorkspaceID
	}
	branches, err := src.WorkspaceBranches(ctx, branchSource)
	if err != nil {
		return fmt.Errorf("fetching branches: %w", err)
	}

	var ownBranches []entity.Branch
	if branchSource == workspaceID {
		ownBranches = branches
	}
	if err := db.ReplaceWorkspaceData(ctx, workspaceID, tasks, projects, users, ownBranches); err != nil {
		return fmt.Errorf("writing replica: %w", err)
	}
	if branchSource != workspaceID {
		if err := db.ReplaceBranches(ctx, branchSource, branches); err != nil {
			return fmt.Errorf("writing parent branches: %w", err)
		}
	}

	log.Debug("workspace synced",
		zap.String("workspace", workspaceID),
		zap.Int("tasks", len(tasks)),
		zap.Int("projects", len(projects)),
		zap.Int("users", len(users)),
		zap.Int("branches", len(branches)),
	)
	return nil
}

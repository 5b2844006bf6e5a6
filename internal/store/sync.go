package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// nullable converts an empty string to NULL for optional columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ReplaceWorkspaceData atomically replaces one workspace's task, project,
// user, and branch rows with a freshly fetched snapshot and stamps the
// workspace's sync time.
func (db *DB) ReplaceWorkspaceData(ctx context.Context, workspaceID string, tasks []entity.Task, projects []entity.Project, users []entity.User, branches []entity.Branch) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"tasks", "projects", "users", "branches"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE workspace_id = ?", workspaceID); err != nil {
			return err
		}
	}

	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO tasks
			 (id, workspace_id, project_id, assignee_id, created_by, status, created_at, updated_at, due_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, workspaceID, nullable(t.ProjectID), nullable(t.AssigneeID),
			t.CreatedBy, string(t.Status), t.CreatedAt, t.UpdatedAt, nullable(t.DueDate),
		); err != nil {
			return err
		}
	}

	for _, p := range projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO projects
			 (id, workspace_id, branch_id, name, status, created_at, due_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, workspaceID, nullable(p.BranchID), p.Name, p.Status, p.CreatedAt, nullable(p.DueDate),
		); err != nil {
			return err
		}
	}

	for _, u := range users {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO users
			 (id, workspace_id, branch_id, region_id, name, role)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			u.ID, workspaceID, nullable(u.BranchID), nullable(u.RegionID), u.Name, string(u.Role),
		); err != nil {
			return err
		}
	}

	for _, b := range branches {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO branches (id, workspace_id, name) VALUES (?, ?, ?)",
			b.ID, workspaceID, b.Name,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO replica_meta (workspace_id, synced_at) VALUES (?, ?)",
		workspaceID, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceBranches replaces the branch rows of one workspace. Used when a
// sub-workspace's branches live under its parent and the parent itself is
// not part of the sync set.
func (db *DB) ReplaceBranches(ctx context.Context, workspaceID string, branches []entity.Branch) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM branches WHERE workspace_id = ?", workspaceID); err != nil {
		return err
	}
	for _, b := range branches {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR REPLACE INTO branches (id, workspace_id, name) VALUES (?, ?, ?)",
			b.ID, workspaceID, b.Name,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpsertWorkspace stores a workspace document.
func (db *DB) UpsertWorkspace(ctx context.Context, ws entity.Workspace) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO workspaces
		 (id, name, workspace_type, parent_workspace_id, branch_id)
		 VALUES (?, ?, ?, ?, ?)`,
		ws.ID, ws.Name, string(ws.Type), nullable(ws.ParentWorkspaceID), nullable(ws.BranchID),
	)
	return err
}

// SyncedAt returns when a workspace was last synced, or the zero time when
// it has never been synced.
func (db *DB) SyncedAt(ctx context.Context, workspaceID string) (time.Time, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT synced_at FROM replica_meta WHERE workspace_id = ?", workspaceID)

	var raw string
	err := row.Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

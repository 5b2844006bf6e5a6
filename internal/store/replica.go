package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/source"
)

const taskColumns = `id, workspace_id, COALESCE(project_id, ''), COALESCE(assignee_id, ''),
	created_by, status, created_at, updated_at, COALESCE(due_date, '')`

// WorkspaceTasks returns every task in a workspace.
func (db *DB) WorkspaceTasks(ctx context.Context, workspaceID string) ([]entity.Task, error) {
	return db.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE workspace_id = ? ORDER BY created_at",
		workspaceID)
}

// AssignedTasks returns tasks assigned to a user within a workspace.
func (db *DB) AssignedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	return db.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE workspace_id = ? AND assignee_id = ? ORDER BY created_at",
		workspaceID, userID)
}

// CreatedTasks returns tasks created by a user within a workspace.
func (db *DB) CreatedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	return db.queryTasks(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE workspace_id = ? AND created_by = ? ORDER BY created_at",
		workspaceID, userID)
}

func (db *DB) queryTasks(ctx context.Context, query string, args ...any) ([]entity.Task, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		var t entity.Task
		var status string
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.ProjectID, &t.AssigneeID,
			&t.CreatedBy, &status, &t.CreatedAt, &t.UpdatedAt, &t.DueDate); err != nil {
			return nil, err
		}
		t.Status = entity.TaskStatus(status)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// WorkspaceProjects returns every project in a workspace.
func (db *DB) WorkspaceProjects(ctx context.Context, workspaceID string) ([]entity.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, workspace_id, COALESCE(branch_id, ''), name, status, created_at, COALESCE(due_date, '')
		 FROM projects WHERE workspace_id = ? ORDER BY created_at`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.BranchID, &p.Name, &p.Status, &p.CreatedAt, &p.DueDate); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// AccessibleProjects returns the projects a user may read. The replica does
// not mirror per-user project ACLs, so this is the workspace's project set;
// member-level task restriction still applies upstream in the aggregator.
func (db *DB) AccessibleProjects(ctx context.Context, workspaceID, userID string, role entity.Role) ([]entity.Project, error) {
	return db.WorkspaceProjects(ctx, workspaceID)
}

// WorkspaceUsers returns a workspace's members.
func (db *DB) WorkspaceUsers(ctx context.Context, workspaceID string) ([]entity.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, workspace_id, COALESCE(branch_id, ''), COALESCE(region_id, ''), name, role
		 FROM users WHERE workspace_id = ? ORDER BY name`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		var role string
		if err := rows.Scan(&u.ID, &u.WorkspaceID, &u.BranchID, &u.RegionID, &u.Name, &role); err != nil {
			return nil, err
		}
		u.Role = entity.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

// User returns a single user document.
func (db *DB) User(ctx context.Context, userID string) (*entity.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, workspace_id, COALESCE(branch_id, ''), COALESCE(region_id, ''), name, role
		 FROM users WHERE id = ? LIMIT 1`,
		userID)

	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.WorkspaceID, &u.BranchID, &u.RegionID, &u.Name, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, source.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// WorkspaceBranches returns a workspace's branches.
func (db *DB) WorkspaceBranches(ctx context.Context, workspaceID string) ([]entity.Branch, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, workspace_id, name FROM branches WHERE workspace_id = ? ORDER BY name",
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.WorkspaceID, &b.Name); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Branch returns a single branch document.
func (db *DB) Branch(ctx context.Context, branchID string) (*entity.Branch, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT id, workspace_id, name FROM branches WHERE id = ?", branchID)

	var b entity.Branch
	err := row.Scan(&b.ID, &b.WorkspaceID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, source.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Workspace returns a single workspace document.
func (db *DB) Workspace(ctx context.Context, workspaceID string) (*entity.Workspace, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, workspace_type, COALESCE(parent_workspace_id, ''), COALESCE(branch_id, '')
		 FROM workspaces WHERE id = ?`,
		workspaceID)

	var ws entity.Workspace
	var wsType string
	err := row.Scan(&ws.ID, &ws.Name, &wsType, &ws.ParentWorkspaceID, &ws.BranchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, source.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	ws.Type = entity.WorkspaceType(wsType)
	return &ws, nil
}

// AccessibleWorkspaces returns the workspaces where the user has a member
// row, split by workspace type.
func (db *DB) AccessibleWorkspaces(ctx context.Context, userID string) (entity.AccessibleWorkspaces, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT w.id, w.name, w.workspace_type, COALESCE(w.parent_workspace_id, ''), COALESCE(w.branch_id, '')
		 FROM workspaces w
		 JOIN users u ON u.workspace_id = w.id
		 WHERE u.id = ?
		 ORDER BY w.name`,
		userID)
	if err != nil {
		return entity.AccessibleWorkspaces{}, err
	}
	defer rows.Close()

	var out entity.AccessibleWorkspaces
	for rows.Next() {
		var ws entity.Workspace
		var wsType string
		if err := rows.Scan(&ws.ID, &ws.Name, &wsType, &ws.ParentWorkspaceID, &ws.BranchID); err != nil {
			return entity.AccessibleWorkspaces{}, err
		}
		ws.Type = entity.WorkspaceType(wsType)
		if ws.Type == entity.WorkspaceSub {
			out.Sub = append(out.Sub, ws)
		} else {
			out.Main = append(out.Main, ws)
		}
	}
	return out, rows.Err()
}

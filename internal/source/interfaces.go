// Package source defines the read ports the analytics engine depends on.
// Implementations fetch entity snapshots from the workspace suite's document
// store; the engine itself never writes through these interfaces.
package source

import (
	"context"
	"errors"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// ErrNotFound is returned by single-entity lookups when no document matches.
var ErrNotFound = errors.New("not found")

// TaskSource reads task documents.
type TaskSource interface {
	WorkspaceTasks(ctx context.Context, workspaceID string) ([]entity.Task, error)
	AssignedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error)
	CreatedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error)
}

// ProjectSource reads project documents.
type ProjectSource interface {
	WorkspaceProjects(ctx context.Context, workspaceID string) ([]entity.Project, error)
	AccessibleProjects(ctx context.Context, workspaceID, userID string, role entity.Role) ([]entity.Project, error)
}

// UserSource reads workspace member documents.
type UserSource interface {
	WorkspaceUsers(ctx context.Context, workspaceID string) ([]entity.User, error)
	User(ctx context.Context, userID string) (*entity.User, error)
}

// BranchSource reads branch documents.
type BranchSource interface {
	WorkspaceBranches(ctx context.Context, workspaceID string) ([]entity.Branch, error)
	Branch(ctx context.Context, branchID string) (*entity.Branch, error)
}

// WorkspaceSource reads workspace documents and membership.
type WorkspaceSource interface {
	Workspace(ctx context.Context, workspaceID string) (*entity.Workspace, error)
	AccessibleWorkspaces(ctx context.Context, userID string) (entity.AccessibleWorkspaces, error)
}

// Store bundles all read ports. The aggregator depends on this rather than
// on a concrete backend so tests can substitute fakes.
type Store interface {
	TaskSource
	ProjectSource
	UserSource
	BranchSource
	WorkspaceSource
}

// Package scope resolves which workspaces an analytics computation is
// allowed and configured to read from, and where each workspace's branch
// roster must be sourced.
package scope

import (
	"errors"

	"github.com/brightline-systems/workpulse/internal/entity"
)

// ErrScopeUnavailable indicates the caller or workspace identity is missing;
// no computation may start.
var ErrScopeUnavailable = errors.New("scope unavailable: missing workspace or user identity")

// Scope is the authoritative set of workspace ids for one computation.
type Scope struct {
	// WorkspaceIDs are the workspaces to aggregate over, in resolution order.
	WorkspaceIDs []string

	// Policy captures the caller's access rules for this computation.
	Policy AccessPolicy

	// workspaces indexes the workspace documents the scope was resolved
	// from, for branch-source and bound-branch lookups.
	workspaces map[string]entity.Workspace
}

// Resolve computes the scope for a caller. The federation path (showAll with
// an owner role) expands to every accessible workspace; everyone else sees
// only the current workspace. current may be nil when the workspace document
// could not be loaded; branch sourcing then falls back to the workspace id
// itself.
func Resolve(role entity.Role, callerID, currentWorkspaceID string, showAll bool, current *entity.Workspace, accessible entity.AccessibleWorkspaces) (Scope, error) {
	if callerID == "" || currentWorkspaceID == "" {
		return Scope{}, ErrScopeUnavailable
	}

	s := Scope{
		Policy:     PolicyFor(role, callerID, currentWorkspaceID),
		workspaces: make(map[string]entity.Workspace),
	}
	if current != nil {
		s.workspaces[current.ID] = *current
	}

	if !showAll || role != entity.RoleOwner {
		s.WorkspaceIDs = []string{currentWorkspaceID}
		return s, nil
	}

	all := accessible.All()
	if len(all) == 0 {
		// Federation requested but nothing reported accessible; fall back
		// to the current workspace rather than an empty scope.
		s.WorkspaceIDs = []string{currentWorkspaceID}
		return s, nil
	}

	seen := make(map[string]bool, len(all))
	for _, ws := range all {
		if ws.ID == "" || seen[ws.ID] {
			continue
		}
		seen[ws.ID] = true
		s.workspaces[ws.ID] = ws
		s.WorkspaceIDs = append(s.WorkspaceIDs, ws.ID)
	}
	return s, nil
}

// BranchSource returns the workspace id whose branch roster serves the given
// workspace: the parent for sub-workspaces, the workspace itself otherwise.
// Branches always live at the organizational root and are never duplicated
// per sub-workspace.
func (s Scope) BranchSource(workspaceID string) string {
	ws, ok := s.workspaces[workspaceID]
	if !ok || ws.Type != entity.WorkspaceSub || ws.ParentWorkspaceID == "" {
		return workspaceID
	}
	return ws.ParentWorkspaceID
}

// BoundBranch returns the single branch id a sub-workspace is bound to, or
// "" when the workspace sees its source's full branch roster.
func (s Scope) BoundBranch(workspaceID string) string {
	ws, ok := s.workspaces[workspaceID]
	if !ok || ws.Type != entity.WorkspaceSub {
		return ""
	}
	return ws.BranchID
}

package scope

import "github.com/brightline-systems/workpulse/internal/entity"

// AccessPolicy encodes the role-dependent fetch rules for one computation.
// It is resolved once and consumed by the aggregator, instead of re-checking
// the role at every call site.
type AccessPolicy struct {
	Role               entity.Role
	CallerID           string
	CurrentWorkspaceID string
}

// PolicyFor builds the access policy for a caller.
func PolicyFor(role entity.Role, callerID, currentWorkspaceID string) AccessPolicy {
	return AccessPolicy{
		Role:               role,
		CallerID:           callerID,
		CurrentWorkspaceID: currentWorkspaceID,
	}
}

// MemberScoped reports whether task fetches must be restricted to documents
// assigned to or created by the caller, within the caller's current
// workspace only. Members never see other users' tasks, even when a
// multi-workspace scope was requested.
func (p AccessPolicy) MemberScoped() bool {
	return p.Role == entity.RoleMember
}

// CanFederate reports whether the caller may expand scope across all
// accessible workspaces.
func (p AccessPolicy) CanFederate() bool {
	return p.Role == entity.RoleOwner
}

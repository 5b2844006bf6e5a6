package scope

import (
	"errors"
	"testing"

	"github.com/brightline-systems/workpulse/internal/entity"
)

func TestResolve_MissingIdentity(t *testing.T) {
	_, err := Resolve(entity.RoleOwner, "", "ws1", true, nil, entity.AccessibleWorkspaces{})
	if !errors.Is(err, ErrScopeUnavailable) {
		t.Errorf("missing caller should return ErrScopeUnavailable, got %v", err)
	}

	_, err = Resolve(entity.RoleOwner, "u1", "", true, nil, entity.AccessibleWorkspaces{})
	if !errors.Is(err, ErrScopeUnavailable) {
		t.Errorf("missing workspace should return ErrScopeUnavailable, got %v", err)
	}
}

func TestResolve_SingleWorkspace(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.Role
		showAll bool
	}{
		{"member", entity.RoleMember, false},
		{"member asking for all", entity.RoleMember, true},
		{"admin asking for all", entity.RoleAdmin, true},
		{"owner without show-all", entity.RoleOwner, false},
	}

	accessible := entity.AccessibleWorkspaces{
		Main: []entity.Workspace{{ID: "ws1"}, {ID: "ws2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Resolve(tc.role, "u1", "ws1", tc.showAll, nil, accessible)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if len(s.WorkspaceIDs) != 1 || s.WorkspaceIDs[0] != "ws1" {
				t.Errorf("WorkspaceIDs = %v, want [ws1]", s.WorkspaceIDs)
			}
		})
	}
}

func TestResolve_OwnerFederation(t *testing.T) {
	accessible := entity.AccessibleWorkspaces{
		Main: []entity.Workspace{{ID: "ws1"}, {ID: "ws2"}},
		Sub:  []entity.Workspace{{ID: "ws3"}, {ID: "ws2"}, {ID: ""}}, // duplicate and empty
	}

	s, err := Resolve(entity.RoleOwner, "u1", "ws1", true, nil, accessible)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := []string{"ws1", "ws2", "ws3"}
	if len(s.WorkspaceIDs) != len(want) {
		t.Fatalf("WorkspaceIDs = %v, want %v", s.WorkspaceIDs, want)
	}
	for i := range want {
		if s.WorkspaceIDs[i] != want[i] {
			t.Errorf("WorkspaceIDs[%d] = %s, want %s", i, s.WorkspaceIDs[i], want[i])
		}
	}
}

func TestResolve_FederationFallsBackWhenNothingAccessible(t *testing.T) {
	s, err := Resolve(entity.RoleOwner, "u1", "ws1", true, nil, entity.AccessibleWorkspaces{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(s.WorkspaceIDs) != 1 || s.WorkspaceIDs[0] != "ws1" {
		t.Errorf("WorkspaceIDs = %v, want [ws1]", s.WorkspaceIDs)
	}
}

func TestScope_BranchSource(t *testing.T) {
	sub := entity.Workspace{ID: "ws-sub", Type: entity.WorkspaceSub, ParentWorkspaceID: "ws-main", BranchID: "b1"}
	main := entity.Workspace{ID: "ws-main", Type: entity.WorkspaceMain}

	accessible := entity.AccessibleWorkspaces{
		Main: []entity.Workspace{main},
		Sub:  []entity.Workspace{sub},
	}
	s, err := Resolve(entity.RoleOwner, "u1", "ws-main", true, &main, accessible)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := s.BranchSource("ws-sub"); got != "ws-main" {
		t.Errorf("BranchSource(ws-sub) = %s, want ws-main", got)
	}
	if got := s.BranchSource("ws-main"); got != "ws-main" {
		t.Errorf("BranchSource(ws-main) = %s, want ws-main", got)
	}
	// Unknown workspaces fall back to themselves.
	if got := s.BranchSource("ws-unknown"); got != "ws-unknown" {
		t.Errorf("BranchSource(ws-unknown) = %s, want ws-unknown", got)
	}
}

func TestScope_BoundBranch(t *testing.T) {
	sub := entity.Workspace{ID: "ws-sub", Type: entity.WorkspaceSub, ParentWorkspaceID: "ws-main", BranchID: "b1"}
	unbound := entity.Workspace{ID: "ws-free", Type: entity.WorkspaceSub, ParentWorkspaceID: "ws-main"}
	main := entity.Workspace{ID: "ws-main", Type: entity.WorkspaceMain, BranchID: "ignored"}

	accessible := entity.AccessibleWorkspaces{
		Main: []entity.Workspace{main},
		Sub:  []entity.Workspace{sub, unbound},
	}
	s, err := Resolve(entity.RoleOwner, "u1", "ws-main", true, &main, accessible)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := s.BoundBranch("ws-sub"); got != "b1" {
		t.Errorf("BoundBranch(ws-sub) = %q, want b1", got)
	}
	if got := s.BoundBranch("ws-free"); got != "" {
		t.Errorf("BoundBranch(ws-free) = %q, want empty", got)
	}
	// A main workspace's BranchID is never a binding.
	if got := s.BoundBranch("ws-main"); got != "" {
		t.Errorf("BoundBranch(ws-main) = %q, want empty", got)
	}
}

func TestAccessPolicy(t *testing.T) {
	member := PolicyFor(entity.RoleMember, "u1", "ws1")
	if !member.MemberScoped() {
		t.Error("member policy should be member-scoped")
	}
	if member.CanFederate() {
		t.Error("member policy should not federate")
	}

	owner := PolicyFor(entity.RoleOwner, "u1", "ws1")
	if owner.MemberScoped() {
		t.Error("owner policy should not be member-scoped")
	}
	if !owner.CanFederate() {
		t.Error("owner policy should federate")
	}
}

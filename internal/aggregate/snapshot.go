package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/scope"
)

// Snapshot is a merged, deduplicated view of every entity kind for one
// computation. Failures lists workspaces whose fetches failed; the remaining
// fields still carry the partial results from the workspaces that answered.
type Snapshot struct {
	Tasks    []entity.Task
	Projects []entity.Project
	Users    []entity.User
	Branches []entity.Branch
	Failures []WorkspaceError
}

// Partial reports whether any workspace fetch failed.
func (s *Snapshot) Partial() bool {
	return len(s.Failures) > 0
}

// FailedWorkspaces returns the distinct workspace ids that had failures.
func (s *Snapshot) FailedWorkspaces() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, f := range s.Failures {
		if seen[f.WorkspaceID] {
			continue
		}
		seen[f.WorkspaceID] = true
		ids = append(ids, f.WorkspaceID)
	}
	return ids
}

// Snapshot fetches all four entity kinds concurrently and joins before
// returning. The user roster additionally covers each workspace's branch
// source so branch attribution can match users hosted at the organizational
// root.
func (a *Aggregator) Snapshot(ctx context.Context, sc scope.Scope) *Snapshot {
	snap := &Snapshot{}

	var branchSources []string
	for _, wsID := range sc.WorkspaceIDs {
		branchSources = appendUniqueIDs(branchSources, []string{sc.BranchSource(wsID)})
	}

	var taskFails, projectFails, userFails, branchFails []WorkspaceError

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Tasks, taskFails = a.Tasks(gctx, sc)
		return nil
	})
	g.Go(func() error {
		snap.Projects, projectFails = a.Projects(gctx, sc)
		return nil
	})
	g.Go(func() error {
		snap.Users, userFails = a.Users(gctx, sc, branchSources...)
		return nil
	})
	g.Go(func() error {
		snap.Branches, branchFails = a.Branches(gctx, sc)
		return nil
	})
	_ = g.Wait()

	snap.Failures = append(snap.Failures, taskFails...)
	snap.Failures = append(snap.Failures, projectFails...)
	snap.Failures = append(snap.Failures, userFails...)
	snap.Failures = append(snap.Failures, branchFails...)

	return snap
}

// Package aggregate fans entity fetches out across a resolved workspace
// scope, merges results with identity-based deduplication, and collects
// per-workspace failures so partial progress survives individual backend
// errors.
package aggregate

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/scope"
	"github.com/brightline-systems/workpulse/internal/source"
)

// Aggregator merges entity snapshots across a workspace scope. It performs
// pure reads; it never mutates upstream entities.
type Aggregator struct {
	src source.Store
	log *zap.Logger
}

// New creates an Aggregator over the given read ports.
func New(src source.Store, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{src: src, log: log}
}

// Tasks aggregates tasks over the scope. Members get the union of tasks
// assigned to and created by the caller, restricted to the caller's current
// workspace regardless of how wide the scope is. Admins and owners get every
// workspace's full task collection.
func (a *Aggregator) Tasks(ctx context.Context, sc scope.Scope) ([]entity.Task, []WorkspaceError) {
	if sc.Policy.MemberScoped() {
		return a.memberTasks(ctx, sc.Policy)
	}

	tasks, failures := fanOut(ctx, sc.WorkspaceIDs, "tasks", taskID, a.src.WorkspaceTasks)
	a.logFailures(failures)
	return tasks, failures
}

// memberTasks fetches the two member-visible task views concurrently and
// unions them.
func (a *Aggregator) memberTasks(ctx context.Context, p scope.AccessPolicy) ([]entity.Task, []WorkspaceError) {
	var assigned, created []entity.Task
	var failures []WorkspaceError

	g, gctx := errgroup.WithContext(ctx)
	var assignedErr, createdErr error
	g.Go(func() error {
		assigned, assignedErr = a.src.AssignedTasks(gctx, p.CallerID, p.CurrentWorkspaceID)
		return nil
	})
	g.Go(func() error {
		created, createdErr = a.src.CreatedTasks(gctx, p.CallerID, p.CurrentWorkspaceID)
		return nil
	})
	_ = g.Wait()

	if assignedErr != nil {
		failures = append(failures, WorkspaceError{WorkspaceID: p.CurrentWorkspaceID, Kind: "assigned-tasks", Err: assignedErr})
	}
	if createdErr != nil {
		failures = append(failures, WorkspaceError{WorkspaceID: p.CurrentWorkspaceID, Kind: "created-tasks", Err: createdErr})
	}
	a.logFailures(failures)

	return mergeByKey(taskID, assigned, created), failures
}

// Projects aggregates projects over the scope. Members see only projects
// the membership service reports as accessible to them.
func (a *Aggregator) Projects(ctx context.Context, sc scope.Scope) ([]entity.Project, []WorkspaceError) {
	fetch := a.src.WorkspaceProjects
	if sc.Policy.MemberScoped() {
		fetch = func(ctx context.Context, workspaceID string) ([]entity.Project, error) {
			return a.src.AccessibleProjects(ctx, workspaceID, sc.Policy.CallerID, sc.Policy.Role)
		}
	}

	projects, failures := fanOut(ctx, sc.WorkspaceIDs, "projects", projectID, fetch)
	a.logFailures(failures)
	return projects, failures
}

// Users aggregates workspace members over the scope plus any extra
// workspace ids (used to pull branch rosters from a branch's own source
// workspace when it sits outside the scope).
func (a *Aggregator) Users(ctx context.Context, sc scope.Scope, extraWorkspaceIDs ...string) ([]entity.User, []WorkspaceError) {
	ids := appendUniqueIDs(sc.WorkspaceIDs, extraWorkspaceIDs)
	users, failures := fanOut(ctx, ids, "users", userID, a.src.WorkspaceUsers)
	a.logFailures(failures)
	return users, failures
}

// Branches aggregates branches over the scope. Each workspace's branches are
// read from its branch source (the parent workspace for sub-workspaces), and
// a sub-workspace bound to a single branch contributes only that branch.
func (a *Aggregator) Branches(ctx context.Context, sc scope.Scope) ([]entity.Branch, []WorkspaceError) {
	// Fetch each distinct branch source once, even when several
	// sub-workspaces share a parent.
	var sourceIDs []string
	sourceOf := make(map[string]string, len(sc.WorkspaceIDs))
	for _, wsID := range sc.WorkspaceIDs {
		src := sc.BranchSource(wsID)
		sourceOf[wsID] = src
		sourceIDs = appendUniqueIDs(sourceIDs, []string{src})
	}

	fetched, failures := a.fetchBranchSources(ctx, sourceIDs)

	var merged []entity.Branch
	seen := make(map[string]bool)
	for _, wsID := range sc.WorkspaceIDs {
		branches := fetched[sourceOf[wsID]]
		bound := sc.BoundBranch(wsID)
		for _, b := range branches {
			if bound != "" && b.ID != bound {
				continue
			}
			if b.ID == "" || seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			merged = append(merged, b)
		}
	}

	a.logFailures(failures)
	return merged, failures
}

// fetchBranchSources fetches branch rosters for each source workspace
// concurrently, keyed by source id.
func (a *Aggregator) fetchBranchSources(ctx context.Context, sourceIDs []string) (map[string][]entity.Branch, []WorkspaceError) {
	results := make([]fetchResult[entity.Branch], len(sourceIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range sourceIDs {
		g.Go(func() error {
			branches, err := a.src.WorkspaceBranches(gctx, id)
			results[i] = fetchResult[entity.Branch]{items: branches, err: err}
			return nil
		})
	}
	_ = g.Wait()

	fetched := make(map[string][]entity.Branch, len(sourceIDs))
	var failures []WorkspaceError
	for i, r := range results {
		if r.err != nil {
			failures = append(failures, WorkspaceError{WorkspaceID: sourceIDs[i], Kind: "branches", Err: r.err})
			continue
		}
		fetched[sourceIDs[i]] = r.items
	}
	return fetched, failures
}

// logFailures records fetch failures for observability; callers still
// receive them as data.
func (a *Aggregator) logFailures(failures []WorkspaceError) {
	for _, f := range failures {
		a.log.Warn("entity fetch failed",
			zap.String("workspace", f.WorkspaceID),
			zap.String("kind", f.Kind),
			zap.Error(f.Err),
		)
	}
}

func taskID(t entity.Task) string       { return t.ID }
func projectID(p entity.Project) string { return p.ID }
func userID(u entity.User) string       { return u.ID }

// appendUniqueIDs returns base plus any ids from extra not already present.
// The result is a fresh slice; base is never mutated.
func appendUniqueIDs(base []string, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, id := range base {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	for _, id := range extra {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

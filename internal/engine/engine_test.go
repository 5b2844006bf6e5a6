package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/scope"
	"github.com/brightline-systems/workpulse/internal/source"
)

// stubStore serves a single workspace's fixed data set.
type stubStore struct {
	workspace  *entity.Workspace
	accessible entity.AccessibleWorkspaces
	tasks      []entity.Task
	projects   []entity.Project
	users      []entity.User
	branches   []entity.Branch
}

func (s *stubStore) WorkspaceTasks(ctx context.Context, workspaceID string) ([]entity.Task, error) {
	return s.tasks, nil
}

func (s *stubStore) AssignedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	var out []entity.Task
	for _, t := range s.tasks {
		if t.AssigneeID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubStore) CreatedTasks(ctx context.Context, userID, workspaceID string) ([]entity.Task, error) {
	var out []entity.Task
	for _, t := range s.tasks {
		if t.CreatedBy == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubStore) WorkspaceProjects(ctx context.Context, workspaceID string) ([]entity.Project, error) {
	return s.projects, nil
}

func (s *stubStore) AccessibleProjects(ctx context.Context, workspaceID, userID string, role entity.Role) ([]entity.Project, error) {
	return s.projects, nil
}

func (s *stubStore) WorkspaceUsers(ctx context.Context, workspaceID string) ([]entity.User, error) {
	return s.users, nil
}

func (s *stubStore) User(ctx context.Context, userID string) (*entity.User, error) {
	return nil, source.ErrNotFound
}

func (s *stubStore) WorkspaceBranches(ctx context.Context, workspaceID string) ([]entity.Branch, error) {
	return s.branches, nil
}

func (s *stubStore) Branch(ctx context.Context, branchID string) (*entity.Branch, error) {
	return nil, source.ErrNotFound
}

func (s *stubStore) Workspace(ctx context.Context, workspaceID string) (*entity.Workspace, error) {
	if s.workspace == nil {
		return nil, source.ErrNotFound
	}
	return s.workspace, nil
}

func (s *stubStore) AccessibleWorkspaces(ctx context.Context, userID string) (entity.AccessibleWorkspaces, error) {
	return s.accessible, nil
}

func testInputs() Inputs {
	return Inputs{
		WorkspaceID: "ws1",
		UserID:      "u1",
		Role:        entity.RoleAdmin,
		DateRange: entity.DateRange{
			From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestEngine_Dashboard(t *testing.T) {
	store := &stubStore{
		workspace: &entity.Workspace{ID: "ws1", Type: entity.WorkspaceMain},
		tasks: []entity.Task{
			{ID: "t1", AssigneeID: "u1", CreatedBy: "u1", Status: entity.StatusCompleted, CreatedAt: "2026-01-02T00:00:00Z", UpdatedAt: "2026-01-03T00:00:00Z"},
			{ID: "t2", AssigneeID: "u2", CreatedBy: "u1", Status: entity.StatusTodo, CreatedAt: "2026-01-04T00:00:00Z", UpdatedAt: "2026-01-04T00:00:00Z"},
		},
		projects: []entity.Project{{ID: "p1", Status: "active"}},
		users:    []entity.User{{ID: "u1", BranchID: "b1"}, {ID: "u2", BranchID: "b1"}},
		branches: []entity.Branch{{ID: "b1", Name: "North"}},
	}

	e := New(store, nil)
	e.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }

	view, err := e.Dashboard(context.Background(), e.NextRequest(testInputs()))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if view.Generation != 1 {
		t.Errorf("Generation = %d, want 1", view.Generation)
	}
	if view.Partial {
		t.Error("view should not be partial")
	}
	if view.Stats.TaskCompletion != 50 {
		t.Errorf("TaskCompletion = %d, want 50", view.Stats.TaskCompletion)
	}
	if len(view.Branches) != 1 || view.Branches[0].Branch != "North" {
		t.Errorf("Branches = %v, want the North row", view.Branches)
	}
	if view.Branches[0].Tasks != 2 {
		t.Errorf("North tasks = %d, want 2", view.Branches[0].Tasks)
	}
	if len(view.Trend) != 2 {
		t.Errorf("Trend has %d points, want 2 for a 14-day range", len(view.Trend))
	}
}

func TestEngine_DashboardMissingIdentity(t *testing.T) {
	e := New(&stubStore{}, nil)

	in := testInputs()
	in.UserID = ""
	_, err := e.Dashboard(context.Background(), e.NextRequest(in))
	if !errors.Is(err, scope.ErrScopeUnavailable) {
		t.Errorf("err = %v, want ErrScopeUnavailable", err)
	}
}

func TestEngine_DashboardToleratesMissingWorkspaceDoc(t *testing.T) {
	// The workspace document is gone, but aggregation can still proceed
	// against the workspace id.
	store := &stubStore{
		tasks: []entity.Task{{ID: "t1", CreatedBy: "u1", Status: entity.StatusTodo, CreatedAt: "2026-01-02T00:00:00Z", UpdatedAt: "2026-01-02T00:00:00Z"}},
	}
	e := New(store, nil)

	view, err := e.Dashboard(context.Background(), e.NextRequest(testInputs()))
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if view.Stats.ActiveUsers != 1 {
		t.Errorf("ActiveUsers = %d, want 1", view.Stats.ActiveUsers)
	}
}

func TestEngine_Member(t *testing.T) {
	store := &stubStore{
		workspace: &entity.Workspace{ID: "ws1", Type: entity.WorkspaceMain},
		tasks: []entity.Task{
			{ID: "t1", AssigneeID: "u2", CreatedBy: "u2", Status: entity.StatusCompleted, CreatedAt: "2026-01-02T00:00:00Z", UpdatedAt: "2026-01-03T00:00:00Z"},
			{ID: "t2", AssigneeID: "u1", CreatedBy: "u1", Status: entity.StatusTodo, CreatedAt: "2026-01-02T00:00:00Z", UpdatedAt: "2026-01-02T00:00:00Z"},
		},
	}
	e := New(store, nil)

	view, err := e.Member(context.Background(), e.NextRequest(testInputs()), "u2")
	if err != nil {
		t.Fatalf("Member: %v", err)
	}

	if view.MemberID != "u2" {
		t.Errorf("MemberID = %s, want u2", view.MemberID)
	}
	if view.Stats.TotalTasks != 1 || view.Stats.CompletedTasks != 1 {
		t.Errorf("stats = %+v, want u2's single completed task only", view.Stats)
	}
}

func TestEngine_MemberRequiresID(t *testing.T) {
	e := New(&stubStore{}, nil)
	_, err := e.Member(context.Background(), e.NextRequest(testInputs()), "")
	if !errors.Is(err, scope.ErrScopeUnavailable) {
		t.Errorf("err = %v, want ErrScopeUnavailable", err)
	}
}

func TestEngine_GenerationsIncrease(t *testing.T) {
	e := New(&stubStore{}, nil)

	r1 := e.NextRequest(testInputs())
	r2 := e.NextRequest(testInputs())

	if r2.Generation <= r1.Generation {
		t.Errorf("generations must increase: %d then %d", r1.Generation, r2.Generation)
	}
	if e.LatestGeneration() != r2.Generation {
		t.Errorf("LatestGeneration = %d, want %d", e.LatestGeneration(), r2.Generation)
	}
}

func TestPublisher_DropsStaleGenerations(t *testing.T) {
	e := New(&stubStore{}, nil)
	p := NewPublisher(e)

	r1 := e.NextRequest(testInputs())
	r2 := e.NextRequest(testInputs())

	var emitted []uint64
	emit := func(gen uint64) func() {
		return func() { emitted = append(emitted, gen) }
	}

	// The newer generation lands first; the older one must be discarded.
	if !p.Publish(r2.Generation, emit(r2.Generation)) {
		t.Error("fresh generation should publish")
	}
	if p.Publish(r1.Generation, emit(r1.Generation)) {
		t.Error("stale generation should be dropped")
	}

	if len(emitted) != 1 || emitted[0] != r2.Generation {
		t.Errorf("emitted = %v, want only generation %d", emitted, r2.Generation)
	}
}

func TestPublisher_DropsWhenNewerIssued(t *testing.T) {
	e := New(&stubStore{}, nil)
	p := NewPublisher(e)

	r1 := e.NextRequest(testInputs())
	e.NextRequest(testInputs()) // a newer request exists but has not published

	if p.Publish(r1.Generation, func() {}) {
		t.Error("generation older than the latest issued should be dropped")
	}
}

// Package engine orchestrates one analytics computation: resolve the
// caller's scope, aggregate entity snapshots concurrently, then run the pure
// metric pipeline. Requests are stamped with a monotonically increasing
// generation so stale in-flight computations can never overwrite fresher
// ones.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/brightline-systems/workpulse/internal/aggregate"
	"github.com/brightline-systems/workpulse/internal/analyzer"
	"github.com/brightline-systems/workpulse/internal/entity"
	"github.com/brightline-systems/workpulse/internal/scope"
	"github.com/brightline-systems/workpulse/internal/source"
)

// Inputs are the caller-provided parameters of a computation.
type Inputs struct {
	WorkspaceID       string           `json:"workspaceId"`
	UserID            string           `json:"userId"`
	Role              entity.Role      `json:"role"`
	DateRange         entity.DateRange `json:"dateRange"`
	ShowAllWorkspaces bool             `json:"showAllWorkspaces,omitempty"`
}

// Request is a generation-stamped computation request.
type Request struct {
	Generation uint64
	Inputs
}

// DashboardView is the combined view model for the dashboard surfaces.
type DashboardView struct {
	Generation       uint64                           `json:"-"`
	ComputedAt       time.Time                        `json:"computed_at"`
	Stats            analyzer.StatsData               `json:"stats"`
	Branches         []analyzer.BranchMetricsData     `json:"branches"`
	Trend            []analyzer.ProductivityTrendData `json:"trend"`
	Partial          bool                             `json:"partial"`
	FailedWorkspaces []string                         `json:"failed_workspaces,omitempty"`
}

// MemberView is the per-member analytics view model.
type MemberView struct {
	Generation       uint64                   `json:"-"`
	ComputedAt       time.Time                `json:"computed_at"`
	MemberID         string                   `json:"member_id"`
	Stats            analyzer.MemberStatsData `json:"stats"`
	Partial          bool                     `json:"partial"`
	FailedWorkspaces []string                 `json:"failed_workspaces,omitempty"`
}

// Engine runs analytics computations against a set of read ports.
type Engine struct {
	src source.Store
	agg *aggregate.Aggregator
	log *zap.Logger
	gen atomic.Uint64

	// now is swappable for tests.
	now func() time.Time
}

// New creates an Engine over the given read ports.
func New(src source.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		src: src,
		agg: aggregate.New(src, log),
		log: log,
		now: time.Now,
	}
}

// NextRequest stamps inputs with the next generation. The engine remembers
// the latest issued generation; results from older requests are discarded at
// publish time.
func (e *Engine) NextRequest(in Inputs) Request {
	return Request{Generation: e.gen.Add(1), Inputs: in}
}

// LatestGeneration returns the most recently issued generation.
func (e *Engine) LatestGeneration() uint64 {
	return e.gen.Load()
}

// resolveScope loads the workspace context needed by the scope resolver and
// resolves the request's scope. A missing current-workspace document is
// tolerated; a missing identity is not.
func (e *Engine) resolveScope(ctx context.Context, in Inputs) (scope.Scope, error) {
	if in.UserID == "" || in.WorkspaceID == "" {
		return scope.Scope{}, scope.ErrScopeUnavailable
	}

	current, err := e.src.Workspace(ctx, in.WorkspaceID)
	if err != nil && !errors.Is(err, source.ErrNotFound) {
		return scope.Scope{}, fmt.Errorf("loading workspace %s: %w", in.WorkspaceID, err)
	}

	var accessible entity.AccessibleWorkspaces
	if in.ShowAllWorkspaces && in.Role == entity.RoleOwner {
		accessible, err = e.src.AccessibleWorkspaces(ctx, in.UserID)
		if err != nil {
			return scope.Scope{}, fmt.Errorf("loading accessible workspaces: %w", err)
		}
	}

	return scope.Resolve(in.Role, in.UserID, in.WorkspaceID, in.ShowAllWorkspaces, current, accessible)
}

// Dashboard computes the stats cards, branch-performance rows, and
// productivity trend for one request.
func (e *Engine) Dashboard(ctx context.Context, req Request) (*DashboardView, error) {
	sc, err := e.resolveScope(ctx, req.Inputs)
	if err != nil {
		return nil, err
	}

	snap := e.agg.Snapshot(ctx, sc)
	now := e.now()

	view := &DashboardView{
		Generation:       req.Generation,
		ComputedAt:       now,
		Stats:            analyzer.BuildStats(snap.Tasks, snap.Projects, req.DateRange, now),
		Branches:         analyzer.BuildBranchMetrics(snap.Branches, snap.Tasks, snap.Projects, snap.Users),
		Trend:            analyzer.BuildProductivityTrend(snap.Tasks, req.UserID, req.DateRange),
		Partial:          snap.Partial(),
		FailedWorkspaces: snap.FailedWorkspaces(),
	}

	e.log.Debug("dashboard computed",
		zap.Uint64("generation", req.Generation),
		zap.Int("workspaces", len(sc.WorkspaceIDs)),
		zap.Int("tasks", len(snap.Tasks)),
		zap.Bool("partial", view.Partial),
	)

	return view, nil
}

// Member computes the per-member analytics view. The member's task set is
// the union of tasks assigned to and created by them within the resolved
// scope.
func (e *Engine) Member(ctx context.Context, req Request, memberID string) (*MemberView, error) {
	if memberID == "" {
		return nil, scope.ErrScopeUnavailable
	}

	sc, err := e.resolveScope(ctx, req.Inputs)
	if err != nil {
		return nil, err
	}

	snap := e.agg.Snapshot(ctx, sc)
	now := e.now()

	return &MemberView{
		Generation:       req.Generation,
		ComputedAt:       now,
		MemberID:         memberID,
		Stats:            analyzer.BuildMemberStats(snap.Tasks, snap.Projects, memberID, now),
		Partial:          snap.Partial(),
		FailedWorkspaces: snap.FailedWorkspaces(),
	}, nil
}

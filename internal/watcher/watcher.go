// Package watcher provides background monitoring of workspace analytics,
// detecting metric regressions between polling cycles and emitting alerts.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/brightline-systems/workpulse/internal/engine"
	"github.com/brightline-systems/workpulse/internal/entity"
)

// WatchState captures a point-in-time analytics snapshot for one scope.
type WatchState struct {
	Generation       uint64
	Timestamp        time.Time
	AvgProductivity  int
	TaskCompletion   int
	ActiveUsers      int
	ProjectsActive   int
	Partial          bool
	FailedWorkspaces []string
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Watcher polls the analytics engine at a regular interval for a fixed set
// of inputs and emits alerts when metrics regress.
type Watcher struct {
	engine   *engine.Engine
	pub      *engine.Publisher
	inputs   engine.Inputs
	interval time.Duration
	previous *WatchState
	alertFn  func(Alert)     // callback for emitting alerts
	lastKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher computing the given inputs on each cycle.
func New(e *engine.Engine, inputs engine.Inputs, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		engine:   e,
		pub:      engine.NewPublisher(e),
		inputs:   inputs,
		interval: interval,
		alertFn:  alertFn,
		lastKeys: make(map[string]bool),
	}
}

// Run starts the watch loop. It takes an initial snapshot, then checks at
// every interval. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	initial, err := w.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("initial snapshot: %w", err)
	}
	w.commit(initial)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check(ctx)
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot and commits it.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.Snapshot(ctx)
	if err != nil {
		return []Alert{{
			Level:   "warning",
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not compute analytics: %v", err),
			Time:    time.Now(),
		}}
	}
	return w.commit(curr)
}

// commit compares a snapshot against the previous state and adopts it as the
// new baseline. Snapshots from generations older than the latest issued are
// discarded without touching the baseline, so a slow cycle can never
// overwrite a fresher one.
func (w *Watcher) commit(curr *WatchState) []Alert {
	var alerts []Alert
	w.pub.Publish(curr.Generation, func() {
		var raw []Alert
		if w.previous != nil {
			raw = Compare(w.previous, curr)
		}

		currentKeys := make(map[string]bool, len(raw))
		for _, a := range raw {
			key := a.Level + ":" + a.Title + ":" + a.Message
			currentKeys[key] = true
			if !w.lastKeys[key] {
				alerts = append(alerts, a)
			}
		}
		w.lastKeys = currentKeys
		w.previous = curr
	})
	return alerts
}

// Snapshot computes the current watch state by running one dashboard
// computation. The watcher shifts the date range forward so each cycle
// covers the window ending now.
func (w *Watcher) Snapshot(ctx context.Context) (*WatchState, error) {
	in := w.inputs
	days := int(in.DateRange.Duration().Hours() / 24)
	if days <= 0 {
		days = 7
	}
	in.DateRange = entity.LastNDays(time.Now(), days)

	view, err := w.engine.Dashboard(ctx, w.engine.NextRequest(in))
	if err != nil {
		return nil, err
	}

	return &WatchState{
		Generation:       view.Generation,
		Timestamp:        time.Now(),
		AvgProductivity:  view.Stats.AvgProductivity,
		TaskCompletion:   view.Stats.TaskCompletion,
		ActiveUsers:      view.Stats.ActiveUsers,
		ProjectsActive:   view.Stats.ProjectsActive,
		Partial:          view.Partial,
		FailedWorkspaces: view.FailedWorkspaces,
	}, nil
}

package aggregate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// WorkspaceError records a failed fetch for a single workspace. Failures are
// collected alongside partial results rather than aborting the aggregation.
type WorkspaceError struct {
	WorkspaceID string `json:"workspaceId"`
	Kind        string `json:"kind"`
	Err         error  `json:"-"`
}

// Error implements the error interface.
func (e WorkspaceError) Error() string {
	return fmt.Sprintf("fetching %s for workspace %s: %v", e.Kind, e.WorkspaceID, e.Err)
}

// Unwrap returns the underlying fetch error.
func (e WorkspaceError) Unwrap() error {
	return e.Err
}

// fetchResult holds one workspace's fetch outcome.
type fetchResult[T any] struct {
	items []T
	err   error
}

// fanOut fetches one entity kind for every workspace id concurrently, then
// folds results in workspace order, dropping any item whose key was already
// seen (first-seen wins, later duplicates discarded). A failed workspace
// contributes a WorkspaceError instead of aborting the fold.
func fanOut[T any](ctx context.Context, workspaceIDs []string, kind string, key func(T) string, fetch func(ctx context.Context, workspaceID string) ([]T, error)) ([]T, []WorkspaceError) {
	results := make([]fetchResult[T], len(workspaceIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range workspaceIDs {
		g.Go(func() error {
			items, err := fetch(gctx, id)
			results[i] = fetchResult[T]{items: items, err: err}
			return nil
		})
	}
	// Goroutines never return errors; failures live in their result slot.
	_ = g.Wait()

	var merged []T
	var failures []WorkspaceError
	seen := make(map[string]bool)

	for i, r := range results {
		if r.err != nil {
			failures = append(failures, WorkspaceError{
				WorkspaceID: workspaceIDs[i],
				Kind:        kind,
				Err:         r.err,
			})
			continue
		}
		for _, item := range r.items {
			k := key(item)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, item)
		}
	}

	return merged, failures
}

// mergeByKey folds pre-fetched slices in order with first-seen dedup.
func mergeByKey[T any](key func(T) string, slices ...[]T) []T {
	var merged []T
	seen := make(map[string]bool)
	for _, s := range slices {
		for _, item := range s {
			k := key(item)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, item)
		}
	}
	return merged
}

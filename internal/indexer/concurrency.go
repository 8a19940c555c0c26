package indexer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// batchSize returns the number of items to index concurrently: one per
// hardware thread, per spec.md §5's "batches sized to available
// parallelism" resource rule.
func batchSize() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// runBatched runs fn over items with at most batchSize() concurrent calls,
// isolating per-item failures: an error from one item is logged by the
// caller inside fn and never aborts the others, matching the per-item
// failure isolation the workspace indexer requires (spec.md §4.6).
func runBatched[T any](ctx context.Context, items []T, fn func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, batchSize())

	for _, item := range items {
		item := item
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return gctx.Err()
		}
		g.Go(func() error {
			defer func() { <-sem }()
			return fn(gctx, item)
		})
	}
	return g.Wait()
}

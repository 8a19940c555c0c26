package indexer

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunBatchedRunsEveryItemExactlyOnce(t *testing.T) {
	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	var seen int64
	err := runBatched(context.Background(), items, func(_ context.Context, _ int) error {
		atomic.AddInt64(&seen, 1)
		return nil
	})
	require.NoError(t, err)
	require.EqualValues(t, len(items), seen)
}

func TestRunBatchedStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []int{1, 2, 3}
	err := runBatched(ctx, items, func(c context.Context, _ int) error {
		return c.Err()
	})
	require.Error(t, err)
}

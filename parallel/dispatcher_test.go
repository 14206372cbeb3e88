package parallel_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/databrickslabs/sandbox/tally/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTasksKeepsOrder(t *testing.T) {
	tasks := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out, err := parallel.Tasks(context.Background(), 3, tasks, func(_ context.Context, n int) (string, error) {
		return fmt.Sprint(n * n), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4", "9", "16", "25", "36", "49", "64", "81", "100"}, out)
}

func TestTasksStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	tasks := make([]int, 100)
	_, err := parallel.Tasks(context.Background(), 2, tasks, func(ctx context.Context, _ int) (int, error) {
		calls.Add(1)
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Less(t, int(calls.Load()), 100)
}

func TestTasksCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := parallel.Tasks(ctx, 2, []int{1, 2}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTasksEmpty(t *testing.T) {
	out, err := parallel.Tasks(context.Background(), 0, []int{}, func(_ context.Context, n int) (int, error) {
		return n, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFold(t *testing.T) {
	sum, err := parallel.Fold(context.Background(), 4, []int{1, 2, 3, 4},
		func(_ context.Context, n int) (int, error) {
			return n * 10, nil
		}, 0, func(acc, r int) (int, error) {
			return acc + r, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 100, sum)
}

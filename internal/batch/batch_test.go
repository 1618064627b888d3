package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"devscout/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(size int) (*Runner, *[]time.Duration) {
	r := NewRunner(size, 300*time.Millisecond, logger.NewNopLogger())
	var pauses []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}
	return r, &pauses
}

func TestRunKeepsJobOrder(t *testing.T) {
	r, _ := newTestRunner(5)
	jobs := []int{1, 2, 3, 4, 5, 6, 7}

	results := Run(context.Background(), r, jobs, func(_ context.Context, n int) (int, error) {
		// later jobs finish first
		time.Sleep(time.Duration(10-n) * time.Millisecond)
		return n * n, nil
	})

	require.Len(t, results, len(jobs))
	for i, res := range results {
		assert.Equal(t, jobs[i], res.Job)
		assert.Equal(t, jobs[i]*jobs[i], res.Value)
		assert.NoError(t, res.Err)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	r, pauses := newTestRunner(5)

	var inFlight, peak int32
	var mu sync.Mutex
	jobs := make([]int, 12)

	Run(context.Background(), r, jobs, func(_ context.Context, _ int) (struct{}, error) {
		now := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if now > peak {
			peak = now
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak, int32(5))
	// 12 jobs make 3 batches with 2 pauses between them
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 300 * time.Millisecond}, *pauses)
}

func TestRunErrorsDoNotStopSiblings(t *testing.T) {
	r, _ := newTestRunner(3)
	boom := errors.New("boom")

	results := Run(context.Background(), r, []string{"ok", "bad", "ok2"}, func(_ context.Context, s string) (string, error) {
		if s == "bad" {
			return "", boom
		}
		return s + "!", nil
	})

	assert.Equal(t, "ok!", results[0].Value)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, "ok2!", results[2].Value)
}

func TestRunStopsBetweenBatchesOnCancel(t *testing.T) {
	r, _ := newTestRunner(2)
	ctx, cancel := context.WithCancel(context.Background())

	var calls int32
	results := Run(ctx, r, []int{1, 2, 3, 4}, func(_ context.Context, n int) (int, error) {
		atomic.AddInt32(&calls, 1)
		if n == 2 {
			cancel()
		}
		return n, nil
	})

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.ErrorIs(t, results[2].Err, context.Canceled)
	assert.ErrorIs(t, results[3].Err, context.Canceled)
}

func TestNewRunnerMinimumSize(t *testing.T) {
	r := NewRunner(0, 0, nil)
	assert.Equal(t, 1, r.Size())
}

func TestRunEmpty(t *testing.T) {
	r, pauses := newTestRunner(5)
	results := Run(context.Background(), r, []int(nil), func(context.Context, int) (int, error) { return 0, nil })
	assert.Empty(t, results)
	assert.Empty(t, *pauses)
}

package batch

import (
	"context"
	"time"

	"devscout/pkg/logger"
	"devscout/pkg/retry"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one job
type Result[J, R any] struct {
	Job      J
	Value    R
	Err      error
	Duration time.Duration
}

// Runner runs jobs in fixed-size batches. Every job of a batch runs
// concurrently and the whole batch is joined before the next one starts,
// with a pause in between.
type Runner struct {
	size   int
	pause  time.Duration
	logger logger.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRunner creates a runner. A size below 1 runs one job at a time.
func NewRunner(size int, pause time.Duration, log logger.Logger) *Runner {
	if size < 1 {
		size = 1
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Runner{size: size, pause: pause, logger: log, sleep: retry.Wait}
}

// Size returns the batch size
func (r *Runner) Size() int { return r.size }

// Run executes fn for every job and returns the results in job order. A job
// error never stops its siblings. If ctx is done between batches, the jobs
// not yet started are reported with ctx's error.
func Run[J, R any](ctx context.Context, r *Runner, jobs []J, fn func(ctx context.Context, job J) (R, error)) []Result[J, R] {
	results := make([]Result[J, R], len(jobs))
	for i, job := range jobs {
		results[i].Job = job
	}

	for start := 0; start < len(jobs); start += r.size {
		end := min(start+r.size, len(jobs))

		if err := ctx.Err(); err != nil {
			for i := start; i < len(jobs); i++ {
				results[i].Err = err
			}
			r.logger.WarnWithFields("Batch run cancelled", map[string]interface{}{
				"completed": start,
				"total":     len(jobs),
			})
			return results
		}

		r.logger.DebugWithFields("Starting batch", map[string]interface{}{
			"from":  start,
			"to":    end,
			"total": len(jobs),
		})

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				began := time.Now()
				value, err := fn(ctx, jobs[i])
				results[i].Value = value
				results[i].Err = err
				results[i].Duration = time.Since(began)
				return nil
			})
		}
		_ = g.Wait()

		if end < len(jobs) && r.pause > 0 {
			_ = r.sleep(ctx, r.pause)
		}
	}
	return results
}

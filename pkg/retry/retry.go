package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	errs "devscout/pkg/errors"
	"devscout/pkg/logger"
)

// Policy holds retry configuration
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first
	MaxAttempts int
	// Backoff is used for every retryable error except rate limits
	Backoff BackoffStrategy
	// RateLimitBackoff is used after a rate_limit error; nil falls back to Backoff
	RateLimitBackoff BackoffStrategy
	// RetryIf determines if an error should be retried
	RetryIf func(error) bool
	// OnRetry is called before each wait
	OnRetry func(attempt int, err error, delay time.Duration)
	Logger  logger.Logger
}

// DefaultPolicy returns a policy with sensible defaults
func DefaultPolicy() *Policy {
	return &Policy{
		MaxAttempts:      3,
		Backoff:          DefaultExponentialBackoff(),
		RateLimitBackoff: RateLimitBackoff(),
		RetryIf:          DefaultRetryIf,
		Logger:           logger.NewNopLogger(),
	}
}

// DefaultRetryIf retries typed errors whose type is transient and any
// untyped error except context cancellation
func DefaultRetryIf(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		return errs.IsRetryable(apiErr.Type)
	}
	return true
}

func (p *Policy) backoffFor(err error) BackoffStrategy {
	if p.RateLimitBackoff != nil && errs.TypeOf(err) == errs.ErrorTypeRateLimit {
		return p.RateLimitBackoff
	}
	if p.Backoff == nil {
		return DefaultExponentialBackoff()
	}
	return p.Backoff
}

// Do executes op until it succeeds, returns a non-retryable error, the
// attempts are exhausted or ctx is cancelled
func Do(ctx context.Context, p *Policy, op func(ctx context.Context) error) error {
	if p == nil {
		p = DefaultPolicy()
	}
	retryIf := p.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryIf
	}
	log := p.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				log.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return nil
		}
		lastErr = err

		if !retryIf(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		delay := p.backoffFor(err).NextDelay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}
		log.WithError(err).WarnWithFields("retrying operation", map[string]interface{}{
			"attempt":      attempt,
			"delay_ms":     delay.Milliseconds(),
			"max_attempts": maxAttempts,
		})

		if err := Wait(ctx, delay); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", maxAttempts, lastErr)
}

// DoWithResult executes an operation that returns a result with retry logic
func DoWithResult[T any](ctx context.Context, p *Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := Do(ctx, p, func(ctx context.Context) error {
		var opErr error
		result, opErr = op(ctx)
		return opErr
	})
	return result, err
}

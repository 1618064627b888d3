package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting outbound requests
type Limiter interface {
	// Allow reports whether a request may proceed right now
	Allow() bool
	// Wait blocks until a request may proceed or ctx is done
	Wait(ctx context.Context) error
	// Reset refills the bucket
	Reset()
}

// TokenBucket is a token bucket limiter shared by every HTTP request the
// process makes
type TokenBucket struct {
	limiter *rate.Limiter
	perMin  int
	burst   int
}

// NewTokenBucket creates a limiter allowing requestsPerMinute sustained
// requests with bursts of up to burst
func NewTokenBucket(requestsPerMinute, burst int) *TokenBucket {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst),
		perMin:  requestsPerMinute,
		burst:   burst,
	}
}

// Allow checks if a request can proceed
func (tb *TokenBucket) Allow() bool {
	return tb.limiter.Allow()
}

// Wait blocks until a token is available
func (tb *TokenBucket) Wait(ctx context.Context) error {
	if err := tb.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// Reset refills the bucket to full capacity
func (tb *TokenBucket) Reset() {
	tb.limiter = rate.NewLimiter(tb.limiter.Limit(), tb.burst)
}

// String describes the configured rate
func (tb *TokenBucket) String() string {
	return fmt.Sprintf("%d req/min (burst %d)", tb.perMin, tb.burst)
}

// Unlimited never blocks. Tests use it to keep adapters fast.
type Unlimited struct{}

func (Unlimited) Allow() bool                   { return true }
func (Unlimited) Wait(ctx context.Context) error { return ctx.Err() }
func (Unlimited) Reset()                        {}

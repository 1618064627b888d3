// Package retry runs an operation again after transient failures, waiting
// according to a backoff strategy between attempts.
//
// Only the backend client retries. Source adapters make a single attempt and
// let the aggregator move on.
//
//	policy := retry.DefaultPolicy()
//	policy.MaxAttempts = cfg.Backend.MaxAttempts
//	body, err := retry.DoWithResult(ctx, policy, func(ctx context.Context) ([]byte, error) {
//		return hc.DoBody(req)
//	})
//
// Errors typed by devscout/pkg/errors are retried when their type is
// network, rate_limit or server_error; rate limits use the slower
// RateLimitBackoff.
package retry

// Package ratelimit throttles outbound HTTP requests with a token bucket
// built on golang.org/x/time/rate.
//
// One TokenBucket is created per process from the http section of the
// configuration and handed to the shared HTTP client, so every source adapter
// and the reply scraper draw from the same budget.
package ratelimit

// Package sources holds one adapter per external site. Each adapter fetches
// its listing through the shared httpclient, filters out stale and
// saturated items, matches keywords and scores what is left.
//
// Fetch returns an error only when the adapter's primary request fails. An
// item that cannot be fetched or parsed is logged and skipped.
package sources

// Package backend is a client for the DevScout REST backend, the external
// service that stores triaged posts and drafts responses.
//
// Every route under /api/posts has a method here. Requests go through the
// shared httpclient so they carry the same headers and metrics as source
// fetches; transient failures (network errors, 429 and 5xx) are retried
// with the retry package's exponential backoff. Other non-2xx responses
// surface as *errors.Error values:
//
//	client := backend.NewClient(cfg.Backend, hc)
//	stats, err := client.Stats(ctx)
//	if errors.TypeOf(err) == errors.ErrorTypeNotFound {
//	    ...
//	}
package backend

// Package httpclient provides the HTTP client every outbound request goes
// through: source adapters, the reply scraper and the backend client.
//
// A Client applies default headers (User-Agent, Accept), waits on a shared
// token-bucket limiter before each request and maps failures to typed
// errors from devscout/pkg/errors:
//
//	client := httpclient.New(cfg.HTTP, httpclient.WithObserver(collector))
//	var listing redditListing
//	if err := client.GetJSON(ctx, url, &listing); err != nil {
//		if errors.TypeOf(err) == errors.ErrorTypeRateLimit { ... }
//	}
package httpclient

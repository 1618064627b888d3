package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devscout/pkg/config"
	errs "devscout/pkg/errors"
	"devscout/pkg/logger"
	"devscout/pkg/ratelimit"
)

// maxBodySize caps how much of a response body is read into memory
const maxBodySize = 16 << 20

// Observer receives one call per completed or failed request. status is 0
// when the request never got a response.
type Observer interface {
	ObserveRequest(host string, status int, duration time.Duration)
}

// Client is the HTTP client shared by every source adapter, the reply
// scraper and the backend client. It sets default headers, waits on the
// process-wide rate limiter and turns failures into typed errors.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    ratelimit.Limiter
	logger     logger.Logger
	observer   Observer
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLimiter sets the rate limiter requests wait on
func WithLimiter(l ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithObserver registers a request observer, typically the metrics collector
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a client from the http section of the configuration
func New(cfg config.HTTPConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		headers: map[string]string{
			"User-Agent":      cfg.UserAgent,
			"Accept":          "application/json",
			"Accept-Language": "en-US,en;q=0.9",
		},
		limiter: ratelimit.NewTokenBucket(cfg.RequestsPerMinute, cfg.Burst),
		logger:  logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req after waiting on the rate limiter. Default headers are
// applied unless the request already carries them. Transport failures come
// back as network errors; the response status is not checked.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, errs.New(errs.ErrorTypeNetwork, 0, "%v", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.observe(req, 0, duration)
		c.logger.WithError(err).DebugWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"duration": duration,
		})
		return nil, errs.New(errs.ErrorTypeNetwork, 0, "network error: %v", err)
	}

	c.observe(req, resp.StatusCode, duration)
	logger.LogRequest(c.logger, req.Method, req.URL.String(), resp.StatusCode, duration)
	return resp, nil
}

func (c *Client) observe(req *http.Request, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(req.URL.Hostname(), status, d)
	}
}

// DoBody sends req and returns the body of a 2xx response
func (c *Client) DoBody(req *http.Request) ([]byte, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if apiErr := errs.FromStatus(resp.StatusCode); apiErr != nil {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		c.logger.DebugWithFields("Unsuccessful response", map[string]interface{}{
			"url":       req.URL.String(),
			"status":    resp.StatusCode,
			"retryable": errs.IsRetryableStatusCode(resp.StatusCode),
		})
		return nil, apiErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errs.New(errs.ErrorTypeNetwork, resp.StatusCode, "failed to read response body: %v", err)
	}
	return body, nil
}

// DoJSON sends req and decodes a 2xx JSON response into target
func (c *Client) DoJSON(req *http.Request, target interface{}) error {
	body, err := c.DoBody(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.DebugWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          req.URL.String(),
			"error":        err.Error(),
			"body_preview": preview,
		})
		return errs.New(errs.ErrorTypeParsing, http.StatusOK, "failed to parse JSON: %v", err)
	}
	return nil
}

// GetJSON performs a GET request and decodes the JSON response
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.DoJSON(req, target)
}

// GetBody performs a GET request and returns the raw body
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.DoBody(req)
}

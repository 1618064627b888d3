package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"devscout/pkg/config"
	errs "devscout/pkg/errors"
	"devscout/pkg/httpclient"
	"devscout/pkg/logger"
	"devscout/pkg/models"
	"devscout/pkg/retry"
)

const postsPath = "/api/posts"

// Client talks to the DevScout REST backend
type Client struct {
	http    *httpclient.Client
	baseURL string
	policy  *retry.Policy
	logger  logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithPolicy replaces the retry policy
func WithPolicy(p *retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithLogger sets the client logger
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a backend client sending requests through hc. Transient
// failures are retried up to cfg.MaxAttempts times with exponential backoff.
func NewClient(cfg config.BackendConfig, hc *httpclient.Client, opts ...Option) *Client {
	c := &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		p := retry.DefaultPolicy()
		p.MaxAttempts = cfg.MaxAttempts
		p.Logger = c.logger
		c.policy = p
	}
	return c
}

// BaseURL returns the backend root URL
func (c *Client) BaseURL() string { return c.baseURL }

// do sends one JSON request, retrying transient failures. in is encoded as
// the request body when non-nil; out receives the decoded response when
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	body, err := retry.DoWithResult(ctx, c.policy, func(ctx context.Context) ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.http.DoBody(req)
	})
	if err != nil {
		return fmt.Errorf("backend %s %s failed: %w", method, path, err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("backend %s %s failed: %w", method, path,
			errs.New(errs.ErrorTypeParsing, http.StatusOK, "failed to parse JSON: %v", err))
	}
	return nil
}

func postPath(id int, suffix string) string {
	return postsPath + "/" + strconv.Itoa(id) + suffix
}

// SubmitPosts hands client-fetched posts to the backend, which keeps the
// ones it has not seen. An empty batch is not sent.
func (c *Client) SubmitPosts(ctx context.Context, posts []models.Post) (SubmitResult, error) {
	if len(posts) == 0 {
		return SubmitResult{}, nil
	}
	var res SubmitResult
	if err := c.do(ctx, http.MethodPost, postsPath+"/submit", nil, submitRequest{Posts: posts}, &res); err != nil {
		return SubmitResult{}, err
	}
	c.logger.InfoWithFields("Posts submitted", map[string]interface{}{
		"received": res.Received,
		"added":    res.Added,
	})
	return res, nil
}

// ListPosts returns stored posts, best first
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) ([]StoredPost, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}
	if opts.Subreddit != "" {
		query.Set("subreddit", opts.Subreddit)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var posts []StoredPost
	if err := c.do(ctx, http.MethodGet, postsPath+"/", query, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns one stored post
func (c *Client) GetPost(ctx context.Context, id int) (StoredPost, error) {
	var post StoredPost
	err := c.do(ctx, http.MethodGet, postPath(id, ""), nil, nil, &post)
	return post, err
}

// Stats returns the dashboard counters
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := c.do(ctx, http.MethodGet, postsPath+"/stats", nil, nil, &stats)
	return stats, err
}

// UpdatePost changes a post's status, suggested response or tracked comment
func (c *Client) UpdatePost(ctx context.Context, id int, update PostUpdate) (StoredPost, error) {
	if update.Status != "" && !update.Status.Valid() {
		return StoredPost{}, fmt.Errorf("invalid status %q", update.Status)
	}
	var post StoredPost
	err := c.do(ctx, http.MethodPatch, postPath(id, ""), nil, update, &post)
	return post, err
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, postPath(id, ""), nil, nil, nil)
}

// ClearStale removes every post that was not responded to and returns how
// many were deleted
func (c *Client) ClearStale(ctx context.Context) (int, error) {
	var res cleared
	if err := c.do(ctx, http.MethodDelete, postsPath+"/clear/stale", nil, nil, &res); err != nil {
		return 0, err
	}
	return res.Deleted, nil
}

// GenerateResponse asks the backend to draft a response to a stored post
func (c *Client) GenerateResponse(ctx context.Context, id int, customContext string) (string, error) {
	var res generated
	req := generateRequest{PostID: id, CustomContext: customContext}
	if err := c.do(ctx, http.MethodPost, postPath(id, "/generate"), nil, req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// GenerateReply drafts an answer to a reply on one of the user's comments
func (c *Client) GenerateReply(ctx context.Context, req ReplyRequest) (string, error) {
	var res generated
	if err := c.do(ctx, http.MethodPost, postsPath+"/generate-reply", nil, req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// GenerateEngagePost drafts a discussion post from an idea template
func (c *Client) GenerateEngagePost(ctx context.Context, req EngageRequest) (string, error) {
	var res generated
	if err := c.do(ctx, http.MethodPost, postsPath+"/generate-engage", nil, req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// GenerateNewsResponse drafts a response to a post from a news source
func (c *Client) GenerateNewsResponse(ctx context.Context, req NewsRequest) (string, error) {
	var res generated
	if err := c.do(ctx, http.MethodPost, postsPath+"/generate-news", nil, req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

// TrackedPosts returns the posts that carry a tracked comment URL
func (c *Client) TrackedPosts(ctx context.Context) ([]StoredPost, error) {
	var posts []StoredPost
	if err := c.do(ctx, http.MethodGet, postsPath+"/tracked", nil, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateReplyCount records the number of unread replies found for a post
func (c *Client) UpdateReplyCount(ctx context.Context, id, count int) error {
	query := url.Values{"count": []string{strconv.Itoa(count)}}
	return c.do(ctx, http.MethodPost, postPath(id, "/update-replies"), query, nil, nil)
}

// MarkRepliesRead resets a post's unread reply count
func (c *Client) MarkRepliesRead(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, postPath(id, "/mark-read"), nil, nil, nil)
}

package replies

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"devscout/internal/batch"
	"devscout/pkg/config"
	"devscout/pkg/httpclient"
	"devscout/pkg/logger"
	"devscout/pkg/models"
)

var (
	ErrMalformedURL        = errors.New("invalid Reddit post URL")
	ErrMalformedCommentURL = errors.New("invalid Reddit comment URL")
	ErrAllTransportsFailed = errors.New("all fetch methods failed")
)

var (
	postURLPattern    = regexp.MustCompile(`reddit\.com/r/\w+/comments/(\w+)`)
	commentURLPattern = regexp.MustCompile(`reddit\.com/r/(\w+)/comments/(\w+)/[^/]+/(\w+)`)
)

// ParsePostURL extracts the post id from a Reddit post URL
func ParsePostURL(postURL string) (string, error) {
	m := postURLPattern.FindStringSubmatch(postURL)
	if m == nil {
		return "", ErrMalformedURL
	}
	return m[1], nil
}

// CommentRef identifies one Reddit comment
type CommentRef struct {
	Subreddit string
	PostID    string
	CommentID string
}

// ParseCommentURL extracts subreddit, post and comment ids from a comment
// permalink
func ParseCommentURL(commentURL string) (CommentRef, error) {
	m := commentURLPattern.FindStringSubmatch(commentURL)
	if m == nil {
		return CommentRef{}, ErrMalformedCommentURL
	}
	return CommentRef{Subreddit: m[1], PostID: m[2], CommentID: m[3]}, nil
}

// Strategy is one way of reaching a Reddit JSON endpoint. An empty Prefix
// fetches the URL directly; otherwise the query-escaped URL is appended to
// the prefix.
type Strategy struct {
	Name   string
	Prefix string
}

func (s Strategy) url(target string) string {
	if s.Prefix == "" {
		return target
	}
	return s.Prefix + url.QueryEscape(target)
}

// Result is the outcome of scraping one post. Error is empty on success.
type Result struct {
	PostID   string               `json:"post_id"`
	Comments []models.UserComment `json:"comments"`
	Error    string               `json:"error,omitempty"`
	err      error
}

// Err returns the failure as an error value for errors.Is checks
func (r Result) Err() error { return r.err }

// OK reports whether the post was fetched
func (r Result) OK() bool { return r.err == nil }

func failed(postID string, err error) Result {
	return Result{PostID: postID, Error: err.Error(), err: err}
}

// Target is a tracked post to check for replies
type Target struct {
	ID  int
	URL string
}

// Scraper finds a user's comments on Reddit posts and the replies they got
type Scraper struct {
	client     *httpclient.Client
	username   string
	strategies []Strategy
	runner     *batch.Runner
	logger     logger.Logger
}

// NewScraper creates a scraper. The direct strategy always comes first,
// followed by the configured proxy prefixes in order.
func NewScraper(client *httpclient.Client, cfg config.RepliesConfig, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	strategies := []Strategy{{Name: "direct"}}
	for i, prefix := range cfg.Proxies {
		strategies = append(strategies, Strategy{Name: fmt.Sprintf("proxy-%d", i+1), Prefix: prefix})
	}
	return &Scraper{
		client:     client,
		username:   cfg.Username,
		strategies: strategies,
		runner:     batch.NewRunner(cfg.BatchSize, cfg.BatchPause, log),
		logger:     log,
	}
}

// Username returns the tracked username
func (s *Scraper) Username() string { return s.username }

// fetch tries each strategy in order and returns the first body that parses
// as a comment thread
func (s *Scraper) fetch(ctx context.Context, target string) ([]Node, error) {
	var lastErr error
	for _, strategy := range s.strategies {
		body, err := s.client.GetBody(ctx, strategy.url(target))
		if err == nil {
			var nodes []Node
			if nodes, err = ParseThread(body); err == nil {
				return nodes, nil
			}
		}
		lastErr = err
		s.logger.WithError(err).DebugWithFields("Fetch strategy failed", map[string]interface{}{
			"strategy": strategy.Name,
			"url":      target,
		})
	}
	return nil, fmt.Errorf("%w: %v", ErrAllTransportsFailed, lastErr)
}

// ScrapePost fetches the comment tree of postURL and collects the tracked
// user's comments. Failures are reported in the result, never panicked.
func (s *Scraper) ScrapePost(ctx context.Context, postURL string) Result {
	postID, err := ParsePostURL(postURL)
	if err != nil {
		return failed("", err)
	}

	target := fmt.Sprintf("https://www.reddit.com/comments/%s.json?limit=500&depth=10", postID)
	nodes, err := s.fetch(ctx, target)
	if err != nil {
		s.logger.WithError(err).WarnWithFields("Could not fetch post comments", map[string]interface{}{
			"post_id": postID,
		})
		return failed(postID, ErrAllTransportsFailed)
	}

	comments := FindUserComments(nodes, s.username)
	s.logger.DebugWithFields("Post scraped", map[string]interface{}{
		"post_id":  postID,
		"comments": len(comments),
		"username": s.username,
	})
	return Result{PostID: postID, Comments: comments}
}

// ScrapeTracked checks many posts in concurrent batches and returns a
// thread for every post that could be fetched, keyed by target id
func (s *Scraper) ScrapeTracked(ctx context.Context, targets []Target) map[int]models.ReplyThread {
	results := batch.Run(ctx, s.runner, targets, func(ctx context.Context, t Target) (Result, error) {
		r := s.ScrapePost(ctx, t.URL)
		return r, r.Err()
	})

	threads := make(map[int]models.ReplyThread, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		threads[res.Job.ID] = models.NewReplyThread(res.Value.PostID, res.Value.Comments)
	}
	return threads
}

// FetchCommentReplies returns the replies to the comment at commentURL
func (s *Scraper) FetchCommentReplies(ctx context.Context, commentURL string) ([]models.Reply, error) {
	ref, err := ParseCommentURL(commentURL)
	if err != nil {
		return nil, err
	}

	target := fmt.Sprintf("https://www.reddit.com/r/%s/comments/%s/_/%s.json", ref.Subreddit, ref.PostID, ref.CommentID)
	nodes, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	return RepliesTo(nodes, ref.CommentID), nil
}

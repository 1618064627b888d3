package sources

import (
	"context"
	"net/http"
	"testing"
	"time"

	"devscout/pkg/config"
	"devscout/pkg/httpclient"
	"devscout/pkg/logger"
	"devscout/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodFirstIssueURL = "https://api.github.com/search/issues?q=label:good-first-issue+state:open+language:python+language:go&sort=created&order=desc&per_page=25"

func TestGitHubLabelSearchURL(t *testing.T) {
	b, _ := newTestBase(t, nil)
	g := NewGitHubLabel(b, "good-first-issue", []string{"python", "go"}, 25)
	assert.Equal(t, goodFirstIssueURL, g.searchURL())
	assert.Equal(t, "good-first-issue", g.Label())
}

func TestGitHubLabelFetch(t *testing.T) {
	b, _ := newTestBase(t, map[string]interface{}{
		goodFirstIssueURL: obj{
			"items": []obj{
				{
					"id": 9001, "number": 12, "title": "Fix typo in README", "body": "There is a typo.",
					"html_url": "https://github.com/acme/widgets/issues/12",
					"repository_url": "https://api.github.com/repos/acme/widgets",
					"comments": 1, "created_at": ago(2 * time.Hour).Format(time.RFC3339),
					"user":   obj{"login": "erin"},
					"labels": []obj{{"name": "good-first-issue"}, {"name": "docs"}},
				},
				{
					"id": 9002, "number": 3, "title": "Odd repo url", "repository_url": "nope",
					"comments": 6, "created_at": ago(10 * 24 * time.Hour).Format(time.RFC3339),
				},
			},
		},
	})

	issues, err := NewGitHubLabel(b, "good-first-issue", []string{"python", "go"}, 25).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, int64(9001), first.ID)
	assert.Equal(t, "9001", first.RecordID())
	assert.Equal(t, "acme/widgets", first.RepoFullName)
	assert.Equal(t, "https://github.com/acme/widgets", first.RepoURL)
	assert.Equal(t, "erin", first.Author)
	assert.Equal(t, []string{"good-first-issue", "docs"}, first.Labels)
	// quiet 30, fresh 30, good-first-issue 20
	assert.Equal(t, 80.0, first.RelevanceScore)

	second := issues[1]
	assert.Equal(t, "unknown", second.RepoFullName)
	assert.Equal(t, "[deleted]", second.Author)
	assert.Equal(t, 0.0, second.RelevanceScore)
}

func TestGitHubLabelSendsAcceptHeader(t *testing.T) {
	var accept string
	transport := &mockRoundTripper{handler: func(req *http.Request) (*http.Response, error) {
		accept = req.Header.Get("Accept")
		return newResponse(http.StatusOK, `{"items":[]}`), nil
	}}

	cfg := config.DefaultConfig()
	client := httpclient.New(cfg.HTTP,
		httpclient.WithHTTPClient(&http.Client{Transport: transport}),
		httpclient.WithLimiter(ratelimit.Unlimited{}),
		httpclient.WithLogger(logger.NewNopLogger()),
	)
	b := NewBase(client, cfg.Scan, logger.NewNopLogger())

	issues, err := NewGitHubLabel(b, "easy", cfg.GitHub.Languages, 25).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, "application/vnd.github.v3+json", accept)
}

func TestGitHubRateLimited(t *testing.T) {
	b, _ := newTestBase(t, map[string]interface{}{
		goodFirstIssueURL: http.StatusForbidden,
	})
	_, err := NewGitHubLabel(b, "good-first-issue", []string{"python", "go"}, 25).Fetch(context.Background())
	assert.Error(t, err)
}

func TestIssueSources(t *testing.T) {
	b, _ := newTestBase(t, nil)
	gh := config.DefaultConfig().GitHub

	list := IssueSources(b, gh)
	require.Len(t, list, len(gh.Labels))
	for i, s := range list {
		assert.Equal(t, gh.Labels[i], s.Label())
	}
}

func TestSubredditSources(t *testing.T) {
	b, _ := newTestBase(t, nil)
	list := SubredditSources(b, []string{"a", "b"})
	require.Len(t, list, 2)
	assert.Equal(t, "r/b", list[1].Label())
}

package sources

import (
	"context"
	"net/http"
	"testing"
	"time"

	errs "devscout/pkg/errors"
	"devscout/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webdevURL = "https://www.reddit.com/r/webdev/new.json?limit=25"

func selfPost(id, title string, age time.Duration, comments, score int) obj {
	return obj{
		"id":           id,
		"title":        title,
		"selftext":     "",
		"permalink":    "/r/webdev/comments/" + id + "/slug/",
		"author":       "someone",
		"score":        score,
		"num_comments": comments,
		"created_utc":  float64(ago(age).Unix()),
		"is_self":      true,
	}
}

func TestSubredditFetch(t *testing.T) {
	linkPost := selfPost("link", "How do I automate deploys?", time.Hour, 0, 5)
	linkPost["is_self"] = false
	anonymous := selfPost("anon", "Best way to export data?", time.Hour, 0, 3)
	anonymous["author"] = ""

	b, _ := newTestBase(t, map[string]interface{}{
		webdevURL: redditListingOf(
			redditChild(selfPost("fresh", "How do I automate invoices?", time.Hour, 2, 4)),
			redditChild(selfPost("edge", "Stuck on webhook retries", 24*time.Hour-time.Second, 10, 2)),
			redditChild(selfPost("boundary", "How do I automate invoices?", 24*time.Hour, 0, 4)),
			redditChild(selfPost("stale", "How do I automate invoices?", 25*time.Hour, 0, 4)),
			redditChild(selfPost("busy", "How do I automate invoices?", time.Hour, 16, 4)),
			redditChild(selfPost("unloved", "How do I automate invoices?", time.Hour, 0, 0)),
			redditChild(selfPost("offtopic", "Weekly photo thread", time.Hour, 0, 9)),
			redditChild(linkPost),
			redditChild(anonymous),
		),
	})

	posts, err := NewSubreddit(b, "webdev").Fetch(context.Background())
	require.NoError(t, err)

	var got []string
	byID := map[string]models.Post{}
	for _, p := range posts {
		got = append(got, p.ID)
		byID[p.ID] = p
	}
	assert.Equal(t, []string{"fresh", "edge", "anon"}, got)

	fresh := byID["fresh"]
	assert.Equal(t, "webdev", fresh.SourceLabel)
	assert.Equal(t, "https://reddit.com/r/webdev/comments/fresh/slug/", fresh.URL)
	assert.Equal(t, []string{"automate", "how do i"}, fresh.MatchedKeywords)
	assert.Equal(t, 80.0, fresh.RelevanceScore)
	assert.Equal(t, "someone", fresh.Author)

	edge := byID["edge"]
	assert.Equal(t, []string{"webhook", "stuck"}, edge.MatchedKeywords)
	assert.Equal(t, 30.0, edge.RelevanceScore)

	assert.Equal(t, "[deleted]", byID["anon"].Author)
}

func TestSubredditFetchFailure(t *testing.T) {
	b, _ := newTestBase(t, map[string]interface{}{
		webdevURL: http.StatusServiceUnavailable,
	})

	posts, err := NewSubreddit(b, "webdev").Fetch(context.Background())
	require.Error(t, err)
	assert.Nil(t, posts)
	assert.Equal(t, errs.ErrorTypeServerError, errs.TypeOf(err))
}

func TestSubredditNothingRelevant(t *testing.T) {
	b, _ := newTestBase(t, map[string]interface{}{
		webdevURL: redditListingOf(redditChild(selfPost("x", "Weekly photo thread", time.Hour, 0, 9))),
	})

	posts, err := NewSubreddit(b, "webdev").Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSubredditLabel(t *testing.T) {
	b, _ := newTestBase(t, nil)
	assert.Equal(t, "r/golang", NewSubreddit(b, "golang").Label())
}

func TestProspectSearchFetch(t *testing.T) {
	const searchURL = "https://www.reddit.com/r/forhire/search.json?q=%5BHiring%5D&restrict_sr=on&sort=new&t=week&limit=15"

	link := selfPost("link", "[Hiring] Need developer for app", time.Hour, 0, 3)
	link["is_self"] = false

	b, _ := newTestBase(t, map[string]interface{}{
		searchURL: redditListingOf(
			redditChild(selfPost("lead", "[Hiring] Need developer for Shopify sync", time.Hour, 0, 3)),
			redditChild(selfPost("rival", "[For Hire] I will build your app", time.Hour, 0, 3)),
			redditChild(selfPost("old", "[Hiring] Need developer for Shopify sync", 8*24*time.Hour, 0, 3)),
			redditChild(link),
		),
	})

	search := NewProspectSearch(b, "forhire", "[Hiring]")
	assert.Equal(t, "r/forhire: [Hiring]", search.Label())

	prospects, err := search.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, prospects, 1)

	p := prospects[0]
	assert.Equal(t, "lead", p.ID)
	assert.Equal(t, models.SourceCommunity, p.SourceKind)
	assert.Equal(t, "forhire", p.SourceLabel)
	assert.Equal(t, "[Hiring]", p.SearchQuery)
	assert.True(t, p.IsHiring)
	// hiring tag 30, gold 15, "developer" 5, recency 10
	assert.Equal(t, 60, p.ProspectScore)
}

func TestProspectSearchNeverKeepsZeroScores(t *testing.T) {
	const searchURL = "https://www.reddit.com/r/smallbusiness/search.json?q=hire+me&restrict_sr=on&sort=new&t=week&limit=15"

	b, _ := newTestBase(t, map[string]interface{}{
		searchURL: redditListingOf(
			redditChild(selfPost("a", "[Hiring] hire me for automation", time.Hour, 0, 50)),
			redditChild(selfPost("b", "Looking for clients", time.Hour, 0, 50)),
		),
	})

	prospects, err := NewProspectSearch(b, "smallbusiness", "hire me").Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, prospects)
}

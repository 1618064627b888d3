package sources

import (
	"context"
	"fmt"
	"net/url"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const redditBaseURL = "https://www.reddit.com"

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string     `json:"kind"`
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	IsSelf      bool    `json:"is_self"`
}

func (p redditPost) url() string {
	return "https://reddit.com" + p.Permalink
}

// Subreddit reads the newest posts of one subreddit
type Subreddit struct {
	Base
	Name string
}

// NewSubreddit creates the adapter for r/name
func NewSubreddit(b Base, name string) *Subreddit {
	return &Subreddit{Base: b, Name: name}
}

func (s *Subreddit) Label() string { return "r/" + s.Name }

// Fetch keeps fresh, quiet self posts that match at least one keyword
func (s *Subreddit) Fetch(ctx context.Context) ([]models.Post, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new.json?limit=25", redditBaseURL, url.PathEscape(s.Name))

	var listing redditListing
	if err := s.Client.GetJSON(ctx, endpoint, &listing); err != nil {
		return nil, fmt.Errorf("failed to fetch r/%s: %w", s.Name, err)
	}

	now := s.now()
	var posts []models.Post
	for _, child := range listing.Data.Children {
		p := child.Data
		created := models.Post{CreatedAt: p.CreatedUTC}.Created()

		if !s.fresh(created, now) ||
			p.NumComments > s.Scan.MaxComments ||
			p.Score < s.Scan.MinScore ||
			!p.IsSelf {
			continue
		}

		matched := scoring.MatchKeywords(p.Title + " " + p.Selftext)
		if len(matched) == 0 {
			continue
		}

		posts = append(posts, models.Post{
			ID:              p.ID,
			SourceLabel:     s.Name,
			Title:           p.Title,
			BodyExcerpt:     s.excerpt(p.Selftext),
			URL:             p.url(),
			Author:          orDefault(p.Author, "[deleted]"),
			UpvoteCount:     p.Score,
			CommentCount:    p.NumComments,
			CreatedAt:       p.CreatedUTC,
			MatchedKeywords: matched,
			RelevanceScore:  s.relevance(p.Title, p.NumComments, created, now, matched),
		})
	}
	return posts, nil
}

// ProspectSearch runs one Reddit search looking for people who need work
// done
type ProspectSearch struct {
	Base
	Subreddit string
	Query     string
}

// NewProspectSearch creates the adapter for one subreddit search
func NewProspectSearch(b Base, subreddit, query string) *ProspectSearch {
	return &ProspectSearch{Base: b, Subreddit: subreddit, Query: query}
}

func (s *ProspectSearch) Label() string { return fmt.Sprintf("r/%s: %s", s.Subreddit, s.Query) }

// Fetch keeps self posts from the last week that are not competitor ads
func (s *ProspectSearch) Fetch(ctx context.Context) ([]models.Prospect, error) {
	endpoint := fmt.Sprintf("%s/r/%s/search.json?q=%s&restrict_sr=on&sort=new&t=week&limit=15",
		redditBaseURL, url.PathEscape(s.Subreddit), url.QueryEscape(s.Query))

	var listing redditListing
	if err := s.Client.GetJSON(ctx, endpoint, &listing); err != nil {
		return nil, fmt.Errorf("failed to search r/%s: %w", s.Subreddit, err)
	}

	now := s.now()
	var prospects []models.Prospect
	for _, child := range listing.Data.Children {
		p := child.Data
		if !p.IsSelf {
			continue
		}
		created := models.Post{CreatedAt: p.CreatedUTC}.Created()
		if !scoring.WithinWindow(created, now, s.Scan.ProspectMaxAge) {
			continue
		}

		score := scoring.Prospect(scoring.ProspectInput{
			Title:        p.Title,
			Body:         p.Selftext,
			CommentCount: p.NumComments,
			UpvoteCount:  p.Score,
			CreatedAt:    created,
		}, now)
		if score == 0 {
			continue
		}

		prospects = append(prospects, models.Prospect{
			ID:            p.ID,
			SourceKind:    models.SourceCommunity,
			SourceLabel:   s.Subreddit,
			Title:         p.Title,
			BodyExcerpt:   s.excerpt(p.Selftext),
			URL:           p.url(),
			Author:        orDefault(p.Author, "[deleted]"),
			UpvoteCount:   p.Score,
			CommentCount:  p.NumComments,
			CreatedAt:     p.CreatedUTC,
			ProspectScore: score,
			SearchQuery:   s.Query,
			IsHiring:      scoring.IsHiring(p.Title),
		})
	}
	return prospects, nil
}

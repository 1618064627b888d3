package sources

import (
	"context"
	"fmt"
	"strings"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const lobstersURL = "https://lobste.rs/newest.json"

type lobstersStory struct {
	ShortID       string   `json:"short_id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Description   string   `json:"description"`
	CommentsURL   string   `json:"comments_url"`
	CommentCount  int      `json:"comment_count"`
	Score         int      `json:"score"`
	CreatedAt     flexTime `json:"created_at"`
	Tags          []string `json:"tags"`
	SubmitterUser struct {
		Username string `json:"username"`
	} `json:"submitter_user"`
}

// Lobsters reads the newest Lobsters stories
type Lobsters struct {
	Base
}

func NewLobsters(b Base) *Lobsters { return &Lobsters{Base: b} }

func (l *Lobsters) Label() string { return "Lobsters" }

// Fetch keeps text stories, those without an external link
func (l *Lobsters) Fetch(ctx context.Context) ([]models.Post, error) {
	var stories []lobstersStory
	if err := l.Client.GetJSON(ctx, lobstersURL, &stories); err != nil {
		return nil, fmt.Errorf("failed to fetch Lobsters: %w", err)
	}

	now := l.now()
	var posts []models.Post
	for _, s := range stories {
		created := s.CreatedAt.Time
		if !l.fresh(created, now) || s.CommentCount > l.Scan.MaxComments {
			continue
		}
		if s.URL != "" && !strings.Contains(s.URL, "lobste.rs") {
			continue
		}

		description := stripHTML(s.Description)
		matched := scoring.MatchKeywords(s.Title + " " + description)
		if len(matched) == 0 {
			continue
		}

		tag := "general"
		if len(s.Tags) > 0 {
			tag = s.Tags[0]
		}

		posts = append(posts, models.Post{
			ID:              "lobsters_" + s.ShortID,
			SourceLabel:     "Lobsters:" + tag,
			Title:           s.Title,
			BodyExcerpt:     l.excerpt(description),
			URL:             s.CommentsURL,
			Author:          orDefault(s.SubmitterUser.Username, "[deleted]"),
			UpvoteCount:     s.Score,
			CommentCount:    s.CommentCount,
			CreatedAt:       unixSeconds(created),
			MatchedKeywords: matched,
			RelevanceScore:  l.relevance(s.Title, s.CommentCount, created, now, matched),
		})
	}
	return posts, nil
}

package sources

import (
	"context"
	"fmt"
	"strings"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const devtoURL = "https://dev.to/api/articles?per_page=50&top=7"

type devtoArticle struct {
	ID                   int64    `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	URL                  string   `json:"url"`
	CommentsCount        int      `json:"comments_count"`
	PublicReactionsCount int      `json:"public_reactions_count"`
	PublishedAt          flexTime `json:"published_at"`
	TagList              []string `json:"tag_list"`
	User                 struct {
		Username string `json:"username"`
	} `json:"user"`
}

// DevTo reads the week's top Dev.to articles
type DevTo struct {
	Base
}

func NewDevTo(b Base) *DevTo { return &DevTo{Base: b} }

func (d *DevTo) Label() string { return "Dev.to" }

func (d *DevTo) Fetch(ctx context.Context) ([]models.Post, error) {
	var articles []devtoArticle
	if err := d.Client.GetJSON(ctx, devtoURL, &articles); err != nil {
		return nil, fmt.Errorf("failed to fetch Dev.to: %w", err)
	}

	now := d.now()
	var posts []models.Post
	for _, a := range articles {
		created := a.PublishedAt.Time
		if !d.fresh(created, now) || a.CommentsCount > d.Scan.ArticleMaxComments {
			continue
		}

		matched := scoring.MatchKeywords(a.Title + " " + a.Description + " " + strings.Join(a.TagList, " "))
		if len(matched) == 0 {
			continue
		}

		tag := "general"
		if len(a.TagList) > 0 {
			tag = a.TagList[0]
		}

		posts = append(posts, models.Post{
			ID:              fmt.Sprintf("devto_%d", a.ID),
			SourceLabel:     "DEV:" + tag,
			Title:           a.Title,
			BodyExcerpt:     d.excerpt(a.Description),
			URL:             a.URL,
			Author:          orDefault(a.User.Username, "[deleted]"),
			UpvoteCount:     a.PublicReactionsCount,
			CommentCount:    a.CommentsCount,
			CreatedAt:       unixSeconds(created),
			MatchedKeywords: matched,
			RelevanceScore:  d.relevance(a.Title, a.CommentsCount, created, now, matched),
		})
	}
	return posts, nil
}

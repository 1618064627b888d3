package sources

import (
	"context"
	"encoding/base64"
	"fmt"

	"devscout/pkg/models"
	"devscout/pkg/scoring"

	"github.com/mmcdole/gofeed"
)

const tildesURL = "https://tildes.net/~tech.rss"

// Tildes reads the ~tech group RSS feed
type Tildes struct {
	Base
}

func NewTildes(b Base) *Tildes { return &Tildes{Base: b} }

func (t *Tildes) Label() string { return "Tildes" }

// Fetch parses the feed with gofeed. Items without a publish date are
// skipped. The feed carries no comment counts.
func (t *Tildes) Fetch(ctx context.Context) ([]models.Post, error) {
	body, err := t.Client.GetBody(ctx, tildesURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Tildes: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Tildes feed: %w", err)
	}

	now := t.now()
	var posts []models.Post
	for _, item := range feed.Items {
		if item.PublishedParsed == nil {
			continue
		}
		created := *item.PublishedParsed
		if !t.fresh(created, now) {
			continue
		}

		description := stripHTML(item.Description)
		matched := scoring.MatchKeywords(item.Title + " " + description)
		if len(matched) == 0 {
			continue
		}

		posts = append(posts, models.Post{
			ID:              "tildes_" + tildesID(item.Link),
			SourceLabel:     "Tildes:tech",
			Title:           item.Title,
			BodyExcerpt:     t.excerpt(description),
			URL:             item.Link,
			Author:          "[tildes]",
			CreatedAt:       unixSeconds(created),
			MatchedKeywords: matched,
			RelevanceScore:  t.relevance(item.Title, 0, created, now, matched),
		})
	}
	return posts, nil
}

func tildesID(link string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(link))
	if len(encoded) > 20 {
		return encoded[:20]
	}
	return encoded
}

package sources

import (
	"context"
	"fmt"
	"strings"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const hashnodeURL = "https://hashnode.com/api/feed/hot?page=0"

type hashnodeFeed struct {
	Posts []hashnodePost `json:"posts"`
}

type hashnodePost struct {
	ID             string   `json:"_id"`
	CUID           string   `json:"cuid"`
	Title          string   `json:"title"`
	Brief          string   `json:"brief"`
	Slug           string   `json:"slug"`
	DateAdded      flexTime `json:"dateAdded"`
	ResponseCount  int      `json:"responseCount"`
	TotalReactions int      `json:"totalReactions"`
	Tags           []struct {
		Name string `json:"name"`
	} `json:"tags"`
	Author struct {
		Username string `json:"username"`
	} `json:"author"`
	Publication struct {
		Domain string `json:"domain"`
	} `json:"publication"`
}

func (p hashnodePost) url() string {
	if p.Publication.Domain != "" {
		return fmt.Sprintf("https://%s/%s", p.Publication.Domain, p.Slug)
	}
	return "https://hashnode.com/post/" + p.Slug
}

// Hashnode reads the Hashnode hot feed
type Hashnode struct {
	Base
}

func NewHashnode(b Base) *Hashnode { return &Hashnode{Base: b} }

func (h *Hashnode) Label() string { return "Hashnode" }

func (h *Hashnode) Fetch(ctx context.Context) ([]models.Post, error) {
	var feed hashnodeFeed
	if err := h.Client.GetJSON(ctx, hashnodeURL, &feed); err != nil {
		return nil, fmt.Errorf("failed to fetch Hashnode: %w", err)
	}

	now := h.now()
	var posts []models.Post
	for _, p := range feed.Posts {
		created := p.DateAdded.Time
		if !h.fresh(created, now) || p.ResponseCount > h.Scan.ArticleMaxComments {
			continue
		}

		tagNames := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tagNames = append(tagNames, t.Name)
		}
		matched := scoring.MatchKeywords(p.Title + " " + p.Brief + " " + strings.Join(tagNames, " "))
		if len(matched) == 0 {
			continue
		}

		tag := "general"
		if len(tagNames) > 0 && tagNames[0] != "" {
			tag = tagNames[0]
		}

		posts = append(posts, models.Post{
			ID:              "hashnode_" + orDefault(p.ID, p.CUID),
			SourceLabel:     "Hashnode:" + tag,
			Title:           p.Title,
			BodyExcerpt:     h.excerpt(p.Brief),
			URL:             p.url(),
			Author:          orDefault(p.Author.Username, "[deleted]"),
			UpvoteCount:     p.TotalReactions,
			CommentCount:    p.ResponseCount,
			CreatedAt:       unixSeconds(created),
			MatchedKeywords: matched,
			RelevanceScore:  h.relevance(p.Title, p.ResponseCount, created, now, matched),
		})
	}
	return posts, nil
}

package sources

import (
	"context"
	"fmt"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const indieHackersURL = "https://www.indiehackers.com/api/posts?sort=new&limit=50"

type indieHackersFeed struct {
	Posts []indieHackersPost `json:"posts"`
}

type indieHackersPost struct {
	ID           flexID   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Body         string   `json:"body"`
	Tagline      string   `json:"tagline"`
	CreatedAt    flexTime `json:"createdAt"`
	CommentCount int      `json:"commentCount"`
	VoteCount    int      `json:"voteCount"`
	Group        struct {
		Name string `json:"name"`
	} `json:"group"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// IndieHackers reads the newest Indie Hackers posts
type IndieHackers struct {
	Base
}

func NewIndieHackers(b Base) *IndieHackers { return &IndieHackers{Base: b} }

func (ih *IndieHackers) Label() string { return "Indie Hackers" }

func (ih *IndieHackers) Fetch(ctx context.Context) ([]models.Post, error) {
	var feed indieHackersFeed
	if err := ih.Client.GetJSON(ctx, indieHackersURL, &feed); err != nil {
		return nil, fmt.Errorf("failed to fetch Indie Hackers: %w", err)
	}

	now := ih.now()
	var posts []models.Post
	for _, p := range feed.Posts {
		created := p.CreatedAt.Time
		if !ih.fresh(created, now) || p.CommentCount > ih.Scan.ArticleMaxComments {
			continue
		}

		body := stripHTML(p.Body)
		matched := scoring.MatchKeywords(p.Title + " " + body + " " + p.Tagline)
		if len(matched) == 0 {
			continue
		}

		id := string(p.ID)
		posts = append(posts, models.Post{
			ID:              "ih_" + id,
			SourceLabel:     "IH:" + orDefault(p.Group.Name, "general"),
			Title:           p.Title,
			BodyExcerpt:     ih.excerpt(orDefault(body, p.Tagline)),
			URL:             "https://www.indiehackers.com/post/" + orDefault(p.Slug, id),
			Author:          orDefault(p.User.Username, "[deleted]"),
			UpvoteCount:     p.VoteCount,
			CommentCount:    p.CommentCount,
			CreatedAt:       unixSeconds(created),
			MatchedKeywords: matched,
			RelevanceScore:  ih.relevance(p.Title, p.CommentCount, created, now, matched),
		})
	}
	return posts, nil
}

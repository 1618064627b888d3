package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const (
	hnFirebaseURL = "https://hacker-news.firebaseio.com/v0"
	hnItemURL     = "https://news.ycombinator.com/item?id="

	askHNBonus = 15
)

type hnItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Time        int64  `json:"time"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// HackerNews reads the newest stories and keeps the discussion posts
type HackerNews struct {
	Base
}

// NewHackerNews creates the Hacker News adapter
func NewHackerNews(b Base) *HackerNews {
	return &HackerNews{Base: b}
}

func (h *HackerNews) Label() string { return "Hacker News" }

// Fetch walks the first stories of newstories.json one item at a time. A
// failed item is logged and skipped. Ask HN posts are always kept and get
// a fixed bonus.
func (h *HackerNews) Fetch(ctx context.Context) ([]models.Post, error) {
	var ids []int64
	if err := h.Client.GetJSON(ctx, hnFirebaseURL+"/newstories.json", &ids); err != nil {
		return nil, fmt.Errorf("failed to fetch Hacker News story ids: %w", err)
	}
	if len(ids) > h.Scan.HNStoryLimit {
		ids = ids[:h.Scan.HNStoryLimit]
	}

	now := h.now()
	var posts []models.Post
	for _, id := range ids {
		var item *hnItem
		if err := h.Client.GetJSON(ctx, fmt.Sprintf("%s/item/%d.json", hnFirebaseURL, id), &item); err != nil {
			h.skipItem("Hacker News", fmt.Sprint(id), err)
			continue
		}
		if post, ok := h.convert(item, now); ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (h *HackerNews) convert(item *hnItem, now time.Time) (models.Post, bool) {
	if item == nil || item.Type != "story" || item.Dead || item.Deleted {
		return models.Post{}, false
	}

	created := time.Unix(item.Time, 0)
	if !h.fresh(created, now) || item.Descendants > h.Scan.MaxComments {
		return models.Post{}, false
	}

	isAsk := strings.HasPrefix(item.Title, "Ask HN:")
	isShow := strings.HasPrefix(item.Title, "Show HN:")
	if !isAsk && item.URL != "" {
		return models.Post{}, false
	}

	text := stripHTML(item.Text)
	matched := scoring.MatchKeywords(item.Title + " " + text)
	if len(matched) == 0 && !isAsk {
		return models.Post{}, false
	}

	score := h.relevance(item.Title, item.Descendants, created, now, matched)
	label := "HN"
	switch {
	case isAsk:
		label = "HN:Ask"
		score += askHNBonus
	case isShow:
		label = "HN:Show"
	}
	if len(matched) == 0 {
		matched = []string{"ask-hn"}
	}

	return models.Post{
		ID:              fmt.Sprintf("hn_%d", item.ID),
		SourceLabel:     label,
		Title:           item.Title,
		BodyExcerpt:     h.excerpt(text),
		URL:             fmt.Sprintf("%s%d", hnItemURL, item.ID),
		Author:          orDefault(item.By, "[deleted]"),
		UpvoteCount:     item.Score,
		CommentCount:    item.Descendants,
		CreatedAt:       float64(item.Time),
		MatchedKeywords: matched,
		RelevanceScore:  score,
	}, true
}

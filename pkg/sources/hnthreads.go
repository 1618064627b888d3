package sources

import (
	"context"
	"fmt"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const algoliaURL = "https://hn.algolia.com/api/v1"

// ThreadKind selects which monthly Hacker News thread to read
type ThreadKind int

const (
	WhoIsHiring ThreadKind = iota
	Freelancer
)

type threadSpec struct {
	label    string
	search   string
	idPrefix string
	query    string
	score    func(text string) (int, bool)
}

var threadSpecs = map[ThreadKind]threadSpec{
	WhoIsHiring: {
		label:    "Hacker News: Who is hiring?",
		search:   "Ask%20HN:%20Who%20is%20hiring",
		idPrefix: "hn-",
		query:    "Who is hiring?",
		score:    scoring.WhoIsHiring,
	},
	Freelancer: {
		label:    "Hacker News: Freelancer thread",
		search:   "Ask%20HN:%20Freelancer",
		idPrefix: "hn-freelance-",
		query:    "Freelancer thread",
		score:    scoring.FreelancerThread,
	},
}

type algoliaSearch struct {
	Hits []struct {
		ObjectID string `json:"objectID"`
		Title    string `json:"title"`
	} `json:"hits"`
}

type algoliaItem struct {
	Children []struct {
		ID         int64  `json:"id"`
		Author     string `json:"author"`
		Text       string `json:"text"`
		CreatedAtI int64  `json:"created_at_i"`
	} `json:"children"`
}

// HNThread turns the top-level comments of the latest "Who is hiring?" or
// "Freelancer?" thread into prospects
type HNThread struct {
	Base
	Kind ThreadKind
}

func NewHNThread(b Base, kind ThreadKind) *HNThread {
	return &HNThread{Base: b, Kind: kind}
}

func (h *HNThread) Label() string { return threadSpecs[h.Kind].label }

func (h *HNThread) Fetch(ctx context.Context) ([]models.Prospect, error) {
	spec := threadSpecs[h.Kind]

	var search algoliaSearch
	searchURL := fmt.Sprintf("%s/search_by_date?query=%s&tags=story&hitsPerPage=1", algoliaURL, spec.search)
	if err := h.Client.GetJSON(ctx, searchURL, &search); err != nil {
		return nil, fmt.Errorf("failed to find %q thread: %w", spec.query, err)
	}
	if len(search.Hits) == 0 {
		return nil, nil
	}

	thread := search.Hits[0]
	threadURL := hnItemURL + thread.ObjectID

	var item algoliaItem
	if err := h.Client.GetJSON(ctx, fmt.Sprintf("%s/items/%s", algoliaURL, thread.ObjectID), &item); err != nil {
		return nil, fmt.Errorf("failed to fetch thread %s: %w", thread.ObjectID, err)
	}

	children := item.Children
	if len(children) > h.Scan.HNThreadLimit {
		children = children[:h.Scan.HNThreadLimit]
	}

	now := h.now()
	var prospects []models.Prospect
	for _, c := range children {
		if c.Text == "" {
			continue
		}
		text := stripHTML(c.Text)
		score, keep := spec.score(text)
		if !keep || score == 0 {
			continue
		}

		title := truncate(text, 120)
		if title != text {
			title += "..."
		}

		created := float64(c.CreatedAtI)
		if c.CreatedAtI == 0 {
			created = unixSeconds(now)
		}

		prospects = append(prospects, models.Prospect{
			ID:            fmt.Sprintf("%s%d", spec.idPrefix, c.ID),
			SourceKind:    models.SourceLinkAggregator,
			SourceLabel:   "Hacker News",
			Title:         title,
			BodyExcerpt:   h.excerpt(text),
			URL:           fmt.Sprintf("%s%d", hnItemURL, c.ID),
			Author:        orDefault(c.Author, "unknown"),
			CreatedAt:     created,
			ProspectScore: score,
			SearchQuery:   spec.query,
			IsHiring:      true,
			ThreadTitle:   thread.Title,
			ThreadURL:     threadURL,
		})
	}
	return prospects, nil
}

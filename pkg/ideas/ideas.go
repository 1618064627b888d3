// Package ideas answers questions about the engagement catalog: which
// discussion ideas fit a subreddit, which communities are related, and
// where to post next.
package ideas

import (
	"math/rand/v2"
	"slices"

	"devscout/pkg/catalog"
	"devscout/pkg/models"
)

// Subreddits returns the engagement subreddit names in catalog order
func Subreddits() []string {
	subs := catalog.EngagementSubreddits()
	names := make([]string, len(subs))
	for i, s := range subs {
		names[i] = s.Name
	}
	return names
}

// RelatedSubreddits returns the communities related to subreddit, or nil
// when it is not an engagement subreddit. Names match exactly.
func RelatedSubreddits(subreddit string) []string {
	for _, s := range catalog.EngagementSubreddits() {
		if s.Name == subreddit {
			return s.Related
		}
	}
	return nil
}

// ForCategory returns the ideas of one category, or every idea when
// category is empty
func ForCategory(category string) []models.IdeaTemplate {
	if category == "" {
		return catalog.AllIdeas()
	}
	return catalog.IdeasInCategory(category)
}

// ForSubreddit returns every idea that lists subreddit, annotated with its
// category, in catalog order
func ForSubreddit(subreddit string) []models.IdeaTemplate {
	var out []models.IdeaTemplate
	for _, idea := range catalog.AllIdeas() {
		if slices.Contains(idea.Subreddits, subreddit) {
			out = append(out, idea)
		}
	}
	return out
}

// Picker chooses engagement subreddits at random
type Picker struct {
	rng *rand.Rand
}

// NewPicker creates a picker. A nil rng uses a randomly seeded source.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{rng: rng}
}

// RandomSubreddit returns one engagement subreddit
func (p *Picker) RandomSubreddit() string {
	names := Subreddits()
	return names[p.rng.IntN(len(names))]
}

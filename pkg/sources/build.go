package sources

import (
	"devscout/pkg/aggregator"
	"devscout/pkg/catalog"
	"devscout/pkg/config"
	"devscout/pkg/models"
)

// SubredditSources returns one adapter per subreddit, in order
func SubredditSources(b Base, subreddits []string) []aggregator.Source[models.Post] {
	list := make([]aggregator.Source[models.Post], 0, len(subreddits))
	for _, name := range subreddits {
		list = append(list, NewSubreddit(b, name))
	}
	return list
}

// NewsSources returns the non-Reddit post sources in their fixed order
func NewsSources(b Base) []aggregator.Source[models.Post] {
	return []aggregator.Source[models.Post]{
		NewHackerNews(b),
		NewLobsters(b),
		NewDevTo(b),
		NewHashnode(b),
		NewIndieHackers(b),
		NewTildes(b),
	}
}

// ProspectSources returns the Reddit searches followed by the two Hacker
// News thread adapters
func ProspectSources(b Base, searches []catalog.ProspectSearch) []aggregator.Source[models.Prospect] {
	list := make([]aggregator.Source[models.Prospect], 0, len(searches)+2)
	for _, s := range searches {
		list = append(list, NewProspectSearch(b, s.Subreddit, s.Query))
	}
	return append(list, NewHNThread(b, WhoIsHiring), NewHNThread(b, Freelancer))
}

// IssueSources returns one GitHub search per configured label
func IssueSources(b Base, gh config.GitHubConfig) []aggregator.Source[models.Issue] {
	list := make([]aggregator.Source[models.Issue], 0, len(gh.Labels))
	for _, label := range gh.Labels {
		list = append(list, NewGitHubLabel(b, label, gh.Languages, gh.PerPage))
	}
	return list
}

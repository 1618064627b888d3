package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
)

const githubSearchURL = "https://api.github.com/search/issues"

var repoPattern = regexp.MustCompile(`repos/(.+)$`)

type githubSearch struct {
	Items []githubIssue `json:"items"`
}

type githubIssue struct {
	ID            int64    `json:"id"`
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Body          string   `json:"body"`
	HTMLURL       string   `json:"html_url"`
	RepositoryURL string   `json:"repository_url"`
	Comments      int      `json:"comments"`
	CreatedAt     flexTime `json:"created_at"`
	User          struct {
		Login string `json:"login"`
	} `json:"user"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

// GitHubLabel searches open issues carrying one label in the configured
// languages
type GitHubLabel struct {
	Base
	Name      string
	Languages []string
	PerPage   int
}

func NewGitHubLabel(b Base, label string, languages []string, perPage int) *GitHubLabel {
	return &GitHubLabel{Base: b, Name: label, Languages: languages, PerPage: perPage}
}

func (g *GitHubLabel) Label() string { return g.Name }

func (g *GitHubLabel) searchURL() string {
	terms := []string{"label:" + g.Name, "state:open"}
	for _, lang := range g.Languages {
		terms = append(terms, "language:"+lang)
	}
	return fmt.Sprintf("%s?q=%s&sort=created&order=desc&per_page=%d",
		githubSearchURL, strings.Join(terms, "+"), g.PerPage)
}

func (g *GitHubLabel) Fetch(ctx context.Context) ([]models.Issue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.searchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	var result githubSearch
	if err := g.Client.DoJSON(req, &result); err != nil {
		return nil, fmt.Errorf("failed to search issues labelled %s: %w", g.Name, err)
	}

	now := g.now()
	issues := make([]models.Issue, 0, len(result.Items))
	for _, it := range result.Items {
		repo := "unknown"
		if m := repoPattern.FindStringSubmatch(it.RepositoryURL); m != nil {
			repo = m[1]
		}

		labels := make([]string, 0, len(it.Labels))
		for _, l := range it.Labels {
			labels = append(labels, l.Name)
		}

		score := scoring.Issue(scoring.IssueInput{
			CommentCount: it.Comments,
			CreatedAt:    it.CreatedAt.Time,
			Labels:       labels,
		}, now)

		issues = append(issues, models.Issue{
			ID:             it.ID,
			Number:         it.Number,
			Title:          it.Title,
			BodyExcerpt:    g.excerpt(it.Body),
			URL:            it.HTMLURL,
			RepoFullName:   repo,
			RepoURL:        "https://github.com/" + repo,
			Author:         orDefault(it.User.Login, "[deleted]"),
			CommentCount:   it.Comments,
			Labels:         labels,
			CreatedAt:      it.CreatedAt.Time,
			RelevanceScore: score,
		})
	}
	return issues, nil
}

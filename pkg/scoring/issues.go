package scoring

import (
	"slices"
	"time"
)

// IssueInput is the part of a GitHub issue its score depends on
type IssueInput struct {
	CommentCount int
	CreatedAt    time.Time
	Labels       []string
}

// Issue favours quiet, fresh issues labelled good-first-issue
func Issue(in IssueInput, now time.Time) float64 {
	score := 0

	switch {
	case in.CommentCount <= 2:
		score += 30
	case in.CommentCount <= 5:
		score += 15
	}

	ageHours := now.Sub(in.CreatedAt).Hours()
	switch {
	case ageHours <= 24:
		score += 30
	case ageHours <= 72:
		score += 20
	case ageHours <= 168:
		score += 10
	}

	if slices.Contains(in.Labels, "good-first-issue") {
		score += 20
	}

	return float64(score)
}

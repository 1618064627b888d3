package scoring

import (
	"strings"
	"time"

	"devscout/pkg/catalog"
)

var (
	keywords      = catalog.TargetKeywords()
	interrogative = []string{"how", "help", "advice", "need", "looking for", "?"}
)

// RelevanceInput is the part of a post the relevance score depends on
type RelevanceInput struct {
	Title           string
	CommentCount    int
	CreatedAt       time.Time
	MatchedKeywords []string
}

// MatchKeywords returns the target keywords found in text, in keyword table
// order. Matching is a case-insensitive substring test.
func MatchKeywords(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Relevance scores a post for outreach value. The components are summed:
//
//	keyword density  min(matches*10, 40)
//	question title   +20
//	few comments     +20 (<=3) | +10 (<=7) | +5 (<=15)
//	recency          +20 (<=2h) | +15 (<=6h) | +10 (<=12h) | +5 (<=24h)
func Relevance(in RelevanceInput, now time.Time) float64 {
	score := min(len(in.MatchedKeywords)*10, 40)

	if containsAny(strings.ToLower(in.Title), interrogative) {
		score += 20
	}

	switch {
	case in.CommentCount <= 3:
		score += 20
	case in.CommentCount <= 7:
		score += 10
	case in.CommentCount <= 15:
		score += 5
	}

	ageHours := now.Sub(in.CreatedAt).Hours()
	switch {
	case ageHours <= 2:
		score += 20
	case ageHours <= 6:
		score += 15
	case ageHours <= 12:
		score += 10
	case ageHours <= 24:
		score += 5
	}

	return float64(score)
}

// WithinWindow reports whether a record created at created is strictly
// younger than window. A record exactly window old is outside.
func WithinWindow(created, now time.Time, window time.Duration) bool {
	return now.Sub(created) < window
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func countContained(s string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			n++
		}
	}
	return n
}

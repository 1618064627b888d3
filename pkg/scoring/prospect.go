package scoring

import (
	"strings"
	"time"
)

var competitorPatterns = []string{
	"[for hire]", "[offer]", "for hire",
	"i will build", "i will create", "i will scrape",
	"my services", "hire me", "available for",
	"looking for clients", "seeking clients",
}

// Explicit hiring intent. Each match adds 15 and matches stack without a cap.
var goldKeywords = []string{
	"looking for developer", "need developer", "need a developer", "hire developer",
	"looking for freelancer", "need freelancer", "hire freelancer",
	"looking for contractor", "need contractor",
	"technical cofounder", "tech cofounder", "tech partner",
	"looking for programmer", "need programmer",
}

// Pain points and automation needs
var highValueKeywords = []string{
	"spreadsheet", "automation", "automate", "manual data", "manual entry",
	"tedious", "repetitive", "time consuming", "hours per week",
	"csv", "excel", "integration", "api", "webhook", "script",
	"non-technical", "non technical", "bottleneck", "broken process",
	"copy paste", "data entry", "sync data", "sync inventory",
	"scrape", "scraping", "data extraction",
}

// General development needs
var midValueKeywords = []string{
	"software", "app", "tool", "help", "build", "create",
	"cofounder", "technical", "programmer", "developer",
	"mvp", "prototype", "custom", "limitations", "workaround",
	"outsource", "virtual assistant", "freelance",
}

// Tools people outgrow
var toolKeywords = []string{
	"zapier", "make.com", "integromat", "n8n", "bubble", "webflow",
	"nocode", "no-code", "lowcode", "low-code", "airtable", "notion",
}

// ProspectInput is the part of a lead the prospect score depends on
type ProspectInput struct {
	Title        string
	Body         string
	CommentCount int
	UpvoteCount  int
	CreatedAt    time.Time
}

// IsCompetitor reports whether a title advertises services rather than
// asking for them
func IsCompetitor(title string) bool {
	return containsAny(strings.ToLower(title), competitorPatterns)
}

// IsHiring reports whether a title carries the [hiring] tag
func IsHiring(title string) bool {
	return strings.Contains(strings.ToLower(title), "[hiring]")
}

// Prospect scores a lead. Competitor titles score exactly 0 regardless of
// anything else in the post.
func Prospect(in ProspectInput, now time.Time) int {
	if IsCompetitor(in.Title) {
		return 0
	}

	title := strings.ToLower(in.Title)
	combined := title + " " + strings.ToLower(in.Body)
	score := 0

	if strings.Contains(title, "[hiring]") || strings.Contains(title, "[task]") {
		score += 30
	}

	score += 15 * countContained(combined, goldKeywords)
	score += 10 * countContained(combined, highValueKeywords)
	score += 5 * countContained(combined, midValueKeywords)
	score += 3 * countContained(combined, toolKeywords)

	if in.CommentCount > 10 {
		score += 5
	}
	if in.UpvoteCount > 20 {
		score += 5
	}

	ageHours := now.Sub(in.CreatedAt).Hours()
	switch {
	case ageHours <= 24:
		score += 10
	case ageHours <= 72:
		score += 5
	}

	return score
}

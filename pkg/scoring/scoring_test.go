package scoring

import (
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func hoursAgo(h float64) time.Time {
	return now.Add(-time.Duration(h * float64(time.Hour)))
}

func TestMatchKeywordsKeepsTableOrder(t *testing.T) {
	got := MatchKeywords("How do I INTEGRATE Stripe webhooks?")
	want := []string{"integrate", "webhook", "how do i"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MatchKeywords() mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, MatchKeywords("A photo of my cat"))
}

func TestRelevance(t *testing.T) {
	in := RelevanceInput{
		Title:           "How do I integrate Stripe webhooks?",
		CommentCount:    0,
		CreatedAt:       hoursAgo(1),
		MatchedKeywords: []string{"integrate", "webhook", "how do i"},
	}
	assert.Equal(t, 90.0, Relevance(in, now))
}

func TestRelevanceKeywordCap(t *testing.T) {
	in := RelevanceInput{
		Title:           "Report",
		CommentCount:    100,
		CreatedAt:       hoursAgo(48),
		MatchedKeywords: []string{"a", "b", "c", "d", "e", "f"},
	}
	assert.Equal(t, 40.0, Relevance(in, now))
}

func TestRelevanceCommentTiers(t *testing.T) {
	tests := []struct {
		comments int
		want     float64
	}{
		{0, 20}, {3, 20}, {4, 10}, {7, 10}, {8, 5}, {15, 5}, {16, 0},
	}
	for _, tt := range tests {
		in := RelevanceInput{Title: "Report", CommentCount: tt.comments, CreatedAt: hoursAgo(48)}
		assert.Equal(t, tt.want, Relevance(in, now), "comments=%d", tt.comments)
	}
}

func TestRelevanceRecencyTiers(t *testing.T) {
	tests := []struct {
		age  time.Duration
		want float64
	}{
		{time.Minute, 20},
		{2 * time.Hour, 20},
		{2*time.Hour + time.Second, 15},
		{6 * time.Hour, 15},
		{12 * time.Hour, 10},
		{24 * time.Hour, 5},
		{24*time.Hour + time.Second, 0},
	}
	for _, tt := range tests {
		in := RelevanceInput{Title: "Report", CommentCount: 100, CreatedAt: now.Add(-tt.age)}
		assert.Equal(t, tt.want, Relevance(in, now), "age=%s", tt.age)
	}
}

func TestRelevanceIsDeterministic(t *testing.T) {
	in := RelevanceInput{Title: "Need advice", CommentCount: 5, CreatedAt: hoursAgo(7), MatchedKeywords: []string{"need advice"}}
	first := Relevance(in, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Relevance(in, now))
	}
}

func TestRelevanceScenario(t *testing.T) {
	type item struct {
		name  string
		score float64
	}
	inputs := []struct {
		name string
		in   RelevanceInput
	}{
		{"strong-a", RelevanceInput{Title: "Looking for a tool to automate invoices", CreatedAt: hoursAgo(1), MatchedKeywords: []string{"automate", "looking for", "tool for", "export"}}},
		{"plain", RelevanceInput{Title: "Weekly thread", CommentCount: 40, CreatedAt: hoursAgo(30), MatchedKeywords: []string{"sync"}}},
		{"strong-b", RelevanceInput{Title: "Best way to sync CRM data", CreatedAt: hoursAgo(1), MatchedKeywords: []string{"sync", "best way to", "api", "pipeline"}}},
		{"none-1", RelevanceInput{Title: "Gallery", CommentCount: 50, CreatedAt: hoursAgo(30)}},
		{"none-2", RelevanceInput{Title: "Meme", CommentCount: 50, CreatedAt: hoursAgo(30)}},
	}

	var items []item
	for _, in := range inputs {
		items = append(items, item{in.name, Relevance(in.in, now)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	assert.GreaterOrEqual(t, items[0].score, 80.0)
	assert.GreaterOrEqual(t, items[1].score, 80.0)
	assert.ElementsMatch(t, []string{"strong-a", "strong-b"}, []string{items[0].name, items[1].name})
	assert.Equal(t, "plain", items[2].name)
	assert.Equal(t, 10.0, items[2].score)
}

func TestWithinWindow(t *testing.T) {
	window := 24 * time.Hour
	assert.False(t, WithinWindow(now.Add(-window), now, window), "exactly at the boundary is excluded")
	assert.True(t, WithinWindow(now.Add(-window+time.Second), now, window))
	assert.False(t, WithinWindow(now.Add(-window-time.Second), now, window))
	assert.True(t, WithinWindow(now.Add(time.Minute), now, window))
}

func TestIsCompetitor(t *testing.T) {
	assert.True(t, IsCompetitor("[FOR HIRE] Python dev"))
	assert.True(t, IsCompetitor("I will build your MVP"))
	assert.True(t, IsCompetitor("Hire me for scraping"))
	assert.False(t, IsCompetitor("[Hiring] Python dev"))
}

func TestProspectCompetitorAlwaysZero(t *testing.T) {
	in := ProspectInput{
		Title:        "[Hiring] developer - also for hire",
		Body:         "need a developer for automation, spreadsheet, api, zapier",
		CommentCount: 50,
		UpvoteCount:  100,
		CreatedAt:    hoursAgo(1),
	}
	assert.Equal(t, 0, Prospect(in, now))
}

func TestProspect(t *testing.T) {
	in := ProspectInput{
		Title:        "[Task] spreadsheet cleanup",
		CommentCount: 11,
		UpvoteCount:  21,
		CreatedAt:    hoursAgo(48),
	}
	// 30 tag + 10 spreadsheet + 5 comments + 5 upvotes + 5 recency
	assert.Equal(t, 55, Prospect(in, now))
}

func TestProspectGoldKeywordsStackUncapped(t *testing.T) {
	in := ProspectInput{
		Title:     "Question",
		Body:      "tech partner, need contractor, looking for contractor",
		CreatedAt: hoursAgo(100),
	}
	assert.Equal(t, 45, Prospect(in, now))
}

func TestIsHiring(t *testing.T) {
	assert.True(t, IsHiring("[HIRING] Go engineer"))
	assert.False(t, IsHiring("hiring a Go engineer"))
}

func TestWhoIsHiring(t *testing.T) {
	score, keep := WhoIsHiring("Acme | Remote | Python backend engineer | contract")
	assert.True(t, keep)
	// base 10 + remote 15 + contract 20 + 4 keywords * 3
	assert.Equal(t, 57, score)

	score, keep = WhoIsHiring("Onsite in Berlin, Go developers")
	assert.True(t, keep)
	assert.Equal(t, 10, score)

	_, keep = WhoIsHiring("Great coffee shop")
	assert.False(t, keep)
}

func TestFreelancerThread(t *testing.T) {
	score, keep := FreelancerThread("SEEKING FREELANCER - need a React dev for automation work")
	assert.True(t, keep)
	assert.Equal(t, 50, score)

	_, keep = FreelancerThread("Available for work, seeking new clients")
	assert.False(t, keep)

	_, keep = FreelancerThread("Just saying hi")
	assert.False(t, keep)
}

func TestIssue(t *testing.T) {
	assert.Equal(t, 80.0, Issue(IssueInput{CommentCount: 1, CreatedAt: hoursAgo(10), Labels: []string{"good-first-issue"}}, now))
	assert.Equal(t, 25.0, Issue(IssueInput{CommentCount: 4, CreatedAt: hoursAgo(100), Labels: []string{"help-wanted"}}, now))
	assert.Equal(t, 0.0, Issue(IssueInput{CommentCount: 9, CreatedAt: hoursAgo(200)}, now))
}

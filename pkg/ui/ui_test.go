package ui

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"devscout/pkg/aggregator"
	"devscout/pkg/models"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// capture routes package output into a buffer with styling off
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		SetNoColor(false)
		SetQuietMode(false)
	})
	return &buf
}

func TestQuietModeKeepsErrorsAndResults(t *testing.T) {
	buf := capture(t)
	SetQuietMode(true)
	assert.True(t, IsQuietMode())

	PrintLogo()
	PrintInfo("Kind", "posts")
	PrintSuccess("done")
	PrintWarning("careful")
	assert.Empty(t, buf.String())

	PrintError("failed to load config", errors.New("missing file"))
	RenderIdeas(nil)
	assert.Equal(t, "failed to load config: missing file\nNo ideas match.\n", buf.String())
}

func TestRenderPosts(t *testing.T) {
	buf := capture(t)
	RenderPosts([]models.Post{{
		SourceLabel:     "webdev",
		Title:           "Need help with Stripe",
		URL:             "https://reddit.com/r/webdev/1",
		UpvoteCount:     3,
		CommentCount:    2,
		CreatedAt:       float64(testNow.Add(-2 * time.Hour).Unix()),
		RelevanceScore:  87.5,
		MatchedKeywords: []string{"stripe", "help"},
	}}, testNow)

	out := buf.String()
	assert.Contains(t, out, "  1. [ 87.5] webdev  Need help with Stripe")
	assert.Contains(t, out, "2 comments, 3 points, 2h ago • stripe, help")
}

func TestRenderReplyThread(t *testing.T) {
	buf := capture(t)
	RenderReplyThread(models.NewReplyThread("p1", []models.UserComment{{
		Body:      "my comment",
		Permalink: "https://reddit.com/c1",
		Replies: []models.Reply{
			{Author: "bob", Body: "thanks"},
			{Author: "carol", Body: "why?", HasUserReply: true},
		},
		UnrepliedCount: 1,
	}}))

	out := buf.String()
	assert.Contains(t, out, "post p1 • 1 unanswered reply")
	assert.Contains(t, out, "    • u/bob: thanks")
	assert.Contains(t, out, "    ✓ u/carol: why?")
}

func TestRunProgress(t *testing.T) {
	buf := capture(t)
	p := NewRunProgress("posts")
	p.now = func() time.Time { return p.start.Add(75 * time.Second) }

	p.OnProgress(1, 2, "r/webdev")
	p.OnOutcome(aggregator.Outcome{Label: "r/webdev", Added: 3})
	p.OnProgress(2, 2, "r/golang")
	p.OnOutcome(aggregator.Outcome{Label: "r/golang", Err: errors.New("429")})
	p.Finish(3, aggregator.Completed, 2, 2)

	out := buf.String()
	assert.Contains(t, out, "posts [━━━━━━━━━━──────────] 1/2 • 0 found • r/webdev")
	assert.Contains(t, out, "2/2 • 3 found • r/golang")
	assert.Contains(t, out, "✓ posts: 3 records from 2 sources in 1m15s")
	assert.Contains(t, out, "1 sources failed: r/golang")
	assert.Equal(t, []string{"r/golang"}, p.Failed())
}

func TestRunProgressPaused(t *testing.T) {
	buf := capture(t)
	p := NewRunProgress("prospects")
	p.Finish(4, aggregator.Paused, 7, 27)
	assert.Contains(t, buf.String(), "prospects paused at source 7/27 with 4 records")
	assert.Contains(t, buf.String(), "--resume")
}

func TestAge(t *testing.T) {
	assert.Equal(t, "just now", Age(testNow.Add(-10*time.Second), testNow))
	assert.Equal(t, "5m ago", Age(testNow.Add(-5*time.Minute), testNow))
	assert.Equal(t, "30h ago", Age(testNow.Add(-30*time.Hour), testNow))
	assert.Equal(t, "3d ago", Age(testNow.Add(-72*time.Hour), testNow))
}

type recordingSender struct {
	titles, messages []string
}

func (r *recordingSender) Send(title, message string) error {
	r.titles = append(r.titles, title)
	r.messages = append(r.messages, message)
	return errors.New("no display")
}

func TestNotifier(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifierWithSender(sender)

	n.RunComplete("prospects", 12, 2)
	n.Unanswered(0)
	n.Unanswered(3)

	assert.Equal(t, []string{"12 prospects found, 2 sources failed", "3 replies waiting for an answer"}, sender.messages)

	disabled := NewNotifier(false)
	disabled.sender = sender
	disabled.RunComplete("posts", 1, 0)
	assert.Len(t, sender.messages, 2)
}

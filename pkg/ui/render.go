package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"devscout/pkg/models"
)

// Rendered results are printed even in quiet mode.

// RenderPosts prints ranked posts
func RenderPosts(posts []models.Post, now time.Time) {
	w := writer()
	if len(posts) == 0 {
		fmt.Fprintln(w, Dim("No matching posts."))
		return
	}
	for i, p := range posts {
		fmt.Fprintf(w, "%3d. %s %s  %s\n", i+1,
			Yellow(fmt.Sprintf("[%5.1f]", p.RelevanceScore)), Cyan(p.SourceLabel), Bold(p.Title))
		details := fmt.Sprintf("%d comments, %d points, %s", p.CommentCount, p.UpvoteCount, Age(p.Created(), now))
		if len(p.MatchedKeywords) > 0 {
			details += " • " + strings.Join(p.MatchedKeywords, ", ")
		}
		fmt.Fprintf(w, "      %s\n      %s\n", p.URL, Dim(details))
	}
}

// RenderProspects prints ranked prospects, hiring posts flagged
func RenderProspects(prospects []models.Prospect, now time.Time) {
	w := writer()
	if len(prospects) == 0 {
		fmt.Fprintln(w, Dim("No prospects found."))
		return
	}
	for i, p := range prospects {
		flag := ""
		if p.IsHiring {
			flag = Green(" HIRING")
		}
		fmt.Fprintf(w, "%3d. %s%s %s  %s\n", i+1,
			Yellow(fmt.Sprintf("[%3d]", p.ProspectScore)), flag, Cyan(p.SourceLabel), Bold(p.Title))
		fmt.Fprintf(w, "      %s\n      %s\n", p.URL,
			Dim(fmt.Sprintf("u/%s • %s • %s", p.Author, p.SearchQuery, Age(p.Created(), now))))
	}
}

// RenderIssues prints ranked GitHub issues
func RenderIssues(issues []models.Issue, now time.Time) {
	w := writer()
	if len(issues) == 0 {
		fmt.Fprintln(w, Dim("No open issues found."))
		return
	}
	for i, is := range issues {
		fmt.Fprintf(w, "%3d. %s %s #%d  %s\n", i+1,
			Yellow(fmt.Sprintf("[%3.0f]", is.RelevanceScore)), Cyan(is.RepoFullName), is.Number, Bold(is.Title))
		fmt.Fprintf(w, "      %s\n      %s\n", is.URL,
			Dim(fmt.Sprintf("id %d • %d comments • %s • %s", is.ID, is.CommentCount, strings.Join(is.Labels, ", "), Age(is.CreatedAt, now))))
	}
}

// RenderReplyThread prints the tracked user's comments on one post with
// the replies they received. Replies the user has not answered are marked.
func RenderReplyThread(thread models.ReplyThread) {
	w := writer()
	fmt.Fprintf(w, "%s %s • %s\n", Magenta("post"), thread.PostID,
		unrepliedLabel(thread.TotalUnreplied))
	if len(thread.Comments) == 0 {
		fmt.Fprintln(w, Dim("  no comments by the tracked user"))
		return
	}
	for _, c := range thread.Comments {
		fmt.Fprintf(w, "  %s %s\n", Cyan("›"), excerpt(c.Body, 80))
		fmt.Fprintf(w, "    %s\n", Dim(c.Permalink))
		renderReplies(w, c.Replies, "    ")
	}
}

// RenderReplies prints a flat list of replies
func RenderReplies(replies []models.Reply) {
	w := writer()
	if len(replies) == 0 {
		fmt.Fprintln(w, Dim("No replies yet."))
		return
	}
	renderReplies(w, replies, "")
}

func renderReplies(w io.Writer, replies []models.Reply, indent string) {
	for _, r := range replies {
		mark := Yellow("•")
		if r.HasUserReply {
			mark = Green("✓")
		}
		fmt.Fprintf(w, "%s%s u/%s: %s\n", indent, mark, r.Author, excerpt(r.Body, 80))
	}
}

func unrepliedLabel(n int) string {
	switch n {
	case 0:
		return Green("all answered")
	case 1:
		return Yellow("1 unanswered reply")
	default:
		return Yellow(fmt.Sprintf("%d unanswered replies", n))
	}
}

// RenderIdeas prints idea templates with their category and subreddits
func RenderIdeas(ideas []models.IdeaTemplate) {
	w := writer()
	if len(ideas) == 0 {
		fmt.Fprintln(w, Dim("No ideas match."))
		return
	}
	for _, idea := range ideas {
		subs := make([]string, len(idea.Subreddits))
		for i, s := range idea.Subreddits {
			subs[i] = "r/" + s
		}
		fmt.Fprintf(w, "%s %s\n    %s\n", Magenta("["+idea.Category+"]"), idea.Title,
			Dim(strings.Join(subs, " ")+" • "+strings.Join(idea.Tags, ", ")))
	}
}

// Age formats how long ago t was relative to now
func Age(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

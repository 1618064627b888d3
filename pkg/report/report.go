// Package report turns a prospect run into the plain-text lead reports:
// hot leads, warm leads and everything found, best first.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"devscout/pkg/models"
	"devscout/pkg/scoring"
	"devscout/pkg/storage"
)

const previewLength = 300

// File names of the reports
const (
	HotFile  = "HOT_LEADS.txt"
	WarmFile = "WARM_LEADS.txt"
	AllFile  = "ALL_PROSPECTS.txt"
)

// Leads splits a ranked prospect collection into report tiers
type Leads struct {
	Hot  []models.Prospect
	Warm []models.Prospect
	// All keeps competitors; Hot and Warm never contain them
	All                []models.Prospect
	CompetitorsRemoved int
	HotThreshold       int
	WarmThreshold      int
}

// Classify dedupes prospects by URL (first wins, order kept) and sorts
// them into tiers: hot scores at least hot, warm scores in [warm, hot)
func Classify(prospects []models.Prospect, hot, warm int) Leads {
	leads := Leads{HotThreshold: hot, WarmThreshold: warm}
	seen := make(map[string]bool, len(prospects))
	for _, p := range prospects {
		if seen[p.URL] {
			continue
		}
		seen[p.URL] = true
		leads.All = append(leads.All, p)

		if scoring.IsCompetitor(p.Title) {
			leads.CompetitorsRemoved++
			continue
		}
		switch {
		case p.ProspectScore >= hot:
			leads.Hot = append(leads.Hot, p)
		case p.ProspectScore >= warm:
			leads.Warm = append(leads.Warm, p)
		}
	}
	return leads
}

// Format writes one report
func Format(w io.Writer, heading string, prospects []models.Prospect, scraped time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", heading)
	fmt.Fprintf(&b, "Scraped: %s\n", scraped.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Found: %d posts\n\n", len(prospects))

	for i, p := range prospects {
		fmt.Fprintf(&b, "## %d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "- Author: %s\n", p.Author)
		fmt.Fprintf(&b, "- URL: %s\n", p.URL)
		fmt.Fprintf(&b, "- Date: %s | Score: %d | Comments: %d | Lead score: %d\n",
			p.Created().UTC().Format("2006-01-02 15:04"), p.UpvoteCount, p.CommentCount, p.ProspectScore)
		if p.ThreadTitle != "" {
			fmt.Fprintf(&b, "- Thread: %s\n", p.ThreadTitle)
		}
		if text := strings.Join(strings.Fields(p.BodyExcerpt), " "); text != "" {
			fmt.Fprintf(&b, "- Preview: %s...\n", preview(text))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func preview(text string) string {
	r := []rune(text)
	if len(r) > previewLength {
		r = r[:previewLength]
	}
	return string(r)
}

// Headings of the three reports
func (l Leads) headings() (hot, warm, all string) {
	hot = fmt.Sprintf("HOT LEADS (Score >= %d, competitors excluded)", l.HotThreshold)
	warm = fmt.Sprintf("WARM LEADS (Score %d-%d, competitors excluded)", l.WarmThreshold, l.HotThreshold-1)
	all = "ALL PROSPECTS (sorted by score)"
	return hot, warm, all
}

// Write stores the reports through m and returns the written file names.
// Empty hot and warm tiers are not written; the full report always is.
func Write(m *storage.Manager, leads Leads, scraped time.Time) ([]string, error) {
	hot, warm, all := leads.headings()
	reports := []struct {
		name     string
		heading  string
		items    []models.Prospect
		optional bool
	}{
		{HotFile, hot, leads.Hot, true},
		{WarmFile, warm, leads.Warm, true},
		{AllFile, all, leads.All, false},
	}

	var written []string
	for _, r := range reports {
		if r.optional && len(r.items) == 0 {
			continue
		}
		var buf bytes.Buffer
		if err := Format(&buf, r.heading, r.items, scraped); err != nil {
			return written, err
		}
		if err := m.WriteFile(r.name, &buf); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", r.name, err)
		}
		written = append(written, r.name)
	}
	return written, nil
}

package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"devscout/pkg/aggregator"
)

const barWidth = 20

// RunProgress prints a single progress line for an aggregator run and a
// summary when it ends. Its methods plug into the aggregator callbacks.
type RunProgress struct {
	mu      sync.Mutex
	kind    string
	current int
	total   int
	label   string
	added   int
	failed  []string
	start   time.Time
	now     func() time.Time
}

// NewRunProgress creates a progress display for a run of kind
func NewRunProgress(kind string) *RunProgress {
	return &RunProgress{kind: kind, start: time.Now(), now: time.Now}
}

// OnProgress is called before each source is fetched
func (p *RunProgress) OnProgress(current, total int, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current, p.total, p.label = current, total, label
	if IsQuietMode() {
		return
	}
	fmt.Fprintf(writer(), "\r%s\r%s", strings.Repeat(" ", 100), p.line())
}

// OnOutcome is called after each source
func (p *RunProgress) OnOutcome(o aggregator.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.added += o.Added
	if o.Err != nil {
		p.failed = append(p.failed, o.Label)
	}
}

func (p *RunProgress) line() string {
	filled := 0
	if p.total > 0 {
		filled = p.current * barWidth / p.total
	}
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
	line := fmt.Sprintf("%s [%s] %d/%d • %d found • %s",
		Cyan(p.kind), bar, p.current, p.total, p.added, p.label)
	if n := len(p.failed); n > 0 {
		line += " • " + Red(fmt.Sprintf("%d failed", n))
	}
	return line
}

// Finish prints the run summary from its counts. A paused run reports where
// it stopped so it can be resumed.
func (p *RunProgress) Finish(records int, state aggregator.State, cursor, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if IsQuietMode() {
		return
	}
	w := writer()
	elapsed := p.now().Sub(p.start)

	if state == aggregator.Paused {
		fmt.Fprintf(w, "\n\n%s %s paused at source %d/%d with %d records\n",
			Yellow("⏸"), p.kind, cursor, total, records)
		fmt.Fprintf(w, "  %s run again with --resume to continue\n", Dim("•"))
		return
	}

	fmt.Fprintf(w, "\n\n%s %s: %d records from %d sources in %s\n",
		Green("✓"), p.kind, records, total, formatDuration(elapsed))
	if len(p.failed) > 0 {
		fmt.Fprintf(w, "  %s %d sources failed: %s\n",
			Dim("•"), len(p.failed), strings.Join(p.failed, ", "))
	}
}

// Failed returns the labels of the sources that failed so far
func (p *RunProgress) Failed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.failed...)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

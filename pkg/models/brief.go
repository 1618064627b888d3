package models

import (
	"fmt"
	"strings"
)

// Brief formats the issue as a plain-text contribution request that can be
// pasted into a coding assistant or a note
func (i Issue) Brief() string {
	body := i.BodyExcerpt
	if body == "" {
		body = "No description provided."
	}

	var b strings.Builder
	b.WriteString("I found this GitHub issue I'd like to contribute to:\n")
	fmt.Fprintf(&b, "**Repo:** %s\n", i.RepoFullName)
	fmt.Fprintf(&b, "**Issue #%d:** %s\n", i.Number, i.Title)
	fmt.Fprintf(&b, "**URL:** %s\n", i.URL)
	fmt.Fprintf(&b, "**Labels:** %s\n\n", strings.Join(i.Labels, ", "))
	b.WriteString("**Description:**\n")
	b.WriteString(body)
	b.WriteString("\n\n---\n")
	b.WriteString("Please help me make a contribution to fix this issue. Clone the repo, understand the codebase, implement a fix, and create a pull request.")
	return b.String()
}

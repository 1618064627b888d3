// Package ui prints DevScout's terminal output: colored status lines,
// the progress line of a running scan, rendered result lists and desktop
// notifications. Styling uses lipgloss and can be turned off; quiet mode
// keeps only errors and results.
package ui

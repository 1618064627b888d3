package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ASCIILogo is printed before commands that talk to the network
const ASCIILogo = `
  ____              ____                  _
 |  _ \  _____   __/ ___|  ___ ___  _   _| |_
 | | | |/ _ \ \ / /\___ \ / __/ _ \| | | | __|
 | |_| |  __/\ V /  ___) | (_| (_) | |_| | |_
 |____/ \___| \_/  |____/ \___\___/ \__,_|\__|
`

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D7FF"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true)
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FFF87"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5FD7"))
	dim     = lipgloss.NewStyle().Faint(true)
	bold    = lipgloss.NewStyle().Bold(true)
)

var (
	mu      sync.RWMutex
	out     io.Writer = os.Stdout
	quiet   bool
	noColor bool
)

// SetOutput redirects everything the package prints
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetQuietMode suppresses everything except errors and rendered results
func SetQuietMode(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// IsQuietMode reports whether quiet mode is on
func IsQuietMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return quiet
}

// SetNoColor disables styling
func SetNoColor(nc bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = nc
}

func writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

func paint(s lipgloss.Style) func(string) string {
	return func(text string) string {
		mu.RLock()
		plain := noColor
		mu.RUnlock()
		if plain {
			return text
		}
		return s.Render(text)
	}
}

// Color functions for terminal output
var (
	Cyan    = paint(cyan)
	Yellow  = paint(yellow)
	Red     = paint(red)
	Green   = paint(green)
	Magenta = paint(magenta)
	Dim     = paint(dim)
	Bold    = paint(bold)
)

// PrintLogo prints the logo unless quiet
func PrintLogo() {
	if IsQuietMode() {
		return
	}
	fmt.Fprint(writer(), Cyan(ASCIILogo)+"\n")
}

// PrintError prints an error message. Errors are printed even when quiet.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprint(args[0])
	}
	fmt.Fprintln(writer(), Red(msg))
}

// PrintSuccess prints a success message
func PrintSuccess(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(writer(), Green(msg))
}

// PrintInfo prints a label/value pair
func PrintInfo(label string, value string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintf(writer(), "%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	if IsQuietMode() {
		return
	}
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprint(args[0])
	}
	fmt.Fprintln(writer(), Yellow(msg))
}

// PrintHighlight prints a highlighted message
func PrintHighlight(msg string) {
	if IsQuietMode() {
		return
	}
	fmt.Fprintln(writer(), Magenta(msg))
}

// Package ui holds terminal presentation helpers for the CLI: color/TTY
// detection and rendering of search highlight markers.
package ui

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/okazakilab/trackdash/internal/query"
)

const (
	ansiHighlight = "\x1b[7m" // reverse video
	ansiReset     = "\x1b[0m"
)

// stdoutIsTerminal is a variable so tests can force either outcome.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ColorEnabled reports whether highlight rendering should emit ANSI escapes.
// Precedence: NO_COLOR (https://no-color.org, any value) disables,
// CLICOLOR_FORCE=1 enables even without a TTY, CLICOLOR=0 disables, and
// otherwise color follows stdout being a terminal.
func ColorEnabled() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1":
		return true
	case strings.TrimSpace(os.Getenv("CLICOLOR")) == "0":
		return false
	}
	return stdoutIsTerminal()
}

var markReplacer = strings.NewReplacer(
	query.MarkOpen, ansiHighlight,
	query.MarkClose, ansiReset,
)

// RenderMarks converts the engine's <mark> spans to terminal highlighting
// when color is enabled, and strips them otherwise.
func RenderMarks(text string) string {
	if !ColorEnabled() {
		return query.StripMarks(text)
	}
	return markReplacer.Replace(text)
}

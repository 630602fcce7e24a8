// Package diagnostics renders a slice of ierrors.Diagnostic as
// human-readable, word-wrapped text for a CLI or log line, grounded on
// the teacher's use of rosed to wrap console output in engine.go.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/dekarrin/rosed"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/width"
)

// DefaultWidth is the column width diagnostics are wrapped to when no
// terminal width is known.
const DefaultWidth = 100

// Render formats every Diagnostic in diags, one per paragraph, wrapped
// to width (DefaultWidth is used if width <= 0).
func Render(diags []ierrors.Diagnostic, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(rosed.Edit(d.String()).Wrap(width).String())
		if d.Location != nil && d.Location.SourceLine != "" {
			sb.WriteString("\n")
			sb.WriteString(d.Location.SourceLine)
			sb.WriteString("\n")
			sb.WriteString(caretLine(d.Location.SourceLine, d.Location.StartColumn))
		}
	}
	return sb.String()
}

// caretLine builds a line of spaces followed by a single "^" aligned
// under column col of sourceLine, counting display width rather than
// rune count so a caret still lands under the right character when the
// line contains East-Asian wide runes, which render two terminal
// columns wide.
func caretLine(sourceLine string, col int) string {
	runes := []rune(sourceLine)
	if col > len(runes)+1 {
		col = len(runes) + 1
	}

	var pad int
	for _, r := range runes[:col-1] {
		pad += runeWidth(r)
	}
	return strings.Repeat(" ", pad) + "^"
}

// runeWidth returns the terminal display width of r: 2 for East-Asian
// wide and fullwidth runes, 1 for everything else.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Summary renders a trailing count-by-level line, e.g. "2 errors, 1
// warnings, 1 info (4 total).", with counts comma-grouped ("1,204"),
// or "no diagnostics." when diags is empty. Grounded on the teacher's
// informal end-of-run console messages.
func Summary(diags []ierrors.Diagnostic) string {
	var errs, warns, infos int
	for _, d := range diags {
		switch d.Level {
		case ierrors.Error:
			errs++
		case ierrors.Warn:
			warns++
		default:
			infos++
		}
	}

	if len(diags) == 0 {
		return "no diagnostics."
	}

	return fmt.Sprintf(
		"%s errors, %s warnings, %s info (%s total).",
		humanize.Comma(int64(errs)), humanize.Comma(int64(warns)), humanize.Comma(int64(infos)), humanize.Comma(int64(len(diags))),
	)
}

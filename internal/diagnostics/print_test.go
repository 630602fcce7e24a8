package diagnostics

import (
	"strings"
	"testing"

	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/stretchr/testify/assert"
)

func Test_Summary_countsByLevel(t *testing.T) {
	diags := []ierrors.Diagnostic{
		{Level: ierrors.Error, Message: "bad"},
		{Level: ierrors.Error, Message: "worse"},
		{Level: ierrors.Warn, Message: "careful"},
		{Level: ierrors.Info, Message: "fyi"},
	}

	summary := Summary(diags)
	assert.Contains(t, summary, "2")
	assert.Contains(t, summary, "errors")
	assert.Contains(t, summary, "1")
	assert.Contains(t, summary, "warnings")
}

func Test_Summary_empty(t *testing.T) {
	assert.Equal(t, "no diagnostics.", Summary(nil))
}

func Test_Render_includesSourceLineAndCaret(t *testing.T) {
	diags := []ierrors.Diagnostic{
		{
			Level:   ierrors.Error,
			Message: "unexpected token",
			File:    "test.fsh",
			Location: &ierrors.Location{
				StartLine: 3, StartColumn: 5, EndLine: 3, EndColumn: 5,
				SourceLine: "* bad ^^ rule",
			},
		},
	}

	out := Render(diags, 80)
	assert.True(t, strings.Contains(out, "* bad ^^ rule"))
	assert.True(t, strings.Contains(out, "^"), "rendered output should include a caret marker")
}

func Test_Render_omitsSourceLineWhenAbsent(t *testing.T) {
	diags := []ierrors.Diagnostic{
		{Level: ierrors.Warn, Message: "just a message", File: "test.fsh"},
	}

	out := Render(diags, 80)
	assert.Contains(t, out, "just a message")
}

func Test_caretLine_accountsForWideRunes(t *testing.T) {
	// "全角" is two East-Asian-wide runes, each two columns; the caret
	// under column 3 (the third rune, a plain ASCII character) should
	// be padded by 4 display columns, not 2 rune columns.
	line := "全角x"
	out := caretLine(line, 3)
	assert.Equal(t, strings.Repeat(" ", 4)+"^", out)
}

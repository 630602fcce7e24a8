// Package lex implements the FSH lexer: a state-free, priority-ordered,
// regex-driven tokenizer built around a RegisterClass/AddPattern/Lex
// pattern table, simplified because FSH's lexical grammar does not
// need lexer states — every pattern is tried in registration order
// against the remainder of the document.
package lex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// ErrorListener receives a human-readable message, the 1-based
// line/column at which a lexical error was detected, and the full text
// of the offending line. Lexing never aborts because of a reported
// error; it skips the offending rune and continues, returning a
// best-effort token stream.
type ErrorListener func(msg string, line, col int, fullLine string)

type patternAction struct {
	pattern *regexp.Regexp
	class   token.Class
	discard bool
}

// Lexer holds the ordered table of patterns used to tokenize FSH
// source. The zero value is not usable; call New.
type Lexer struct {
	patterns []patternAction
}

// New builds the FSH lexer with its fixed pattern table. The order
// patterns are added in is the order they are tried at each position;
// earlier patterns take priority, with priority implicit in
// registration order since FSH uses a single lexer state.
func New() *Lexer {
	lx := &Lexer{}

	lx.add(`^//[^\n]*`, token.Unknown, true) // line comment, discarded
	lx.add(`^[ \t\r]+`, token.Unknown, true) // intra-line whitespace, discarded
	lx.add(`^\n`, token.Unknown, true)       // newline, discarded (line-oriented but not significant to the grammar itself)

	lx.add(`^"""`, token.MultilineString, false) // handled specially by lexMultilineString
	lx.add(`^"(?:\\.|[^"\\])*"`, token.String, false)
	lx.add(`^/(?:\\.|[^/\\\n])+/`, token.Regex, false)
	lx.add(`^\^[A-Za-z][A-Za-z0-9.\[\]]*`, token.CaretSequence, false)
	lx.add(`^-?\d+\.\.(?:\d+|\*)`, token.Card, false)
	lx.add(`^\d{4}(?:-\d{2}(?:-\d{2}(?:T[\d:.+Z-]+)?)?)?`, token.Datetime, false)
	lx.add(`^\d{2}:\d{2}:\d{2}(?:\.\d+)?`, token.Time, false)
	lx.add(`^-?\d+(?:\.\d+)?`, token.Number, false)
	lx.add(`^'[^']*'`, token.Unit, false)
	lx.add(`^Reference\(`, token.Sequence, false) // "Reference(" is matched as one keyword sequence, '(' included
	lx.add(`^\?!`, token.ModifierFlag, false)
	lx.add(`^\*`, token.Star, false)
	lx.add(`^:`, token.Colon, false)
	lx.add(`^=`, token.Equals, false)
	lx.add(`^\[`, token.LBracket, false)
	lx.add(`^\]`, token.RBracket, false)
	lx.add(`^\|`, token.Pipe, false)
	lx.add(`^\(`, token.LParen, false)
	lx.add(`^\)`, token.RParen, false)
	lx.add(`^,`, token.Comma, false)
	lx.add(`^[A-Za-z_][A-Za-z0-9_\-]*#[^\s,]+`, token.Code, false)
	lx.add(`^#[^\s,]+`, token.Code, false)
	lx.add(`^[A-Za-z_][A-Za-z0-9_./\[\]:-]*`, token.Sequence, false)

	return lx
}

func (lx *Lexer) add(pattern string, class token.Class, discard bool) {
	lx.patterns = append(lx.patterns, patternAction{
		pattern: regexp.MustCompile(pattern),
		class:   class,
		discard: discard,
	})
}

// Lex tokenizes the entire source into a slice of Tokens, reporting
// each unrecognized character to the given listener (which may be nil).
// At each position the first pattern that matches, in registration
// order, wins; Code, Sequence, and Card ambiguity is settled by that
// order alone, with no backtracking.
func (lx *Lexer) Lex(source string, listener ErrorListener) []token.Token {
	var toks []token.Token

	lines := splitKeepLines(source)
	line, col := 1, 1
	rest := []rune(source)
	pos := 0

	lineOf := func(ln int) string {
		if ln-1 < len(lines) {
			return lines[ln-1]
		}
		return ""
	}

	for pos < len(rest) {
		remainder := string(rest[pos:])

		if strings.HasPrefix(remainder, `"""`) {
			tok, consumed, newLine, newCol := lexMultilineString(remainder, line, col, lineOf)
			toks = append(toks, tok)
			pos += consumed
			line, col = newLine, newCol
			continue
		}

		matched := false
		for _, pa := range lx.patterns {
			loc := pa.pattern.FindStringIndex(remainder)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := remainder[:loc[1]]
			matched = true

			runeLen := len([]rune(lexeme))
			if !pa.discard {
				toks = append(toks, token.New(pa.class, lexeme, line, col, lineOf(line)))
			}

			if strings.Contains(lexeme, "\n") {
				nl := strings.Count(lexeme, "\n")
				line += nl
				lastLine := lexeme[strings.LastIndex(lexeme, "\n")+1:]
				col = len([]rune(lastLine)) + 1
			} else {
				col += runeLen
			}
			pos += len([]rune(lexeme))
			break
		}

		if !matched {
			if listener != nil {
				listener(fmt.Sprintf("unrecognized character %q", rest[pos]), line, col, lineOf(line))
			}
			if rest[pos] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			pos++
		}
	}

	toks = append(toks, token.New(token.EOF, "", line, col, ""))
	return toks
}

func splitKeepLines(source string) []string {
	return strings.Split(source, "\n")
}

// lexMultilineString consumes a """...""" literal verbatim (dedenting
// and escape handling happen later in the visitor, not the lexer),
// tracking line/column across the embedded newlines.
func lexMultilineString(remainder string, line, col int, lineOf func(int) string) (token.Token, int, int, int) {
	startLine, startCol := line, col
	end := strings.Index(remainder[3:], `"""`)
	var lexeme string
	if end < 0 {
		lexeme = remainder
	} else {
		lexeme = remainder[:end+6]
	}

	nl := strings.Count(lexeme, "\n")
	newLine := line + nl
	newCol := col
	if nl > 0 {
		lastLine := lexeme[strings.LastIndex(lexeme, "\n")+1:]
		newCol = len([]rune(lastLine)) + 1
	} else {
		newCol = col + len([]rune(lexeme))
	}

	return token.New(token.MultilineString, lexeme, startLine, startCol, lineOf(startLine)), len([]rune(lexeme)), newLine, newCol
}

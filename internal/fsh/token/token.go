// Package token defines the lexical token classes produced by the FSH
// lexer.
package token

// Class identifies the lexical category of a Token. Unlike a full
// ANTLR-style grammar, FSH keywords (Profile, Parent, MS, from, ...) are
// not separate classes; they are ordinary Sequence tokens whose lexeme
// the parser compares against known keyword text. This mirrors spec
// section 4.1: "SEQUENCE: identifier-like token ... keywords of the
// meta-grammar."
type Class int

const (
	// Unknown is the zero value; never emitted by a correctly configured
	// lexer.
	Unknown Class = iota

	// Sequence is an identifier-like token: entity names, ids, aliases,
	// paths, and keywords of the meta-grammar.
	Sequence

	// String is a double-quoted string, supporting \" and \\ escapes.
	String

	// MultilineString is a triple-quoted string.
	MultilineString

	// Number is a decimal literal.
	Number

	// Datetime is an ISO-8601-shaped date or date-time literal.
	Datetime

	// Time is an ISO-8601-shaped time-of-day literal.
	Time

	// Card is a cardinality literal such as 0..1 or 1..*.
	Card

	// Regex is a /.../  delimited regular expression literal.
	Regex

	// Unit is a single-quoted UCUM unit symbol.
	Unit

	// Code is a SYSTEM#code or #code literal, optionally with a display.
	Code

	// Reference is a Reference(A|B|...) literal.
	Reference

	// CaretSequence is a ^path.to.attr caret path.
	CaretSequence

	// CommaDelimitedSequences is a comma-separated list of bare sequences.
	CommaDelimitedSequences

	// CommaDelimitedCodes is a comma-separated list of codes, tolerant of
	// quoted parts and optional descriptions.
	CommaDelimitedCodes

	// Star is the leading '*' that begins a rule line.
	Star

	// Colon ends a metadata key.
	Colon

	// Equals introduces a fixed value in a FixedValueRule.
	Equals

	// LBracket and RBracket delimit a contained-item suffix, e.g. path[item].
	LBracket
	RBracket

	// Pipe separates reference targets inside Reference(...).
	Pipe

	// LParen and RParen delimit Reference(...) argument lists.
	LParen
	RParen

	// Comma separates list items outside of comma-delimited literals.
	Comma

	// ModifierFlag represents the lone '?!' modifier-flag token.
	ModifierFlag

	// EOF marks the end of the token stream.
	EOF
)

func (c Class) String() string {
	switch c {
	case Sequence:
		return "SEQUENCE"
	case String:
		return "STRING"
	case MultilineString:
		return "MULTILINE_STRING"
	case Number:
		return "NUMBER"
	case Datetime:
		return "DATETIME"
	case Time:
		return "TIME"
	case Card:
		return "CARD"
	case Regex:
		return "REGEX"
	case Unit:
		return "UNIT"
	case Code:
		return "CODE"
	case Reference:
		return "REFERENCE"
	case CaretSequence:
		return "CARET_SEQUENCE"
	case CommaDelimitedSequences:
		return "COMMA_DELIMITED_SEQUENCES"
	case CommaDelimitedCodes:
		return "COMMA_DELIMITED_CODES"
	case Star:
		return "STAR"
	case Colon:
		return "COLON"
	case Equals:
		return "EQUALS"
	case LBracket:
		return "LBRACKET"
	case RBracket:
		return "RBRACKET"
	case Pipe:
		return "PIPE"
	case LParen:
		return "LPAREN"
	case RParen:
		return "RPAREN"
	case Comma:
		return "COMMA"
	case ModifierFlag:
		return "MODIFIER_FLAG"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token is a lexeme read from FSH source, combined with its Class and
// the source-location data needed to produce diagnostics and
// location-annotated IR nodes.
type Token struct {
	class Class
	text  string

	// line and col are 1-based, code-point counted (never byte
	// offsets): the column of a multi-byte character is one, not its
	// byte offset.
	line int
	col  int

	// fullLine holds the complete source line the token was found on, for
	// use in diagnostic rendering.
	fullLine string
}

// New creates a Token of the given class, lexeme text, and source
// position.
func New(class Class, text string, line, col int, fullLine string) Token {
	return Token{class: class, text: text, line: line, col: col, fullLine: fullLine}
}

func (t Token) Class() Class      { return t.class }
func (t Token) Lexeme() string    { return t.text }
func (t Token) Line() int         { return t.line }
func (t Token) LinePos() int      { return t.col }
func (t Token) FullLine() string  { return t.fullLine }

// EndCol returns the 1-based column of the last code point of the
// token's lexeme: end column = start column + token length - 1.
func (t Token) EndCol() int {
	n := 0
	for range t.text {
		n++
	}
	if n == 0 {
		return t.col
	}
	return t.col + n - 1
}

func (t Token) String() string {
	return t.class.String() + "(" + t.text + ")"
}

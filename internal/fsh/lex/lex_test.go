package lex

import (
	"testing"

	"github.com/dekarrin/fshimport/internal/fsh/token"
	"github.com/stretchr/testify/assert"
)

func classesOf(toks []token.Token) []token.Class {
	classes := make([]token.Class, len(toks))
	for i, t := range toks {
		classes[i] = t.Class()
	}
	return classes
}

func Test_Lex_tokenClasses(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []token.Class
	}{
		{name: "empty", input: "", expect: []token.Class{token.EOF}},
		{name: "star path card", input: "* name 1..1", expect: []token.Class{
			token.Star, token.Sequence, token.Card, token.EOF,
		}},
		{name: "comment discarded", input: "// a comment\n* active = true", expect: []token.Class{
			token.Star, token.Sequence, token.Equals, token.Sequence, token.EOF,
		}},
		{name: "quoted string", input: `Title: "My Title"`, expect: []token.Class{
			token.Sequence, token.String, token.EOF,
		}},
		{name: "code with system", input: "loinc#1234-5", expect: []token.Class{
			token.Code, token.EOF,
		}},
		{name: "bare code", input: "#active", expect: []token.Class{
			token.Code, token.EOF,
		}},
		{name: "caret sequence", input: "^short", expect: []token.Class{
			token.CaretSequence, token.EOF,
		}},
		{name: "reference literal", input: "Reference(Patient|Practitioner)", expect: []token.Class{
			token.Sequence, token.Sequence, token.Pipe, token.Sequence, token.RParen, token.EOF,
		}},
		{name: "quantity-shaped sequence", input: "5.4 'mg'", expect: []token.Class{
			token.Number, token.Unit, token.EOF,
		}},
		{name: "modifier flag", input: "?!", expect: []token.Class{
			token.ModifierFlag, token.EOF,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lx := New()
			toks := lx.Lex(tc.input, nil)
			assert.Equal(t, tc.expect, classesOf(toks))
		})
	}
}

func Test_Lex_multilineString(t *testing.T) {
	input := "\"\"\"\nline one\nline two\n\"\"\""
	lx := New()
	toks := lx.Lex(input, nil)
	require := assert.New(t)
	require.Len(toks, 2)
	require.Equal(token.MultilineString, toks[0].Class())
	require.Equal(token.EOF, toks[1].Class())
}

func Test_Lex_tracksLineAndColumn(t *testing.T) {
	input := "* a 1..1\n* b 0..*"
	lx := New()
	toks := lx.Lex(input, nil)

	// second line's leading star should be on line 2, column 1.
	var secondStar token.Token
	found := false
	for _, tok := range toks {
		if tok.Class() == token.Star && tok.Line() == 2 {
			secondStar = tok
			found = true
			break
		}
	}
	assert := assert.New(t)
	assert.True(found, "expected to find a Star token on line 2")
	assert.Equal(1, secondStar.LinePos())
}

func Test_Lex_reportsUnrecognizedCharacters(t *testing.T) {
	var msgs []string
	lx := New()
	toks := lx.Lex("* a 1..1 @", func(msg string, line, col int, fullLine string) {
		msgs = append(msgs, msg)
	})

	assert := assert.New(t)
	assert.NotEmpty(msgs)
	assert.Equal(token.EOF, toks[len(toks)-1].Class())
}

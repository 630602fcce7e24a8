// Package parser implements the grammar-driven FSH parser: it consumes
// a Token stream and produces an untyped parsetree.Tree, which a
// separate visitor later walks to build a typed IR. Grammar errors are
// reported through an ErrorListener and never abort parsing; the
// parser always returns its best-effort tree.
package parser

import (
	"fmt"

	"github.com/dekarrin/fshimport/internal/fsh/lex"
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// ErrorListener receives a human-readable message, the 1-based
// line/column of a detected syntax error, and the full text of the
// offending line.
type ErrorListener func(msg string, line, col int, fullLine string)

// Parser walks a Token stream by hand, recursive-descent style.
type Parser struct {
	toks     []token.Token
	pos      int
	listener ErrorListener
}

// Parse tokenizes and parses source text, returning the root "document"
// node of the concrete syntax tree.
func Parse(source string, listener ErrorListener) *parsetree.Tree {
	lexer := lex.New()
	toks := lexer.Lex(source, func(msg string, line, col int, fullLine string) {
		if listener != nil {
			listener(msg, line, col, fullLine)
		}
	})

	p := &Parser{toks: toks, listener: listener}
	return p.parseDocument()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) atEOF() bool {
	return p.cur().Class() == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...interface{}) {
	if p.listener == nil {
		return
	}
	t := p.cur()
	p.listener(fmt.Sprintf(format, args...), t.Line(), t.LinePos(), t.FullLine())
}

// expectClass consumes and returns the current token if it has class c,
// reporting a syntax error and returning the zero Token otherwise.
func (p *Parser) expectClass(c token.Class, what string) (token.Token, bool) {
	if p.cur().Class() != c {
		p.errorf("expected %s, found %s %q", what, p.cur().Class(), p.cur().Lexeme())
		return token.Token{}, false
	}
	return p.advance(), true
}

// isKeyword reports whether the current token is a Sequence whose
// lexeme equals one of the given keyword strings (case-sensitive, as
// FSH keywords are).
func (p *Parser) isKeyword(kws ...string) bool {
	if p.cur().Class() != token.Sequence {
		return false
	}
	lex := p.cur().Lexeme()
	for _, kw := range kws {
		if lex == kw {
			return true
		}
	}
	return false
}

// parseDocument parses entity* until EOF, skipping unrecognized tokens
// with an error diagnostic so that one bad entity does not prevent the
// rest of the document from being parsed.
func (p *Parser) parseDocument() *parsetree.Tree {
	doc := parsetree.Node("document")

	for !p.atEOF() {
		before := p.pos

		switch {
		case p.isKeyword("Alias:"):
			doc.Children = append(doc.Children, p.parseAlias())
		case p.isKeyword("Profile:"):
			doc.Children = append(doc.Children, p.parseStructureDef("profileEntity", false))
		case p.isKeyword("Extension:"):
			doc.Children = append(doc.Children, p.parseStructureDef("extensionEntity", true))
		case p.isKeyword("Instance:"):
			doc.Children = append(doc.Children, p.parseInstance())
		case p.isKeyword("ValueSet:"):
			doc.Children = append(doc.Children, p.parseValueSet())
		case p.isKeyword("CodeSystem:"):
			doc.Children = append(doc.Children, p.parseCodeSystem())
		case p.isKeyword("RuleSet:"):
			doc.Children = append(doc.Children, p.parseRuleSet())
		default:
			p.errorf("expected an entity declaration, found %s %q", p.cur().Class(), p.cur().Lexeme())
			p.advance()
		}

		if p.pos == before {
			// Safety valve: guarantee forward progress even if a parse
			// function reports an error without consuming anything.
			p.advance()
		}
	}

	return doc
}

// syncToNextEntityOrRule skips tokens until the next rule line ('*') or
// the next entity keyword, used for error recovery within an entity
// body.
func (p *Parser) syncToNextEntityOrRule() {
	for !p.atEOF() {
		if p.cur().Class() == token.Star {
			return
		}
		if p.isKeyword("Alias:", "Profile:", "Extension:", "Instance:", "ValueSet:", "CodeSystem:", "RuleSet:") {
			return
		}
		p.advance()
	}
}

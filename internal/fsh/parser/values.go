package parser

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// parseValue dispatches to the specific literal alternative based on
// the current token, in priority order: STRING, MULTILINE_STRING,
// NUMBER, DATETIME, TIME, REFERENCE, CODE, QUANTITY, RATIO, BOOL.
// QUANTITY and RATIO are not separate lexical classes here (they are
// built from NUMBER/UNIT/':' sequences), so they are resolved by
// lookahead once a NUMBER is seen.
func (p *Parser) parseValue() *parsetree.Tree {
	switch p.cur().Class() {
	case token.String:
		return parsetree.Node("stringValue", parsetree.Leaf(p.advance()))
	case token.MultilineString:
		return parsetree.Node("multilineStringValue", parsetree.Leaf(p.advance()))
	case token.Number:
		return p.parseNumericValue()
	case token.Datetime:
		return parsetree.Node("datetimeValue", parsetree.Leaf(p.advance()))
	case token.Time:
		return parsetree.Node("timeValue", parsetree.Leaf(p.advance()))
	case token.Code:
		return p.parseCodeValue()
	case token.Sequence:
		if p.cur().Lexeme() == "Reference(" {
			return p.parseReferenceLiteral()
		}
		if p.cur().Lexeme() == "true" || p.cur().Lexeme() == "false" {
			return parsetree.Node("boolValue", parsetree.Leaf(p.advance()))
		}
	}

	p.errorf("expected a value, found %s %q", p.cur().Class(), p.cur().Lexeme())
	return parsetree.Node("undefinedValue")
}

// parseCodeValue parses a CODE token, optionally followed by a display
// String.
func (p *Parser) parseCodeValue() *parsetree.Tree {
	code := p.advance()
	node := parsetree.Node("codeValue", parsetree.Leaf(code))
	if p.cur().Class() == token.String {
		node.Children = append(node.Children, parsetree.Leaf(p.advance()))
	}
	return node
}

// parseQuantityPart parses one NUMBER optionally followed by a UNIT,
// used both standalone and as one side of a Ratio.
func (p *Parser) parseQuantityPart() *parsetree.Tree {
	num, _ := p.expectClass(token.Number, "a number")
	node := parsetree.Node("quantityPart", parsetree.Leaf(num))
	if p.cur().Class() == token.Unit {
		node.Children = append(node.Children, parsetree.Leaf(p.advance()))
	}
	return node
}

// parseNumericValue resolves the NUMBER/UNIT/':' lookahead into a
// plain Number, Quantity, or Ratio value node.
func (p *Parser) parseNumericValue() *parsetree.Tree {
	first := p.parseQuantityPart()

	if p.cur().Class() == token.Colon {
		p.advance()
		second := p.parseQuantityPart()
		return parsetree.Node("ratioValue", first, second)
	}

	if len(first.Children) == 2 {
		return parsetree.Node("quantityValue", first.Children[0], first.Children[1])
	}

	return parsetree.Node("numberValue", first.Children[0])
}

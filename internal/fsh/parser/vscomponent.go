package parser

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// parseVsComponent parses one `* ...` line inside a ValueSet entity.
// The optional leading "exclude" keyword flips inclusion to false
// (absence means inclusion=true).
func (p *Parser) parseVsComponent() *parsetree.Tree {
	star := p.advance()

	var excludeLeaf *parsetree.Tree
	if p.isKeyword("exclude") {
		excludeLeaf = parsetree.Leaf(p.advance())
	}

	if p.isKeyword("codes") {
		kw := p.advance()
		node := parsetree.Node("vsFilterComponent", parsetree.Leaf(star))
		if excludeLeaf != nil {
			node.Children = append(node.Children, excludeLeaf)
		}
		node.Children = append(node.Children, parsetree.Leaf(kw))

		if !p.isKeyword("from") {
			p.errorf("filter components require a 'from' clause")
			p.syncToNextEntityOrRule()
			return node
		}
		node.Children = append(node.Children, p.parseFromClause())

		if !p.isKeyword("where") {
			p.errorf("filter components require a 'where' clause")
			p.syncToNextEntityOrRule()
			return node
		}
		p.advance()
		node.Children = append(node.Children, p.parseVsFilter())
		for p.isKeyword("and") {
			p.advance()
			node.Children = append(node.Children, p.parseVsFilter())
		}
		return node
	}

	// ConceptComponent: one or more codes, optionally followed by a
	// from-clause.
	node := parsetree.Node("vsConceptComponent", parsetree.Leaf(star))
	if excludeLeaf != nil {
		node.Children = append(node.Children, excludeLeaf)
	}

	codeTok, ok := p.expectClass(token.Code, "a code")
	if !ok {
		p.syncToNextEntityOrRule()
		return node
	}
	firstCode := []*parsetree.Tree{parsetree.Leaf(codeTok)}
	if p.cur().Class() == token.String {
		firstCode = append(firstCode, parsetree.Leaf(p.advance()))
	}
	node.Children = append(node.Children, parsetree.Node("vsCode", firstCode...))
	for p.cur().Class() == token.Comma {
		p.advance()
		codeTok, ok := p.expectClass(token.Code, "a code")
		if !ok {
			break
		}
		var extra []*parsetree.Tree
		extra = append(extra, parsetree.Leaf(codeTok))
		if p.cur().Class() == token.String {
			extra = append(extra, parsetree.Leaf(p.advance()))
		}
		node.Children = append(node.Children, parsetree.Node("vsCode", extra...))
	}

	if p.isKeyword("from") {
		node.Children = append(node.Children, p.parseFromClause())
	}

	return node
}

// parseFromClause parses `from system SYS`, `from valueset VS1, VS2`,
// or `from system SYS and valueset VS1, VS2`.
func (p *Parser) parseFromClause() *parsetree.Tree {
	kw := p.advance() // "from"
	node := parsetree.Node("fromClause", parsetree.Leaf(kw))

	parsePart := func() {
		switch {
		case p.isKeyword("system"):
			sysKw := p.advance()
			sys, ok := p.expectClass(token.Sequence, "a code system")
			if ok {
				node.Children = append(node.Children, parsetree.Node("fromSystem", parsetree.Leaf(sysKw), parsetree.Leaf(sys)))
			}
		case p.isKeyword("valueset", "valuesets"):
			vsKw := p.advance()
			list := parsetree.Node("fromValueSets", parsetree.Leaf(vsKw))
			for {
				vs, ok := p.expectClass(token.Sequence, "a value set name")
				if !ok {
					break
				}
				list.Children = append(list.Children, parsetree.Leaf(vs))
				if p.cur().Class() == token.Comma {
					p.advance()
					continue
				}
				break
			}
			node.Children = append(node.Children, list)
		default:
			p.errorf("expected 'system' or 'valueset' after 'from', found %s %q", p.cur().Class(), p.cur().Lexeme())
		}
	}

	parsePart()
	if p.isKeyword("and") {
		p.advance()
		parsePart()
	}

	return node
}

var filterOperatorWords = []string{
	"is-a", "descendent-of", "descendant-of", "is-not-a", "regex", "in", "not-in", "generalizes", "exists",
}

// parseVsFilter parses one `property operator [value]` filter
// expression.
func (p *Parser) parseVsFilter() *parsetree.Tree {
	prop, ok := p.expectClass(token.Sequence, "a filter property")
	if !ok {
		return parsetree.Node("vsFilter")
	}
	node := parsetree.Node("vsFilter", parsetree.Leaf(prop))

	var opTok token.Token
	switch {
	case p.cur().Class() == token.Equals:
		opTok = p.advance()
	case p.isKeyword(filterOperatorWords...):
		opTok = p.advance()
	default:
		p.errorf("expected a filter operator, found %s %q", p.cur().Class(), p.cur().Lexeme())
		return node
	}
	node.Children = append(node.Children, parsetree.Leaf(opTok))

	if opTok.Lexeme() == "exists" {
		// Value is optional for exists; if present it must be boolean.
		if p.isKeyword("true", "false") {
			node.Children = append(node.Children, parsetree.Node("boolValue", parsetree.Leaf(p.advance())))
		}
		return node
	}

	node.Children = append(node.Children, p.parseFilterValue())
	return node
}

// parseFilterValue parses the value half of a filter expression. Unlike
// parseValue, this does not attempt Quantity/Ratio disambiguation since
// filter values are always string, code, regex, or boolean (spec
// section 4.5bis's operator-to-type table).
func (p *Parser) parseFilterValue() *parsetree.Tree {
	switch p.cur().Class() {
	case token.String:
		return parsetree.Node("stringValue", parsetree.Leaf(p.advance()))
	case token.Code:
		return p.parseCodeValue()
	case token.Regex:
		return parsetree.Node("regexValue", parsetree.Leaf(p.advance()))
	case token.Sequence:
		if p.cur().Lexeme() == "true" || p.cur().Lexeme() == "false" {
			return parsetree.Node("boolValue", parsetree.Leaf(p.advance()))
		}
	}
	p.errorf("expected a filter value, found %s %q", p.cur().Class(), p.cur().Lexeme())
	return parsetree.Node("undefinedValue")
}

package parser

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
)

var flagWords = []string{"MS", "SU"}

func (p *Parser) atFlag() bool {
	if p.cur().Class() == token.ModifierFlag {
		return true
	}
	return p.isKeyword(flagWords...)
}

func (p *Parser) parseFlags() []*parsetree.Tree {
	var flags []*parsetree.Tree
	for p.atFlag() {
		flags = append(flags, parsetree.Leaf(p.advance()))
	}
	return flags
}

// parseRule parses one `* ...` rule line, dispatching on the tokens
// that follow the path. The returned tree's
// Symbol names the specific rule variant so the visitor can dispatch
// without re-deriving grammar structure.
func (p *Parser) parseRule() *parsetree.Tree {
	star := p.advance()

	// CaretValueRule with an empty path: "* ^caretPath = value".
	if p.cur().Class() == token.CaretSequence {
		caret := p.advance()
		node := parsetree.Node("caretValueRule", parsetree.Leaf(star), parsetree.Leaf(caret))
		if _, ok := p.expectClass(token.Equals, "'='"); !ok {
			p.syncToNextEntityOrRule()
			return node
		}
		node.Children = append(node.Children, p.parseValue())
		return node
	}

	if p.isKeyword("insert") {
		kw := p.advance()
		name, ok := p.expectClass(token.Sequence, "a rule set name")
		node := parsetree.Node("insertRule", parsetree.Leaf(star), parsetree.Leaf(kw))
		if ok {
			node.Children = append(node.Children, parsetree.Leaf(name))
		}
		return node
	}

	path, ok := p.expectClass(token.Sequence, "a path")
	if !ok {
		p.syncToNextEntityOrRule()
		return parsetree.Node("unrecognizedRule", parsetree.Leaf(star))
	}
	pathLeaf := parsetree.Leaf(path)

	switch {
	case p.cur().Class() == token.Card:
		card := p.advance()
		node := parsetree.Node("cardRule", parsetree.Leaf(star), pathLeaf, parsetree.Leaf(card))
		node.Children = append(node.Children, p.parseFlags()...)
		return node

	case p.cur().Class() == token.CaretSequence:
		caret := p.advance()
		node := parsetree.Node("caretValueRule", parsetree.Leaf(star), pathLeaf, parsetree.Leaf(caret))
		if _, ok := p.expectClass(token.Equals, "'='"); !ok {
			p.syncToNextEntityOrRule()
			return node
		}
		node.Children = append(node.Children, p.parseValue())
		return node

	case p.isKeyword("from"):
		kw := p.advance()
		vs, ok := p.expectClass(token.Sequence, "a value set name")
		node := parsetree.Node("valueSetRule", parsetree.Leaf(star), pathLeaf, parsetree.Leaf(kw))
		if !ok {
			p.syncToNextEntityOrRule()
			return node
		}
		node.Children = append(node.Children, parsetree.Leaf(vs))
		if p.isKeyword("example", "preferred", "extensible", "required") {
			node.Children = append(node.Children, parsetree.Leaf(p.advance()))
		}
		return node

	case p.cur().Class() == token.Equals:
		p.advance()
		node := parsetree.Node("fixedValueRule", parsetree.Leaf(star), pathLeaf)
		node.Children = append(node.Children, p.parseValue())
		return node

	case p.isKeyword("only"):
		p.advance()
		node := parsetree.Node("onlyRule", parsetree.Leaf(star), pathLeaf)
		node.Children = append(node.Children, p.parseOnlyTarget())
		for p.isKeyword("or") {
			p.advance()
			node.Children = append(node.Children, p.parseOnlyTarget())
		}
		return node

	case p.isKeyword("contains"):
		p.advance()
		node := parsetree.Node("containsRule", parsetree.Leaf(star), pathLeaf)
		node.Children = append(node.Children, p.parseContainsItem())
		for p.isKeyword("and") {
			p.advance()
			node.Children = append(node.Children, p.parseContainsItem())
		}
		return node

	case p.atFlag() || p.cur().Class() == token.Comma:
		node := parsetree.Node("flagRule", parsetree.Leaf(star), pathLeaf)
		for p.cur().Class() == token.Comma {
			p.advance()
			extraPath, ok := p.expectClass(token.Sequence, "a path")
			if !ok {
				break
			}
			node.Children = append(node.Children, parsetree.Leaf(extraPath))
		}
		flags := p.parseFlags()
		if len(flags) == 0 {
			p.errorf("expected at least one flag (MS, SU, ?!)")
		}
		node.Children = append(node.Children, flags...)
		return node

	default:
		p.errorf("unrecognized rule syntax after path %q: found %s %q", path.Lexeme(), p.cur().Class(), p.cur().Lexeme())
		p.syncToNextEntityOrRule()
		return parsetree.Node("unrecognizedRule", parsetree.Leaf(star), pathLeaf)
	}
}

// parseOnlyTarget parses one OnlyRule target: either a bare Sequence
// type name, or a Reference(A|B|...) literal.
func (p *Parser) parseOnlyTarget() *parsetree.Tree {
	if p.cur().Class() == token.Sequence && p.cur().Lexeme() == "Reference(" {
		return p.parseReferenceLiteral()
	}
	tok, ok := p.expectClass(token.Sequence, "a type name")
	if !ok {
		return parsetree.Node("onlyTarget")
	}
	return parsetree.Node("onlyTarget", parsetree.Leaf(tok))
}

// parseContainsItem parses one ContainsRule item: NAME CARD FLAG*.
func (p *Parser) parseContainsItem() *parsetree.Tree {
	name, ok := p.expectClass(token.Sequence, "a contained item name")
	if !ok {
		return parsetree.Node("containsItem")
	}
	node := parsetree.Node("containsItem", parsetree.Leaf(name))
	if card, ok := p.expectClass(token.Card, "a cardinality"); ok {
		node.Children = append(node.Children, parsetree.Leaf(card))
	}
	node.Children = append(node.Children, p.parseFlags()...)
	return node
}

// parseReferenceLiteral parses `Reference(A|B|...)` possibly followed
// by a display String.
func (p *Parser) parseReferenceLiteral() *parsetree.Tree {
	kw := p.advance() // "Reference(" sequence
	node := parsetree.Node("referenceValue", parsetree.Leaf(kw))
	for {
		name, ok := p.expectClass(token.Sequence, "a reference target")
		if !ok {
			break
		}
		node.Children = append(node.Children, parsetree.Leaf(name))
		if p.cur().Class() == token.Pipe {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expectClass(token.RParen, "')'"); !ok {
		return node
	}
	if p.cur().Class() == token.String {
		node.Children = append(node.Children, parsetree.Leaf(p.advance()))
	}
	return node
}

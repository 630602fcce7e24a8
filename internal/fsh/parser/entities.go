package parser

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// parseAlias parses `Alias: NAME = URL`.
func (p *Parser) parseAlias() *parsetree.Tree {
	kw := p.advance() // "Alias:"
	name, ok := p.expectClass(token.Sequence, "alias name")
	if !ok {
		return parsetree.Node("aliasEntity", parsetree.Leaf(kw))
	}
	if _, ok := p.expectClass(token.Equals, "'='"); !ok {
		return parsetree.Node("aliasEntity", parsetree.Leaf(kw), parsetree.Leaf(name))
	}
	url, ok := p.expectClass(token.Sequence, "alias URL")
	if !ok {
		return parsetree.Node("aliasEntity", parsetree.Leaf(kw), parsetree.Leaf(name))
	}
	return parsetree.Node("aliasEntity", parsetree.Leaf(kw), parsetree.Leaf(name), parsetree.Leaf(url))
}

// metadataKeys lists every recognized metadata keyword (with its
// trailing colon, as lexed) across all entity kinds; the visitor
// decides which keys are valid for which entity kind.
var metadataKeys = []string{"Id:", "Parent:", "Title:", "Description:", "InstanceOf:"}

func (p *Parser) atMetadataLine() bool {
	return p.isKeyword(metadataKeys...)
}

// parseMetadataLine parses `Key: value`, where value is either a bare
// Sequence (for Id/Parent/InstanceOf) or a String/MultilineString (for
// Title/Description).
func (p *Parser) parseMetadataLine() *parsetree.Tree {
	key := p.advance()
	var valueNode *parsetree.Tree
	switch p.cur().Class() {
	case token.Sequence, token.String, token.MultilineString:
		valueNode = parsetree.Leaf(p.advance())
	default:
		p.errorf("expected a value for metadata field %q, found %s %q", key.Lexeme(), p.cur().Class(), p.cur().Lexeme())
		return parsetree.Node("metadataLine", parsetree.Leaf(key))
	}
	return parsetree.Node("metadataLine", parsetree.Leaf(key), valueNode)
}

// parseStructureDef parses a Profile or Extension entity: header,
// metadata lines, then rule lines.
func (p *Parser) parseStructureDef(symbol string, isExtension bool) *parsetree.Tree {
	kw := p.advance()
	name, ok := p.expectClass(token.Sequence, "entity name")
	node := parsetree.Node(symbol, parsetree.Leaf(kw))
	if !ok {
		return node
	}
	node.Children = append(node.Children, parsetree.Leaf(name))

	for p.atMetadataLine() {
		node.Children = append(node.Children, p.parseMetadataLine())
	}

	for p.cur().Class() == token.Star {
		node.Children = append(node.Children, p.parseRule())
	}

	_ = isExtension
	return node
}

// parseInstance parses an Instance entity: header, metadata lines
// (InstanceOf, Title), then fixed-value rule lines.
func (p *Parser) parseInstance() *parsetree.Tree {
	kw := p.advance()
	name, ok := p.expectClass(token.Sequence, "instance name")
	node := parsetree.Node("instanceEntity", parsetree.Leaf(kw))
	if !ok {
		return node
	}
	node.Children = append(node.Children, parsetree.Leaf(name))

	for p.atMetadataLine() {
		node.Children = append(node.Children, p.parseMetadataLine())
	}

	for p.cur().Class() == token.Star {
		node.Children = append(node.Children, p.parseRule())
	}

	return node
}

// parseValueSet parses a ValueSet entity: header, metadata lines, then
// value-set component lines.
func (p *Parser) parseValueSet() *parsetree.Tree {
	kw := p.advance()
	name, ok := p.expectClass(token.Sequence, "value set name")
	node := parsetree.Node("valueSetEntity", parsetree.Leaf(kw))
	if !ok {
		return node
	}
	node.Children = append(node.Children, parsetree.Leaf(name))

	for p.atMetadataLine() {
		node.Children = append(node.Children, p.parseMetadataLine())
	}

	for p.cur().Class() == token.Star {
		node.Children = append(node.Children, p.parseVsComponent())
	}

	return node
}

// parseCodeSystem parses the supplemented CodeSystem entity: header,
// metadata lines, then `* CODE "display"?` concept lines.
func (p *Parser) parseCodeSystem() *parsetree.Tree {
	kw := p.advance()
	name, ok := p.expectClass(token.Sequence, "code system name")
	node := parsetree.Node("codeSystemEntity", parsetree.Leaf(kw))
	if !ok {
		return node
	}
	node.Children = append(node.Children, parsetree.Leaf(name))

	for p.atMetadataLine() {
		node.Children = append(node.Children, p.parseMetadataLine())
	}

	for p.cur().Class() == token.Star {
		star := p.advance()
		codeTok, ok := p.expectClass(token.Code, "a code")
		item := parsetree.Node("codeSystemConcept", parsetree.Leaf(star))
		if !ok {
			p.syncToNextEntityOrRule()
			node.Children = append(node.Children, item)
			continue
		}
		item.Children = append(item.Children, parsetree.Leaf(codeTok))
		if p.cur().Class() == token.String {
			item.Children = append(item.Children, parsetree.Leaf(p.advance()))
		}
		node.Children = append(node.Children, item)
	}

	return node
}

// parseRuleSet parses the supplemented RuleSet entity: header, then
// rule lines reusing the same grammar as Profile/Extension.
func (p *Parser) parseRuleSet() *parsetree.Tree {
	kw := p.advance()
	name, ok := p.expectClass(token.Sequence, "rule set name")
	node := parsetree.Node("ruleSetEntity", parsetree.Leaf(kw))
	if !ok {
		return node
	}
	node.Children = append(node.Children, parsetree.Leaf(name))

	for p.cur().Class() == token.Star {
		node.Children = append(node.Children, p.parseRule())
	}

	return node
}

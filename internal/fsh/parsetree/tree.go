// Package parsetree defines the untyped concrete syntax tree produced
// by the parser: a generic Terminal/Symbol/Children shape, adapted to
// carry fsh tokens and to expose the source span every downstream IR
// node needs.
package parsetree

import (
	"fmt"
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// Tree is a node in the concrete syntax tree. Non-terminal nodes carry a
// Symbol naming the grammar rule that produced them (e.g.
// "profileEntity", "cardRule", "vsConceptComponent"); terminal nodes
// carry the matched Token in
// Source and have no Children.
type Tree struct {
	Terminal bool
	Symbol   string
	Source   token.Token
	Children []*Tree
}

// Leaf builds a terminal tree node wrapping the given token.
func Leaf(tok token.Token) *Tree {
	return &Tree{Terminal: true, Symbol: tok.Class().String(), Source: tok}
}

// Node builds a non-terminal tree node with the given symbol and
// children.
func Node(symbol string, children ...*Tree) *Tree {
	return &Tree{Symbol: symbol, Children: children}
}

// firstToken returns the leftmost terminal token under this node, used
// to compute the start of a node's source span.
func (t *Tree) firstToken() (token.Token, bool) {
	if t == nil {
		return token.Token{}, false
	}
	if t.Terminal {
		return t.Source, true
	}
	for _, c := range t.Children {
		if tok, ok := c.firstToken(); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// lastToken returns the rightmost terminal token under this node, used
// to compute the end of a node's source span.
func (t *Tree) lastToken() (token.Token, bool) {
	if t == nil {
		return token.Token{}, false
	}
	if t.Terminal {
		return t.Source, true
	}
	for i := len(t.Children) - 1; i >= 0; i-- {
		if tok, ok := t.Children[i].lastToken(); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// Span returns the (startLine, startCol, endLine, endCol) location
// covering this node's full subtree: start comes from the node's start
// token, end from its stop token.
func (t *Tree) Span() (startLine, startCol, endLine, endCol int) {
	start, okStart := t.firstToken()
	end, okEnd := t.lastToken()
	if !okStart || !okEnd {
		return 0, 0, 0, 0
	}
	return start.Line(), start.LinePos(), end.Line(), end.EndCol()
}

// SourceLine returns the full text of the source line this node's
// first token appears on, for diagnostic rendering with a caret
// underneath the offending column.
func (t *Tree) SourceLine() string {
	start, ok := t.firstToken()
	if !ok {
		return ""
	}
	return start.FullLine()
}

// String returns a prettified, line-by-line representation suitable for
// tree-structure comparisons, in the same leveled-indent style as the
// teacher's ParseTree.String().
func (t *Tree) String() string {
	return t.leveledStr("", "")
}

func (t *Tree) leveledStr(firstPrefix, contPrefix string) string {
	var sb strings.Builder
	sb.WriteString(firstPrefix)
	if t.Terminal {
		sb.WriteString(fmt.Sprintf("(TERM %s %q)", t.Source.Class(), t.Source.Lexeme()))
	} else {
		sb.WriteString(fmt.Sprintf("( %s )", t.Symbol))
	}

	for i, c := range t.Children {
		last := i == len(t.Children)-1
		var childFirst, childCont string
		if last {
			childFirst = contPrefix + `  \--: `
			childCont = contPrefix + "      "
		} else {
			childFirst = contPrefix + "  |--: "
			childCont = contPrefix + "  |   "
		}
		sb.WriteString("\n")
		sb.WriteString(c.leveledStr(childFirst, childCont))
	}

	return sb.String()
}

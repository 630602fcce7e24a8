package fshvisit

import (
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
)

// metadataSet accumulates the first-seen value for each metadata key on
// one entity, reporting a duplicate-metadata diagnostic (and discarding
// the duplicate) on every later occurrence of an already-seen key.
type metadataSet struct {
	seen  map[string]string
	nodes map[string]*parsetree.Tree
}

func newMetadataSet() *metadataSet {
	return &metadataSet{seen: make(map[string]string), nodes: make(map[string]*parsetree.Tree)}
}

// collectMetadata walks entity's metadataLine children and records the first
// value seen per key, reporting duplicates through v.
func (v *Visitor) collectMetadata(entity *parsetree.Tree) *metadataSet {
	ms := newMetadataSet()
	for _, c := range entity.Children {
		if c.Symbol != "metadataLine" || len(c.Children) < 2 {
			continue
		}
		key := strings.TrimSuffix(c.Children[0].Source.Lexeme(), ":")
		value := metadataRawValue(c.Children[1])

		if prior, ok := ms.seen[key]; ok {
			v.errorf(c, "Metadata field '%s' already declared with value '%s'.", key, prior)
			continue
		}
		ms.seen[key] = value
		ms.nodes[key] = c
	}
	return ms
}

func (ms *metadataSet) get(key string) (string, bool) {
	v, ok := ms.seen[key]
	return v, ok
}

// metadataRawValue extracts the semantic text of a metadata value leaf:
// unescaped for single-line strings, dedented and unescaped for
// multiline strings, verbatim otherwise.
func metadataRawValue(leaf *parsetree.Tree) string {
	switch leaf.Source.Class() {
	case token.String:
		return unescapeSingleLineString(leaf.Source.Lexeme())
	case token.MultilineString:
		return dedentMultilineString(leaf.Source.Lexeme())
	default:
		return leaf.Source.Lexeme()
	}
}

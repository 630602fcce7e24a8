package fshvisit

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitCodeSystem builds a CodeSystem entity: Id/Title/Description
// metadata, then a flat list of declared concepts.
func (v *Visitor) visitCodeSystem(doc *fshast.Document, entity *parsetree.Tree) {
	if len(entity.Children) < 2 {
		return
	}
	name := entity.Children[1].Source.Lexeme()
	ms := v.collectMetadata(entity)

	cs := &fshast.CodeSystem{
		Name:       name,
		SourceInfo: v.sourceInfo(entity),
	}
	if id, ok := ms.get("Id"); ok {
		cs.ID = id
	} else {
		cs.ID = name
	}
	cs.Title, _ = ms.get("Title")
	cs.Description, _ = ms.get("Description")

	for _, c := range entity.Children {
		if c.Symbol != "codeSystemConcept" || len(c.Children) < 2 {
			continue
		}
		_, codePart := splitCode(c.Children[1].Source.Lexeme())
		concept := fshast.Code{Code: unquoteCode(codePart)}
		if len(c.Children) > 2 {
			concept.Display = unescapeSingleLineString(c.Children[2].Source.Lexeme())
		}
		cs.Concepts = append(cs.Concepts, concept)
	}

	doc.CodeSystems.Set(name, cs)
}

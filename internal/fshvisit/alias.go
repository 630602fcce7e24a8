package fshvisit

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitAlias builds an Alias from `Alias: NAME = URL`, storing the
// right-hand side verbatim: aliases are never resolved further.
func (v *Visitor) visitAlias(doc *fshast.Document, entity *parsetree.Tree) {
	if len(entity.Children) < 3 {
		return
	}
	name := entity.Children[1].Source.Lexeme()
	url := entity.Children[2].Source.Lexeme()
	doc.Aliases.Set(name, fshast.Alias{Name: name, URL: url})
}

package fshvisit

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitStructureDef builds a Profile or Extension entity: name, the
// Id/Parent/Title/Description metadata, and its rule list.
func (v *Visitor) visitStructureDef(doc *fshast.Document, entity *parsetree.Tree, isExtension bool) {
	if len(entity.Children) < 2 {
		return
	}
	name := entity.Children[1].Source.Lexeme()
	ms := v.collectMetadata(entity)

	sd := &fshast.StructureDef{
		Name:        name,
		SourceInfo:  v.sourceInfo(entity),
		IsExtension: isExtension,
	}

	if id, ok := ms.get("Id"); ok {
		sd.ID = id
	} else {
		sd.ID = name
	}

	defaultParent := "Resource"
	if isExtension {
		defaultParent = "Extension"
	}
	if parent, ok := ms.get("Parent"); ok {
		sd.Parent = v.resolver.Resolve(parent, fshast.KindAlias, fshast.KindProfile, fshast.KindExtension, fshast.KindResource, fshast.KindType)
	} else {
		sd.Parent = defaultParent
	}

	sd.Title, _ = ms.get("Title")
	sd.Description, _ = ms.get("Description")

	sd.Rules = v.visitRules(ruleChildren(entity))

	if isExtension {
		doc.Extensions.Set(name, sd)
	} else {
		doc.Profiles.Set(name, sd)
	}
}

// ruleChildren returns entity's children that represent rules
// (everything other than the leading keyword, name, and metadata
// lines).
func ruleChildren(entity *parsetree.Tree) []*parsetree.Tree {
	var rules []*parsetree.Tree
	for i, c := range entity.Children {
		if i < 2 || c.Symbol == "metadataLine" {
			continue
		}
		rules = append(rules, c)
	}
	return rules
}

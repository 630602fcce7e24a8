package fshvisit

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitInstance builds an Instance entity. If, after processing every
// metadata line, InstanceOf is still unset, the instance is dropped
// from the document and the absence is logged against its own source
// location rather than propagated as an exception.
func (v *Visitor) visitInstance(doc *fshast.Document, entity *parsetree.Tree) {
	if len(entity.Children) < 2 {
		return
	}
	name := entity.Children[1].Source.Lexeme()
	ms := v.collectMetadata(entity)

	instanceOf, ok := ms.get("InstanceOf")
	if !ok {
		v.errorf(entity, "instance %q has no InstanceOf declaration", name)
		return
	}

	inst := &fshast.Instance{
		Name:       name,
		InstanceOf: v.resolver.Resolve(instanceOf, fshast.KindAlias, fshast.KindProfile, fshast.KindExtension, fshast.KindResource, fshast.KindType),
		SourceInfo: v.sourceInfo(entity),
	}
	inst.Title, _ = ms.get("Title")
	inst.Rules = v.visitRules(ruleChildren(entity))

	doc.Instances.Set(name, inst)
}

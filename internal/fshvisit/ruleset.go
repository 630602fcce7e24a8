package fshvisit

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitRuleSet builds a RuleSet: a name and a plain rule list, with no
// metadata of its own.
func (v *Visitor) visitRuleSet(entity *parsetree.Tree) *fshast.RuleSet {
	name := ""
	if len(entity.Children) > 1 {
		name = entity.Children[1].Source.Lexeme()
	}
	return &fshast.RuleSet{
		Name:       name,
		SourceInfo: v.sourceInfo(entity),
		Rules:      v.visitRules(ruleChildren(entity)),
	}
}

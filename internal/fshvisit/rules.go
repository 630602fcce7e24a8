package fshvisit

import (
	"strconv"
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitRules walks every rule child of an entity node and appends the
// rules each one produces, in order. An unrecognised rule produces a
// warning diagnostic and no rule.
func (v *Visitor) visitRules(children []*parsetree.Tree) []fshast.Rule {
	var rules []fshast.Rule
	for _, r := range children {
		rules = append(rules, v.visitRule(r)...)
	}
	return rules
}

func (v *Visitor) visitRule(r *parsetree.Tree) []fshast.Rule {
	switch r.Symbol {
	case "cardRule":
		return v.visitCardRule(r)
	case "flagRule":
		return v.visitFlagRule(r)
	case "valueSetRule":
		return []fshast.Rule{v.visitValueSetRule(r)}
	case "fixedValueRule":
		return []fshast.Rule{v.visitFixedValueRule(r)}
	case "onlyRule":
		return []fshast.Rule{v.visitOnlyRule(r)}
	case "containsRule":
		return v.visitContainsRule(r)
	case "caretValueRule":
		return []fshast.Rule{v.visitCaretValueRule(r)}
	case "insertRule":
		return v.visitInsertRule(r)
	default:
		v.warnf(r, "unrecognized rule")
		return nil
	}
}

// visitCardRule parses `PATH CARD FLAG*` into a CardRule, plus a
// FlagRule at the same path and location when flags are present.
func (v *Visitor) visitCardRule(r *parsetree.Tree) []fshast.Rule {
	path := r.Children[1].Source.Lexeme()
	min, max := parseCard(r.Children[2].Source.Lexeme())
	src := v.sourceInfo(r)

	rules := []fshast.Rule{{
		Kind: fshast.RuleCard, Path: path, SourceInfo: src,
		Min: min, Max: max,
	}}

	flags := r.Children[3:]
	if len(flags) > 0 {
		rules = append(rules, flagRuleFromLeaves(path, src, flags))
	}
	return rules
}

func parseCard(text string) (min int, max string) {
	idx := strings.Index(text, "..")
	if idx < 0 {
		return 0, text
	}
	min, _ = strconv.Atoi(text[:idx])
	max = text[idx+2:]
	return min, max
}

// visitFlagRule parses `(PATH|PATHS) FLAG+`, producing one FlagRule
// per path in declared order.
func (v *Visitor) visitFlagRule(r *parsetree.Tree) []fshast.Rule {
	var paths []string
	var flagLeaves []*parsetree.Tree
	for _, c := range r.Children[1:] {
		if isFlagLeaf(c) {
			flagLeaves = append(flagLeaves, c)
		} else {
			paths = append(paths, c.Source.Lexeme())
		}
	}

	src := v.sourceInfo(r)
	rules := make([]fshast.Rule, 0, len(paths))
	for _, path := range paths {
		rules = append(rules, flagRuleFromLeaves(path, src, flagLeaves))
	}
	return rules
}

func isFlagLeaf(c *parsetree.Tree) bool {
	if c.Source.Class() == token.ModifierFlag {
		return true
	}
	lex := c.Source.Lexeme()
	return lex == "MS" || lex == "SU"
}

func flagRuleFromLeaves(path string, src fshast.SourceInfo, flags []*parsetree.Tree) fshast.Rule {
	rule := fshast.Rule{Kind: fshast.RuleFlag, Path: path, SourceInfo: src}
	for _, f := range flags {
		switch {
		case f.Source.Class() == token.ModifierFlag:
			rule.Modifier = true
		case f.Source.Lexeme() == "MS":
			rule.MustSupport = true
		case f.Source.Lexeme() == "SU":
			rule.Summary = true
		}
	}
	return rule
}

// visitValueSetRule parses `PATH from SEQUENCE (STRENGTH)?`. The value
// set name is missing whenever the parser's error-recovery kicked in
// (rules.go's "from" branch returns early without it when the name
// token is absent or EOF), so that case is reported instead of indexed
// past the end.
func (v *Visitor) visitValueSetRule(r *parsetree.Tree) fshast.Rule {
	path := r.Children[1].Source.Lexeme()
	src := v.sourceInfo(r)

	if len(r.Children) < 4 {
		v.errorf(r, "value set rule at %q has no value set name after \"from\"", path)
		return fshast.Rule{Kind: fshast.RuleValueSet, Path: path, SourceInfo: src, Strength: fshast.StrengthRequired}
	}

	vs := v.resolver.Resolve(r.Children[3].Source.Lexeme(), fshast.KindAlias, fshast.KindValueSet)

	strength := fshast.StrengthRequired
	if len(r.Children) > 4 {
		strength = parseStrength(r.Children[4].Source.Lexeme())
	}

	return fshast.Rule{
		Kind: fshast.RuleValueSet, Path: path, SourceInfo: src,
		ValueSet: vs, Strength: strength,
	}
}

func parseStrength(text string) fshast.Strength {
	switch text {
	case "extensible":
		return fshast.StrengthExtensible
	case "preferred":
		return fshast.StrengthPreferred
	case "example":
		return fshast.StrengthExample
	default:
		return fshast.StrengthRequired
	}
}

// visitFixedValueRule parses `PATH = value`.
func (v *Visitor) visitFixedValueRule(r *parsetree.Tree) fshast.Rule {
	path := r.Children[1].Source.Lexeme()
	return fshast.Rule{
		Kind: fshast.RuleFixedValue, Path: path, SourceInfo: v.sourceInfo(r),
		Value: v.visitValue(r.Children[2]),
	}
}

// visitOnlyRule parses `PATH only TARGETS`, where each target is a
// bare type name or a Reference(A|B|…) literal.
func (v *Visitor) visitOnlyRule(r *parsetree.Tree) fshast.Rule {
	path := r.Children[1].Source.Lexeme()
	var types []fshast.OnlyType
	for _, target := range r.Children[2:] {
		types = append(types, v.visitOnlyTarget(target)...)
	}
	return fshast.Rule{
		Kind: fshast.RuleOnly, Path: path, SourceInfo: v.sourceInfo(r),
		Types: types,
	}
}

func (v *Visitor) visitOnlyTarget(target *parsetree.Tree) []fshast.OnlyType {
	if target.Symbol == "referenceValue" {
		var types []fshast.OnlyType
		for _, name := range target.Children[1:] {
			if name.Source.Class() == token.String {
				continue
			}
			resolved := v.resolver.Resolve(name.Source.Lexeme(), fshast.KindAlias, fshast.KindProfile, fshast.KindExtension)
			types = append(types, fshast.OnlyType{Type: resolved, IsReference: true})
		}
		return types
	}
	if len(target.Children) == 0 {
		return nil
	}
	resolved := v.resolver.Resolve(target.Children[0].Source.Lexeme(), fshast.KindAlias, fshast.KindProfile, fshast.KindExtension)
	return []fshast.OnlyType{{Type: resolved}}
}

// visitContainsRule parses `PATH contains ITEM+`, emitting the
// ContainsRule first, then a synthesised CardRule and optional
// FlagRule per item at path "{parentPath}[{itemName}]".
func (v *Visitor) visitContainsRule(r *parsetree.Tree) []fshast.Rule {
	path := r.Children[1].Source.Lexeme()
	items := r.Children[2:]

	var names []fshast.ContainsItem
	for _, item := range items {
		if len(item.Children) == 0 {
			continue
		}
		names = append(names, fshast.ContainsItem{Name: item.Children[0].Source.Lexeme()})
	}

	src := v.sourceInfo(r)
	rules := []fshast.Rule{{Kind: fshast.RuleContains, Path: path, SourceInfo: src, Items: names}}

	for _, item := range items {
		if len(item.Children) < 2 {
			continue
		}
		itemName := item.Children[0].Source.Lexeme()
		itemPath := path + "[" + itemName + "]"
		min, max := parseCard(item.Children[1].Source.Lexeme())
		itemSrc := v.sourceInfo(item)

		rules = append(rules, fshast.Rule{
			Kind: fshast.RuleCard, Path: itemPath, SourceInfo: itemSrc,
			Min: min, Max: max,
		})

		flags := item.Children[2:]
		if len(flags) > 0 {
			rules = append(rules, flagRuleFromLeaves(itemPath, itemSrc, flags))
		}
	}

	return rules
}

// visitCaretValueRule parses `(PATH)? CARET_SEQUENCE = value`, with
// path defaulting to "" and the caret stripped from the caret path. The
// trailing "= value" is missing whenever the parser's error-recovery
// kicked in (rules.go's CaretValueRule branches return early without a
// value child when '=' is absent), so the value child is located by
// presence, not a hardcoded index.
func (v *Visitor) visitCaretValueRule(r *parsetree.Tree) fshast.Rule {
	var path string
	caretIdx := 1
	if !r.Children[1].Terminal || r.Children[1].Source.Class() != token.CaretSequence {
		path = r.Children[1].Source.Lexeme()
		caretIdx = 2
	}

	caretPath := strings.TrimPrefix(r.Children[caretIdx].Source.Lexeme(), "^")
	rule := fshast.Rule{
		Kind: fshast.RuleCaretValue, Path: path, SourceInfo: v.sourceInfo(r),
		CaretPath: caretPath,
	}

	valueIdx := caretIdx + 1
	if valueIdx >= len(r.Children) {
		v.errorf(r, "caret rule \"^%s\" has no assigned value", caretPath)
		return rule
	}
	rule.Value = v.visitValue(r.Children[valueIdx])
	return rule
}

// visitInsertRule looks up the named RuleSet declared in this document
// and splices in copies of its rules, preserving their own source
// locations. The name is run through the same Resolve call every other
// symbol kind goes through, for consistency; RuleSet names are never
// registered in the preprocessor table or an external provider (they
// are a purely local, document-scoped grouping, see fshpp.Build), so
// Resolve always hands back the symbol unresolved and the actual
// lookup is against this document's own RuleSet set.
func (v *Visitor) visitInsertRule(r *parsetree.Tree) []fshast.Rule {
	if len(r.Children) < 3 {
		return nil
	}
	name := v.resolver.Resolve(r.Children[2].Source.Lexeme(), fshast.KindRuleSet)
	rs, ok := v.ruleSets.Get(name)
	if !ok {
		v.warnf(r, "rule set %q was not declared in this document", name)
		return nil
	}
	return append([]fshast.Rule(nil), rs.Rules...)
}

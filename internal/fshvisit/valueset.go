package fshvisit

import (
	"sort"
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitValueSet builds a ValueSet entity: Id/Title/Description
// metadata, then every vsComponent line, merging ConceptComponents per
// I5 as they are produced.
func (v *Visitor) visitValueSet(doc *fshast.Document, entity *parsetree.Tree) {
	if len(entity.Children) < 2 {
		return
	}
	name := entity.Children[1].Source.Lexeme()
	ms := v.collectMetadata(entity)

	vs := &fshast.ValueSet{
		Name:       name,
		SourceInfo: v.sourceInfo(entity),
	}
	if id, ok := ms.get("Id"); ok {
		vs.ID = id
	} else {
		vs.ID = name
	}
	vs.Title, _ = ms.get("Title")
	vs.Description, _ = ms.get("Description")

	// keyIndex tracks, per I5 merge key, the index into vs.Components of
	// the first ConceptComponent declared with that key; later
	// components sharing the key append their concepts into it rather
	// than appearing as a new entry, so merged content surfaces at the
	// position of its first occurrence.
	keyIndex := make(map[string]int)
	for _, c := range entity.Children {
		switch c.Symbol {
		case "vsConceptComponent":
			comp, ok := v.visitConceptComponent(c)
			if !ok {
				continue
			}
			key := mergeKey(comp)
			if idx, exists := keyIndex[key]; exists {
				vs.Components[idx].Concepts = append(vs.Components[idx].Concepts, comp.Concepts...)
				continue
			}
			vs.Components = append(vs.Components, comp)
			keyIndex[key] = len(vs.Components) - 1

		case "vsFilterComponent":
			if comp, ok := v.visitFilterComponent(c); ok {
				vs.Components = append(vs.Components, comp)
			}
		}
	}

	doc.ValueSets.Set(name, vs)
}

func mergeKey(comp fshast.ValueSetComponent) string {
	vsList := append([]string(nil), comp.From.ValueSets...)
	sort.Strings(vsList)
	var b strings.Builder
	if comp.Inclusion {
		b.WriteString("+|")
	} else {
		b.WriteString("-|")
	}
	b.WriteString(comp.From.System)
	b.WriteString("|")
	b.WriteString(strings.Join(vsList, ","))
	return b.String()
}

// visitConceptComponent builds a ConceptComponent from a
// vsConceptComponent node, applying the single-code and
// comma-delimited-list system rules of spec section 4.5bis. ok is
// false if the component could not be built at all (diagnostic already
// recorded).
func (v *Visitor) visitConceptComponent(node *parsetree.Tree) (fshast.ValueSetComponent, bool) {
	children := node.Children[1:]
	inclusion := true
	if len(children) > 0 && children[0].Source.Lexeme() == "exclude" {
		inclusion = false
		children = children[1:]
	}

	var codeNodes []*parsetree.Tree
	var from *parsetree.Tree
	for _, c := range children {
		if c.Symbol == "fromClause" {
			from = c
			continue
		}
		codeNodes = append(codeNodes, c)
	}

	comp := fshast.ValueSetComponent{Kind: fshast.VsComponentConcept, Inclusion: inclusion}
	if from != nil {
		comp.From = v.visitFromClause(from)
	}

	if len(codeNodes) == 0 {
		return comp, false
	}

	if len(codeNodes) == 1 {
		code, ok := v.visitSingleConceptCode(codeNodes[0], &comp)
		if !ok {
			return comp, false
		}
		comp.Concepts = append(comp.Concepts, code)
		return comp, true
	}

	if comp.From.System == "" {
		v.errorf(node, "concept list must specify a system via 'from system SYSTEM'")
		return comp, false
	}
	for _, cn := range codeNodes {
		code := v.visitListConceptCode(cn)
		comp.Concepts = append(comp.Concepts, code)
	}
	return comp, true
}

// visitSingleConceptCode resolves the single-code form, applying the
// three-way system precedence: code-carried system conflicting with
// from.system is an error; either one alone is adopted; neither is an
// error.
func (v *Visitor) visitSingleConceptCode(node *parsetree.Tree, comp *fshast.ValueSetComponent) (fshast.Code, bool) {
	codeTok := node.Children[0].Source
	system, codePart := splitCode(codeTok.Lexeme())
	code := fshast.Code{Code: unquoteCode(codePart)}
	if len(node.Children) > 1 {
		code.Display = unescapeSingleLineString(node.Children[1].Source.Lexeme())
	}

	hasCodeSystem := system != ""
	hasFromSystem := comp.From.System != ""

	switch {
	case hasCodeSystem && hasFromSystem:
		v.errorf(node, "Concept %s specifies system multiple times", code.Code)
		return fshast.Code{}, false
	case hasCodeSystem:
		resolved := v.resolver.Resolve(system, fshast.KindAlias, fshast.KindCodeSystem)
		comp.From.System = resolved
		code.System = resolved
	case hasFromSystem:
		code.System = comp.From.System
	default:
		v.errorf(node, "Concept %s must include system as 'SYSTEM#CONCEPT' or '#CONCEPT from system SYSTEM'", code.Code)
		return fshast.Code{}, false
	}

	return code, true
}

// visitListConceptCode resolves one entry of a comma-delimited code
// list; a system is already guaranteed present on comp.From by the
// caller.
func (v *Visitor) visitListConceptCode(node *parsetree.Tree) fshast.Code {
	codeTok := node.Children[0].Source
	_, codePart := splitCode(codeTok.Lexeme())
	code := fshast.Code{Code: unquoteCode(codePart)}
	if len(node.Children) > 1 {
		code.Display = unescapeSingleLineString(node.Children[1].Source.Lexeme())
	}
	return code
}

// visitFilterComponent builds a FilterComponent from a
// vsFilterComponent node. The from-clause's system is required;
// individual filters that fail type-checking are skipped but
// surrounding filters still apply.
func (v *Visitor) visitFilterComponent(node *parsetree.Tree) (fshast.ValueSetComponent, bool) {
	children := node.Children[1:]
	inclusion := true
	if len(children) > 0 && children[0].Source.Lexeme() == "exclude" {
		inclusion = false
		children = children[1:]
	}
	// children[0] is now the "codes" keyword leaf.
	if len(children) > 0 {
		children = children[1:]
	}

	comp := fshast.ValueSetComponent{Kind: fshast.VsComponentFilter, Inclusion: inclusion}
	var filterNodes []*parsetree.Tree
	for _, c := range children {
		if c.Symbol == "fromClause" {
			comp.From = v.visitFromClause(c)
			continue
		}
		if c.Symbol == "vsFilter" {
			filterNodes = append(filterNodes, c)
		}
	}

	if comp.From.System == "" {
		v.errorf(node, "value set filter component requires a system via 'from system SYSTEM'")
		return comp, false
	}

	for _, fn := range filterNodes {
		if filter, ok := v.visitVsFilter(fn); ok {
			comp.Filters = append(comp.Filters, filter)
		}
	}
	return comp, true
}

func (v *Visitor) visitFromClause(node *parsetree.Tree) fshast.VsFrom {
	var from fshast.VsFrom
	for _, c := range node.Children[1:] {
		switch c.Symbol {
		case "fromSystem":
			sys := c.Children[1].Source.Lexeme()
			from.System = v.resolver.Resolve(sys, fshast.KindAlias, fshast.KindCodeSystem)
		case "fromValueSets":
			for _, vsLeaf := range c.Children[1:] {
				from.ValueSets = append(from.ValueSets, v.resolver.Resolve(vsLeaf.Source.Lexeme(), fshast.KindAlias, fshast.KindValueSet))
			}
		}
	}
	return from
}

// visitVsFilter parses `property operator [value]`, type-checking
// value against operator per the table in spec section 4.5bis. ok is
// false if the filter could not be built (diagnostic already
// recorded); surrounding filters are unaffected.
func (v *Visitor) visitVsFilter(node *parsetree.Tree) (fshast.VsFilter, bool) {
	if len(node.Children) < 2 {
		return fshast.VsFilter{}, false
	}
	property := node.Children[0].Source.Lexeme()
	opText := node.Children[1].Source.Lexeme()
	op, ok := fshast.ParseVsOperator(opText)
	if !ok {
		v.errorf(node, "unrecognized value set filter operator %q", opText)
		return fshast.VsFilter{}, false
	}

	filter := fshast.VsFilter{Property: property, Operator: op}

	if op == fshast.VsOpExists {
		if len(node.Children) > 2 {
			filter.ValueKind = fshast.VsFilterValueBool
			filter.ValueBool = node.Children[2].Children[0].Source.Lexeme() == "true"
		}
		return filter, true
	}

	if len(node.Children) < 3 {
		v.errorf(node, "value set filter operator %q requires a value", opText)
		return fshast.VsFilter{}, false
	}
	valueNode := node.Children[2]

	switch op {
	case fshast.VsOpEquals, fshast.VsOpIn, fshast.VsOpNotIn:
		if valueNode.Symbol != "stringValue" {
			v.errorf(node, "value set filter operator %q requires a string value", opText)
			return fshast.VsFilter{}, false
		}
		filter.ValueKind = fshast.VsFilterValueString
		filter.ValueString = unescapeSingleLineString(valueNode.Children[0].Source.Lexeme())

	case fshast.VsOpIsA, fshast.VsOpDescendentOf, fshast.VsOpIsNotA, fshast.VsOpGeneralizes:
		if valueNode.Symbol != "codeValue" {
			v.errorf(node, "value set filter operator %q requires a code value", opText)
			return fshast.VsFilter{}, false
		}
		filter.ValueKind = fshast.VsFilterValueCode
		filter.ValueCode = v.visitCode(valueNode)

	case fshast.VsOpRegex:
		if valueNode.Symbol != "regexValue" {
			v.errorf(node, "value set filter operator %q requires a regular expression value", opText)
			return fshast.VsFilter{}, false
		}
		filter.ValueKind = fshast.VsFilterValueRegex
		filter.ValueRegex = stripRegexDelimiters(valueNode.Children[0].Source.Lexeme())

	default:
		v.errorf(node, "unrecognized value set filter operator %q", opText)
		return fshast.VsFilter{}, false
	}

	return filter, true
}

func stripRegexDelimiters(lexeme string) string {
	if len(lexeme) >= 2 && strings.HasPrefix(lexeme, "/") && strings.HasSuffix(lexeme, "/") {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}

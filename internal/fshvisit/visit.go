// Package fshvisit implements the second pass: it walks one parsed
// document's concrete syntax tree and builds the typed
// fshast.Document, resolving every symbolic cross-reference through a
// fshresolve.Resolver along the way.
package fshvisit

import (
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/fshresolve"
	"github.com/dekarrin/fshimport/internal/ierrors"
)

// Visitor carries the state needed to walk a single document's tree:
// which file it came from, the resolver shared across the whole
// import call, and the sink diagnostics are pushed to.
type Visitor struct {
	file     string
	resolver *fshresolve.Resolver
	sink     *ierrors.Sink

	ruleSets *fshast.OrderedMap[*fshast.RuleSet]
}

// Visit builds the Document IR for one parsed file.
func Visit(tree *parsetree.Tree, file string, resolver *fshresolve.Resolver, sink *ierrors.Sink) *fshast.Document {
	v := &Visitor{file: file, resolver: resolver, sink: sink}
	doc := fshast.NewDocument(file)

	// RuleSets are collected first so InsertRule can reference a
	// RuleSet declared later in the same file.
	for _, entity := range tree.Children {
		if entity.Symbol == "ruleSetEntity" {
			rs := v.visitRuleSet(entity)
			doc.RuleSets.Set(rs.Name, rs)
		}
	}
	v.ruleSets = doc.RuleSets

	for _, entity := range tree.Children {
		switch entity.Symbol {
		case "aliasEntity":
			v.visitAlias(doc, entity)
		case "profileEntity":
			v.visitStructureDef(doc, entity, false)
		case "extensionEntity":
			v.visitStructureDef(doc, entity, true)
		case "instanceEntity":
			v.visitInstance(doc, entity)
		case "valueSetEntity":
			v.visitValueSet(doc, entity)
		case "codeSystemEntity":
			v.visitCodeSystem(doc, entity)
		case "ruleSetEntity":
			// Already collected above.
		}
	}

	return doc
}

func (v *Visitor) location(t *parsetree.Tree) ierrors.Location {
	startLine, startCol, endLine, endCol := t.Span()
	return ierrors.Location{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
		SourceLine:  t.SourceLine(),
	}
}

func (v *Visitor) sourceInfo(t *parsetree.Tree) fshast.SourceInfo {
	return fshast.SourceInfo{File: v.file, Location: v.location(t)}
}

func (v *Visitor) errorf(t *parsetree.Tree, format string, args ...interface{}) {
	loc := v.location(t)
	v.sink.Errorf(v.file, &loc, format, args...)
}

func (v *Visitor) warnf(t *parsetree.Tree, format string, args ...interface{}) {
	loc := v.location(t)
	v.sink.Warnf(v.file, &loc, format, args...)
}

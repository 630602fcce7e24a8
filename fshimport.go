// Package fshimport is the public entry point of the importer: a
// two-pass pipeline that lexes and parses raw FSH source into concrete
// syntax trees, builds a cross-document symbol table from every
// declared entity, and walks each tree into a strongly-typed,
// location-annotated Document, resolving every symbolic cross-reference
// to a canonical URL along the way.
package fshimport

import (
	"github.com/dekarrin/fshimport/internal/defprovider"
	"github.com/dekarrin/fshimport/internal/fsh/parser"
	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/fshpp"
	"github.com/dekarrin/fshimport/internal/fshresolve"
	"github.com/dekarrin/fshimport/internal/fshvisit"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/dekarrin/fshimport/internal/projcfg"
)

// RawInput is one unit of source text to import: an optional path
// (used only for diagnostic attribution) and its raw content.
type RawInput struct {
	Path    string
	Content string
}

// Import runs the full two-pass pipeline over rawInputs and returns one
// Document per input, in the same order. Diagnostics from every phase
// (lex/parse, preprocess, visit) are pushed into sink as they occur;
// Import itself never returns an error, per spec section 7 — every
// failure is surfaced as a Diagnostic plus possibly-missing IR
// elements.
//
// defs may be defprovider.Empty{} when the caller has no external FHIR
// definitions to consult. Parsing and visiting for each document are
// independent of one another except through the shared, read-only
// preprocessor table built between the two passes (spec section 5);
// this implementation runs them sequentially, which trivially
// satisfies the per-document ordering guarantee a parallel
// implementation would also have to preserve.
func Import(rawInputs []RawInput, config projcfg.Config, defs defprovider.Provider, sink *ierrors.Sink) []*fshast.Document {
	if defs == nil {
		defs = defprovider.Empty{}
	}

	type parsed struct {
		file string
		tree *parsetree.Tree
	}

	trees := make([]parsed, len(rawInputs))
	ppInput := make([]fshpp.ParsedTree, 0, len(rawInputs))
	for i, raw := range rawInputs {
		file := raw.Path
		tree := parser.Parse(raw.Content, func(msg string, line, col int, fullLine string) {
			loc := ierrors.Location{StartLine: line, StartColumn: col, EndLine: line, EndColumn: col, SourceLine: fullLine}
			sink.Errorf(file, &loc, "%s", msg)
		})
		trees[i] = parsed{file: file, tree: tree}
		ppInput = append(ppInput, fshpp.ParsedTree{File: file, Tree: tree})
	}

	table := fshpp.Build(ppInput, config.Canonical, sink)
	resolver := fshresolve.New(table, defs)

	docs := make([]*fshast.Document, len(trees))
	for i, pt := range trees {
		docs[i] = fshvisit.Visit(pt.tree, pt.file, resolver, sink)
	}

	return docs
}

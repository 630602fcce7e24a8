// Package fshresolve implements the second-pass resolver: it turns a
// symbolic cross-reference into a canonical URL by consulting the
// preprocessor's symbol table before falling back to an external
// definition provider.
package fshresolve

import (
	"github.com/dekarrin/fshimport/internal/defprovider"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/fshpp"
)

// Resolver looks up symbolic references against a preprocessor Table,
// falling back to a definition provider.Provider for anything not
// declared locally.
type Resolver struct {
	table *fshpp.Table
	defs  defprovider.Provider
}

// New returns a Resolver backed by table and defs. defs may be
// defprovider.Empty{} when no external definitions are available.
func New(table *fshpp.Table, defs defprovider.Provider) *Resolver {
	return &Resolver{table: table, defs: defs}
}

// Resolve looks up symbol, in strict order:
//
//  1. With no allowedKinds, the global table is consulted, then the
//     provider's unconstrained Find, then symbol is returned unresolved.
//  2. With allowedKinds, each kind's local table is tried in the given
//     order; the first hit wins.
//  3. If no local hit, each kind's provider lookup is tried in the same
//     order; the first non-empty URL wins. Instance is never looked up
//     externally, since external definitions never carry example data.
//  4. Otherwise symbol is returned unresolved, verbatim.
func (r *Resolver) Resolve(symbol string, allowedKinds ...fshast.Kind) string {
	if len(allowedKinds) == 0 {
		if url, ok := r.table.LookupGlobal(symbol); ok {
			return url
		}
		if url, ok := r.defs.Find(symbol); ok {
			return url
		}
		return symbol
	}

	for _, kind := range allowedKinds {
		if url, ok := r.table.Lookup(kind, symbol); ok {
			return url
		}
	}

	for _, kind := range allowedKinds {
		if kind == fshast.KindInstance {
			continue
		}
		if url, ok := r.externalLookup(kind, symbol); ok && url != "" {
			return url
		}
	}

	return symbol
}

func (r *Resolver) externalLookup(kind fshast.Kind, symbol string) (string, bool) {
	switch kind {
	case fshast.KindResource:
		return r.defs.FindResource(symbol)
	case fshast.KindType:
		return r.defs.FindType(symbol)
	case fshast.KindProfile:
		return r.defs.FindProfile(symbol)
	case fshast.KindExtension:
		return r.defs.FindExtension(symbol)
	case fshast.KindValueSet:
		return r.defs.FindValueSet(symbol)
	case fshast.KindCodeSystem:
		return r.defs.FindCodeSystem(symbol)
	default:
		return "", false
	}
}

// Package fshpp implements the preprocessor: the first pass over every
// parsed document, which registers each declared entity's name (and,
// where it differs, its id) against the canonical URL that entity will
// resolve to. The resulting Table is shared read-only by the visitor
// pass so that a reference in one document can resolve against an
// entity declared in another.
package fshpp

import "github.com/dekarrin/fshimport/internal/fshast"

// Table is the shared symbol table built by Build: one name->URL map
// per entity kind, plus a cross-kind global map used when a lookup
// does not constrain itself to particular kinds.
type Table struct {
	byKind map[fshast.Kind]map[string]string
	global map[string]string
}

func newTable() *Table {
	return &Table{
		byKind: make(map[fshast.Kind]map[string]string),
		global: make(map[string]string),
	}
}

// Lookup returns the URL registered for name under kind, if any.
func (t *Table) Lookup(kind fshast.Kind, name string) (string, bool) {
	m, ok := t.byKind[kind]
	if !ok {
		return "", false
	}
	url, ok := m[name]
	return url, ok
}

// LookupGlobal returns the URL registered for name in the cross-kind
// table, if any.
func (t *Table) LookupGlobal(name string) (string, bool) {
	url, ok := t.global[name]
	return url, ok
}

func (t *Table) kindMap(kind fshast.Kind) map[string]string {
	m, ok := t.byKind[kind]
	if !ok {
		m = make(map[string]string)
		t.byKind[kind] = m
	}
	return m
}

package fshresolve

import (
	"testing"

	"github.com/dekarrin/fshimport/internal/fsh/parser"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/fshpp"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a minimal defprovider.Provider for exercising the
// external-lookup fallback steps of Resolve.
type stubProvider struct {
	byKind map[fshast.Kind]map[string]string
}

func (s stubProvider) lookup(kind fshast.Kind, symbol string) (string, bool) {
	m, ok := s.byKind[kind]
	if !ok {
		return "", false
	}
	url, ok := m[symbol]
	return url, ok
}

func (s stubProvider) Find(symbol string) (string, bool) {
	for _, m := range s.byKind {
		if url, ok := m[symbol]; ok {
			return url, true
		}
	}
	return "", false
}

func (s stubProvider) FindResource(symbol string) (string, bool)  { return s.lookup(fshast.KindResource, symbol) }
func (s stubProvider) FindType(symbol string) (string, bool)      { return s.lookup(fshast.KindType, symbol) }
func (s stubProvider) FindProfile(symbol string) (string, bool)   { return s.lookup(fshast.KindProfile, symbol) }
func (s stubProvider) FindExtension(symbol string) (string, bool) { return s.lookup(fshast.KindExtension, symbol) }
func (s stubProvider) FindValueSet(symbol string) (string, bool)  { return s.lookup(fshast.KindValueSet, symbol) }
func (s stubProvider) FindCodeSystem(symbol string) (string, bool) {
	return s.lookup(fshast.KindCodeSystem, symbol)
}

func buildTable(t *testing.T, src string) *fshpp.Table {
	t.Helper()
	tree := parser.Parse(src, nil)
	sink := ierrors.NewSink()
	return fshpp.Build([]fshpp.ParsedTree{{File: "test.fsh", Tree: tree}}, "http://example.org/fhir", sink)
}

func Test_Resolve_localOverridesExternal(t *testing.T) {
	table := buildTable(t, `
Profile: LocalProfile
Id: local-profile
* active = true
`)
	defs := stubProvider{byKind: map[fshast.Kind]map[string]string{
		fshast.KindProfile: {"LocalProfile": "http://external.example/should-not-win"},
	}}
	r := New(table, defs)

	got := r.Resolve("LocalProfile", fshast.KindAlias, fshast.KindProfile)
	assert.Equal(t, "http://example.org/fhir/StructureDefinition/local-profile", got)
}

func Test_Resolve_fallsBackToExternalProvider(t *testing.T) {
	table := buildTable(t, `
Profile: LocalProfile
* active = true
`)
	defs := stubProvider{byKind: map[fshast.Kind]map[string]string{
		fshast.KindResource: {"Patient": "http://hl7.org/fhir/StructureDefinition/Patient"},
	}}
	r := New(table, defs)

	got := r.Resolve("Patient", fshast.KindAlias, fshast.KindProfile, fshast.KindResource)
	assert.Equal(t, "http://hl7.org/fhir/StructureDefinition/Patient", got)
}

func Test_Resolve_instanceNeverLookedUpExternally(t *testing.T) {
	table := buildTable(t, `
Profile: LocalProfile
* active = true
`)
	defs := stubProvider{byKind: map[fshast.Kind]map[string]string{
		fshast.KindInstance: {"SomeInstance": "http://external.example/instance"},
	}}
	r := New(table, defs)

	got := r.Resolve("SomeInstance", fshast.KindInstance)
	assert.Equal(t, "SomeInstance", got, "Instance kind must never be looked up against an external provider")
}

func Test_Resolve_unresolvedSymbolPassesThrough(t *testing.T) {
	table := buildTable(t, `
Profile: LocalProfile
* active = true
`)
	r := New(table, stubProvider{})

	got := r.Resolve("TotallyUnknownSymbol", fshast.KindValueSet, fshast.KindCodeSystem)
	assert.Equal(t, "TotallyUnknownSymbol", got)
}

func Test_Resolve_noAllowedKindsUsesGlobalTableThenProvider(t *testing.T) {
	table := buildTable(t, `
Alias: LOINC = http://loinc.org
`)
	r := New(table, stubProvider{})

	got := r.Resolve("LOINC")
	assert.Equal(t, "http://loinc.org", got)

	require.Equal(t, "Unregistered", r.Resolve("Unregistered"))
}

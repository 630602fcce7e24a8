package fshvisit

import (
	"testing"

	"github.com/dekarrin/fshimport/internal/defprovider"
	"github.com/dekarrin/fshimport/internal/fsh/parser"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/fshpp"
	"github.com/dekarrin/fshimport/internal/fshresolve"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func visitSource(t *testing.T, src string) (*fshast.Document, *ierrors.Sink) {
	t.Helper()
	tree := parser.Parse(src, nil)
	sink := ierrors.NewSink()
	table := fshpp.Build([]fshpp.ParsedTree{{File: "vs.fsh", Tree: tree}}, "http://example.org/fhir", sink)
	resolver := fshresolve.New(table, defprovider.Empty{})
	doc := Visit(tree, "vs.fsh", resolver, sink)
	return doc, sink
}

// Test_VisitValueSet_mergesConceptComponentsSharingAKey exercises
// invariant I5: two ConceptComponent lines that share the same
// (inclusion, from.system, sorted from.valueSets) key merge into one
// component at the position of the first occurrence, rather than
// appearing as two separate components.
func Test_VisitValueSet_mergesConceptComponentsSharingAKey(t *testing.T) {
	src := `
Alias: SYS = http://example.org/sys

ValueSet: MergedVS
* SYS#a "A"
* SYS#b "B"
`
	doc, sink := visitSource(t, src)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	vs, ok := doc.ValueSets.Get("MergedVS")
	require.True(t, ok)
	require.Len(t, vs.Components, 1, "both lines share a merge key and should collapse to one component")

	want := []fshast.Code{
		{Code: "a", Display: "A", System: "http://example.org/sys"},
		{Code: "b", Display: "B", System: "http://example.org/sys"},
	}
	if diff := cmp.Diff(want, vs.Components[0].Concepts); diff != "" {
		t.Errorf("merged concepts mismatch (-want +got):\n%s", diff)
	}
}

// Test_VisitValueSet_distinctSystemsDoNotMerge checks that two
// ConceptComponents with different from.system values are kept as
// separate components rather than incorrectly merged.
func Test_VisitValueSet_distinctSystemsDoNotMerge(t *testing.T) {
	src := `
ValueSet: UnmergedVS
* #a "A" from system sys1
* #b "B" from system sys2
`
	doc, sink := visitSource(t, src)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	vs, ok := doc.ValueSets.Get("UnmergedVS")
	require.True(t, ok)
	require.Len(t, vs.Components, 2)
}

// Test_VisitValueSet_excludeAndIncludeDoNotMerge checks that inclusion
// is part of the merge key: an include and an exclude sharing the same
// system must not collapse into one component.
func Test_VisitValueSet_excludeAndIncludeDoNotMerge(t *testing.T) {
	src := `
ValueSet: MixedInclusionVS
* #a "A" from system sys
* exclude #b "B" from system sys
`
	doc, sink := visitSource(t, src)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	vs, ok := doc.ValueSets.Get("MixedInclusionVS")
	require.True(t, ok)
	require.Len(t, vs.Components, 2)
	require.True(t, vs.Components[0].Inclusion)
	require.False(t, vs.Components[1].Inclusion)
}

func Test_VisitValueSet_filterComponent(t *testing.T) {
	src := `
ValueSet: FilteredVS
* codes from system http://example.org/sys where concept is-a parentsys#parent
`
	doc, sink := visitSource(t, src)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	vs, ok := doc.ValueSets.Get("FilteredVS")
	require.True(t, ok)
	require.Len(t, vs.Components, 1)

	comp := vs.Components[0]
	require.Equal(t, fshast.VsComponentFilter, comp.Kind)
	require.Equal(t, "http://example.org/sys", comp.From.System)
	require.Len(t, comp.Filters, 1)
	require.Equal(t, fshast.VsOpIsA, comp.Filters[0].Operator)
	require.Equal(t, fshast.VsFilterValueCode, comp.Filters[0].ValueKind)
	require.Equal(t, "parent", comp.Filters[0].ValueCode.Code)
}

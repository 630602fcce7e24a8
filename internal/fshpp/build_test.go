package fshpp

import (
	"testing"

	"github.com/dekarrin/fshimport/internal/fsh/parser"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFrom(t *testing.T, src string) (*Table, *ierrors.Sink) {
	t.Helper()
	tree := parser.Parse(src, nil)
	sink := ierrors.NewSink()
	table := Build([]ParsedTree{{File: "test.fsh", Tree: tree}}, "http://example.org/fhir", sink)
	return table, sink
}

func Test_Build_registersProfileUnderNameAndID(t *testing.T) {
	table, sink := buildFrom(t, `
Profile: MyPatient
Id: my-patient
* active = true
`)
	require.False(t, sink.HasErrors())

	byName, ok := table.Lookup(fshast.KindProfile, "MyPatient")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/fhir/StructureDefinition/my-patient", byName)

	byID, ok := table.Lookup(fshast.KindProfile, "my-patient")
	require.True(t, ok)
	assert.Equal(t, byName, byID)
}

func Test_Build_conflictingRegistrationKeepsOriginal(t *testing.T) {
	table, sink := buildFrom(t, `
Profile: Dup
Id: dup-one
* active = true

Profile: Dup
Id: dup-two
* active = true
`)
	assert.True(t, sink.HasErrors())

	url, ok := table.Lookup(fshast.KindProfile, "Dup")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/fhir/StructureDefinition/dup-one", url, "first registration should win")
}

func Test_Build_reregisteringSameURLIsNotAConflict(t *testing.T) {
	table, sink := buildFrom(t, `
Alias: A = http://example.org/same
Alias: B = http://example.org/same
`)
	// Different alias names mapping to the same URL never collide with
	// each other; only the same name re-registered to a different URL
	// does.
	assert.False(t, sink.HasErrors())
	_, _ = table, sink
}

func Test_Build_valueSetAndCodeSystemHaveIndependentPerKindTables(t *testing.T) {
	table, sink := buildFrom(t, `
ValueSet: SharedVS
Id: shared-id

CodeSystem: SharedCS
Id: shared-id
* x "X"
`)
	// Distinct names sharing only an Id still land in separate per-kind
	// tables without colliding, even though both register "shared-id"
	// into the cross-kind global table with two different URLs.
	assert.True(t, sink.HasErrors(), "both entities register id \"shared-id\" into the global table with different URLs")

	vsURL, ok := table.Lookup(fshast.KindValueSet, "shared-id")
	require.True(t, ok)
	csURL, ok := table.Lookup(fshast.KindCodeSystem, "shared-id")
	require.True(t, ok)
	assert.NotEqual(t, vsURL, csURL, "per-kind tables are unaffected by the global table's conflict")
}

package sqlitedefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMem(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func Test_Store_putThenFindByKind(t *testing.T) {
	store := openMem(t)

	require.NoError(t, store.Put("Profile", "USCorePatient", "http://hl7.org/fhir/us/core/StructureDefinition/us-core-patient"))

	url, ok := store.FindProfile("USCorePatient")
	require.True(t, ok)
	assert.Equal(t, "http://hl7.org/fhir/us/core/StructureDefinition/us-core-patient", url)

	_, ok = store.FindExtension("USCorePatient")
	assert.False(t, ok, "registering under Profile must not leak into other kinds")
}

func Test_Store_findSearchesAcrossAllKinds(t *testing.T) {
	store := openMem(t)
	require.NoError(t, store.Put("ValueSet", "AdministrativeGender", "http://hl7.org/fhir/ValueSet/administrative-gender"))

	url, ok := store.Find("AdministrativeGender")
	require.True(t, ok)
	assert.Equal(t, "http://hl7.org/fhir/ValueSet/administrative-gender", url)
}

func Test_Store_findUnknownSymbolReturnsNotOK(t *testing.T) {
	store := openMem(t)
	_, ok := store.Find("NoSuchThing")
	assert.False(t, ok)
}

func Test_Store_putOverwritesPriorRegistration(t *testing.T) {
	store := openMem(t)
	require.NoError(t, store.Put("CodeSystem", "MyCS", "http://example.org/old"))
	require.NoError(t, store.Put("CodeSystem", "MyCS", "http://example.org/new"))

	url, ok := store.FindCodeSystem("MyCS")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/new", url)
}

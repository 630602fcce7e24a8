package fshvisit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_VisitStructureDef_profileDefaultsParentToResource(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
* active = true
`)
	require.False(t, sink.HasErrors())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	assert.Equal(t, "Resource", sd.Parent)
	assert.Equal(t, "MyPatient", sd.ID)
	assert.False(t, sd.IsExtension)
}

func Test_VisitStructureDef_extensionDefaultsParentToExtension(t *testing.T) {
	doc, sink := visitSource(t, `
Extension: MyExtension
* value[x] only boolean
`)
	require.False(t, sink.HasErrors())

	sd, ok := doc.Extensions.Get("MyExtension")
	require.True(t, ok)
	assert.Equal(t, "Extension", sd.Parent)
	assert.True(t, sd.IsExtension)
}

func Test_VisitStructureDef_explicitIdOverridesName(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
Id: my-patient
Title: "My Patient"
* active = true
`)
	require.False(t, sink.HasErrors())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	assert.Equal(t, "my-patient", sd.ID)
	assert.Equal(t, "My Patient", sd.Title)
}

func Test_VisitInstance_missingInstanceOfIsDroppedAndErrors(t *testing.T) {
	doc, sink := visitSource(t, `
Instance: Orphan
* active = true
`)
	assert.True(t, sink.HasErrors())
	assert.False(t, doc.Instances.Has("Orphan"))
}

func Test_VisitInstance_resolvesInstanceOfAgainstLocalProfile(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
Id: my-patient
* active = true

Instance: Example1
InstanceOf: MyPatient
* active = true
`)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	inst, ok := doc.Instances.Get("Example1")
	require.True(t, ok)
	assert.Contains(t, inst.InstanceOf, "my-patient")
}

func Test_VisitAlias_storesURLVerbatimWithoutResolution(t *testing.T) {
	doc, sink := visitSource(t, `
Alias: SCT = http://snomed.info/sct
`)
	require.False(t, sink.HasErrors())

	al, ok := doc.Aliases.Get("SCT")
	require.True(t, ok)
	assert.Equal(t, "http://snomed.info/sct", al.URL)
}

func Test_VisitCodeSystem_collectsConceptsInDeclarationOrder(t *testing.T) {
	doc, sink := visitSource(t, `
CodeSystem: MyCS
Id: my-cs
* #a "Alpha"
* #b "Beta"
`)
	require.False(t, sink.HasErrors())

	cs, ok := doc.CodeSystems.Get("MyCS")
	require.True(t, ok)
	assert.Equal(t, "my-cs", cs.ID)
	require.Len(t, cs.Concepts, 2)
	assert.Equal(t, "a", cs.Concepts[0].Code)
	assert.Equal(t, "Alpha", cs.Concepts[0].Display)
	assert.Equal(t, "b", cs.Concepts[1].Code)
	assert.Equal(t, "Beta", cs.Concepts[1].Display)
}

func Test_VisitRuleSet_isRegisteredAndSpliceableByInsertRule(t *testing.T) {
	doc, sink := visitSource(t, `
RuleSet: Common
* active = true

Profile: MyPatient
* insert Common
`)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	require.Len(t, sd.Rules, 1)
	assert.Equal(t, "active", sd.Rules[0].Path)
}

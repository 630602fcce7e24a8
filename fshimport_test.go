package fshimport

import (
	"testing"

	"github.com/dekarrin/fshimport/internal/defprovider"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/ierrors"
	"github.com/dekarrin/fshimport/internal/projcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() projcfg.Config {
	return projcfg.Config{Canonical: "http://example.org/fhir"}
}

func Test_Import_profileWithRules(t *testing.T) {
	src := `
Profile: MyPatient
Parent: Patient
Id: my-patient
Title: "My Patient"
* name 1..1 MS
* gender from MyGenderVS extensible
* active = true
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{{Path: "patient.fsh", Content: src}}, testConfig(), defprovider.Empty{}, sink)

	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())
	require.Len(t, docs, 1)

	doc := docs[0]
	require.Equal(t, 1, doc.Profiles.Len())
	prof, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	assert.Equal(t, "my-patient", prof.ID)
	assert.Equal(t, "Patient", prof.Parent)
	assert.Equal(t, "My Patient", prof.Title)
	// "* name 1..1 MS" produces both a CardRule and a trailing FlagRule
	// at the same path; the other two lines produce one rule each.
	require.Len(t, prof.Rules, 4)

	assert.Equal(t, fshast.RuleCard, prof.Rules[0].Kind)
	assert.Equal(t, "name", prof.Rules[0].Path)
	assert.Equal(t, 1, prof.Rules[0].Min)
	assert.Equal(t, "1", prof.Rules[0].Max)

	assert.Equal(t, fshast.RuleFlag, prof.Rules[1].Kind)
	assert.Equal(t, "name", prof.Rules[1].Path)
	assert.True(t, prof.Rules[1].MustSupport)

	assert.Equal(t, fshast.RuleValueSet, prof.Rules[2].Kind)
	assert.Equal(t, fshast.StrengthExtensible, prof.Rules[2].Strength)

	assert.Equal(t, fshast.RuleFixedValue, prof.Rules[3].Kind)
}

func Test_Import_defaultParent(t *testing.T) {
	src := `
Profile: NoParentProfile
* active = true

Extension: NoParentExtension
* valueInteger = 5
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{{Path: "defaults.fsh", Content: src}}, testConfig(), defprovider.Empty{}, sink)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())
	require.Len(t, docs, 1)

	doc := docs[0]
	prof, ok := doc.Profiles.Get("NoParentProfile")
	require.True(t, ok)
	assert.Equal(t, "Resource", prof.Parent)

	ext, ok := doc.Extensions.Get("NoParentExtension")
	require.True(t, ok)
	assert.Equal(t, "Extension", ext.Parent)
}

func Test_Import_instanceRequiresInstanceOf(t *testing.T) {
	src := `
Instance: MissingType
* active = true
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{{Path: "instance.fsh", Content: src}}, testConfig(), defprovider.Empty{}, sink)
	require.Len(t, docs, 1)

	assert.True(t, sink.HasErrors())
	assert.Equal(t, 0, docs[0].Instances.Len())
}

func Test_Import_aliasResolution(t *testing.T) {
	src := `
Alias: LOINC = http://loinc.org

Profile: Obs
Parent: Observation
* code from LOINC
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{{Path: "obs.fsh", Content: src}}, testConfig(), defprovider.Empty{}, sink)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	prof, ok := docs[0].Profiles.Get("Obs")
	require.True(t, ok)
	require.Len(t, prof.Rules, 1)
	assert.Equal(t, "http://loinc.org", prof.Rules[0].ValueSet)
}

func Test_Import_crossDocumentResolution(t *testing.T) {
	vsSrc := `
ValueSet: SharedVS
Id: shared-vs
* system#active "Active"
`
	profSrc := `
Profile: UsesSharedVS
Parent: Observation
* code from SharedVS
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{
		{Path: "vs.fsh", Content: vsSrc},
		{Path: "prof.fsh", Content: profSrc},
	}, testConfig(), defprovider.Empty{}, sink)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())
	require.Len(t, docs, 2)

	prof, ok := docs[1].Profiles.Get("UsesSharedVS")
	require.True(t, ok)
	require.Len(t, prof.Rules, 1)
	assert.Equal(t, "http://example.org/fhir/ValueSet/shared-vs", prof.Rules[0].ValueSet)
}

func Test_Import_insertRuleSet(t *testing.T) {
	src := `
RuleSet: CommonRules
* active = true

Profile: UsesRuleSet
Parent: Patient
* insert CommonRules
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{{Path: "ruleset.fsh", Content: src}}, testConfig(), defprovider.Empty{}, sink)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	doc := docs[0]
	require.Equal(t, 1, doc.RuleSets.Len())

	prof, ok := doc.Profiles.Get("UsesRuleSet")
	require.True(t, ok)
	// "insert" splices the named RuleSet's own rules inline rather
	// than surfacing as a rule of its own kind.
	require.Len(t, prof.Rules, 1)
	assert.Equal(t, fshast.RuleFixedValue, prof.Rules[0].Kind)
	assert.Equal(t, "active", prof.Rules[0].Path)
}

func Test_Import_insertUnknownRuleSetWarns(t *testing.T) {
	src := `
Profile: UsesMissingRuleSet
Parent: Patient
* insert DoesNotExist
`
	sink := ierrors.NewSink()
	docs := Import([]RawInput{{Path: "missing-ruleset.fsh", Content: src}}, testConfig(), defprovider.Empty{}, sink)
	require.False(t, sink.HasErrors())

	prof, ok := docs[0].Profiles.Get("UsesMissingRuleSet")
	require.True(t, ok)
	assert.Empty(t, prof.Rules)

	found := false
	for _, d := range sink.All() {
		if d.Level == ierrors.Warn {
			found = true
		}
	}
	assert.True(t, found, "expected a warning diagnostic for the unresolved rule set")
}

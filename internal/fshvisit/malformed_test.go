package fshvisit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These cover realistic truncated/malformed rule lines that the
// parser's error-recovery still turns into a (shorter) parse tree
// node; the visitor must report a diagnostic instead of indexing past
// the end of that node's Children.

func Test_VisitCaretValueRule_missingValueWithNoPathDoesNotPanic(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
* ^short
`)
	assert.True(t, sink.HasErrors())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	require.Len(t, sd.Rules, 1)
	assert.Equal(t, "short", sd.Rules[0].CaretPath)
	assert.Equal(t, "", sd.Rules[0].Path)
}

func Test_VisitCaretValueRule_missingValueWithPathKeepsPathAndCaretDistinct(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
* active ^short
`)
	assert.True(t, sink.HasErrors())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	require.Len(t, sd.Rules, 1)
	assert.Equal(t, "active", sd.Rules[0].Path, "path must not be misread as the caret leaf")
	assert.Equal(t, "short", sd.Rules[0].CaretPath)
}

func Test_VisitCaretValueRule_wellFormedStillParsesValue(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
* active ^short = true
`)
	require.False(t, sink.HasErrors(), "diagnostics: %v", sink.All())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	require.Len(t, sd.Rules, 1)
	assert.Equal(t, "active", sd.Rules[0].Path)
	assert.Equal(t, "short", sd.Rules[0].CaretPath)
}

func Test_VisitValueSetRule_missingValueSetNameDoesNotPanic(t *testing.T) {
	doc, sink := visitSource(t, `
Profile: MyPatient
* gender from
`)
	assert.True(t, sink.HasErrors())

	sd, ok := doc.Profiles.Get("MyPatient")
	require.True(t, ok)
	require.Len(t, sd.Rules, 1)
	assert.Equal(t, "gender", sd.Rules[0].Path)
	assert.Equal(t, "", sd.Rules[0].ValueSet)
}

package projcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_decodesCanonicalAndDependencies(t *testing.T) {
	data := []byte(`
canonical = "http://example.org/fhir"
fsh_only = true
dependencies = ["hl7.fhir.us.core@5.0.1", "hl7.fhir.uv.extensions@1.0.0"]
`)

	cfg, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/fhir", cfg.Canonical)
	assert.True(t, cfg.FSHOnly)
	assert.Equal(t, []string{"hl7.fhir.us.core@5.0.1", "hl7.fhir.uv.extensions@1.0.0"}, cfg.Dependencies)
}

func Test_Load_rejectsMalformedTOML(t *testing.T) {
	_, err := Load([]byte("canonical = this is not valid toml ="))
	assert.Error(t, err)
}

func Test_LoadFile_missingFile(t *testing.T) {
	_, err := LoadFile("/nonexistent/fsh-project.toml")
	assert.Error(t, err)
}

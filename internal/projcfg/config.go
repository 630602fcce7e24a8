// Package projcfg loads the project configuration consumed by the
// importer: the canonical URL prefix used to synthesise entity URLs
// (spec section 4.2), plus the settings the out-of-scope manifest
// exporter otherwise needs. Grounded on the teacher's TOML resource
// loading in internal/tqw.
package projcfg

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the decoded contents of a project's fsh-project.toml.
type Config struct {
	// Canonical is the URL prefix used when synthesising canonical
	// URLs for locally declared Profile, Extension, ValueSet, and
	// CodeSystem entities.
	Canonical string `toml:"canonical"`

	// FSHOnly indicates the project is not also maintaining an
	// equivalent JSON/XML definition tree; it has no effect on the
	// core importer and is carried only so the (out-of-scope) manifest
	// exporter has it available.
	FSHOnly bool `toml:"fsh_only"`

	// Dependencies lists package-id@version strings the (out-of-scope)
	// manifest exporter would resolve against a registry; the importer
	// never reads these.
	Dependencies []string `toml:"dependencies"`
}

// Load decodes a Config from raw TOML text.
func Load(data []byte) (Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("decode project config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads and decodes the Config at path (conventionally
// "fsh-project.toml" at a project's root).
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read project config: %w", err)
	}
	return Load(data)
}

// Package defprovider defines the read-only interface the importer
// uses to look up externally supplied FHIR resources, types, profiles,
// extensions, value sets, and code systems: the definition provider a
// caller supplies alongside locally declared entities.
package defprovider

// Provider is an opaque, read-only index of externally defined FHIR
// artifacts. Implementations must be safe for concurrent reads; the
// importer may call a Provider from multiple goroutines when it
// parallelises the visitor pass across documents.
type Provider interface {
	// Find looks up symbol against every kind this provider indexes,
	// with no kind restriction. Returns ("", false) if nothing matches.
	Find(symbol string) (url string, ok bool)

	FindResource(symbol string) (url string, ok bool)
	FindType(symbol string) (url string, ok bool)
	FindProfile(symbol string) (url string, ok bool)
	FindExtension(symbol string) (url string, ok bool)
	FindValueSet(symbol string) (url string, ok bool)
	FindCodeSystem(symbol string) (url string, ok bool)
}

// Empty is a Provider that finds nothing. It is useful as a default
// when a caller has no external definitions to supply, or in tests
// that only exercise local resolution.
type Empty struct{}

func (Empty) Find(symbol string) (string, bool)            { return "", false }
func (Empty) FindResource(symbol string) (string, bool)    { return "", false }
func (Empty) FindType(symbol string) (string, bool)        { return "", false }
func (Empty) FindProfile(symbol string) (string, bool)     { return "", false }
func (Empty) FindExtension(symbol string) (string, bool)   { return "", false }
func (Empty) FindValueSet(symbol string) (string, bool)    { return "", false }
func (Empty) FindCodeSystem(symbol string) (string, bool)  { return "", false }

package fshast

// Alias is a local shorthand mapping a name to a URL, stored verbatim
// as written (never resolved further).
type Alias struct {
	Name string
	URL  string
}

// StructureDef is the shared shape of Profile and Extension entities.
type StructureDef struct {
	Name        string
	ID          string
	Parent      string
	Title       string
	Description string
	Rules       []Rule
	SourceInfo  SourceInfo

	// IsExtension distinguishes the default parent fallback ("Extension"
	// vs "Resource") and which entity kind this was registered under.
	IsExtension bool
}

// Instance is the Instance entity shape.
type Instance struct {
	Name       string
	InstanceOf string
	Title      string
	Rules      []Rule
	SourceInfo SourceInfo
}

// ValueSet is the ValueSet entity shape.
type ValueSet struct {
	Name        string
	ID          string
	Title       string
	Description string
	Components  []ValueSetComponent
	SourceInfo  SourceInfo
}

// CodeSystem is a first-class registered entity kind, with its own
// preprocessor symbol table alongside Profile/Extension/ValueSet.
type CodeSystem struct {
	Name        string
	ID          string
	Title       string
	Description string
	Concepts    []Code
	SourceInfo  SourceInfo
}

// RuleSet is a named, reusable block of rules applied by InsertRule.
type RuleSet struct {
	Name       string
	Rules      []Rule
	SourceInfo SourceInfo
}

package fshast

// Strength is the binding strength of a ValueSetRule, a closed enum.
type Strength int

const (
	StrengthRequired Strength = iota
	StrengthExtensible
	StrengthPreferred
	StrengthExample
)

func (s Strength) String() string {
	switch s {
	case StrengthExample:
		return "example"
	case StrengthPreferred:
		return "preferred"
	case StrengthExtensible:
		return "extensible"
	default:
		return "required"
	}
}

// RuleKind tags which variant a Rule holds.
type RuleKind int

const (
	RuleCard RuleKind = iota
	RuleFlag
	RuleValueSet
	RuleFixedValue
	RuleOnly
	RuleContains
	RuleCaretValue
)

// OnlyType is one entry of an OnlyRule's type list.
type OnlyType struct {
	Type        string // canonical URL, or raw symbol if unresolved
	IsReference bool
}

// ContainsItem is one entry of a ContainsRule's item list.
type ContainsItem struct {
	Name string
}

// Rule is the closed sum type covering every rule variant. InsertRule
// is not one of them: `* insert RULESET` is resolved and spliced away
// during visiting (see fshvisit.visitInsertRule), so it never survives
// as a Rule of its own. Exactly the fields relevant to Kind are
// meaningful.
type Rule struct {
	Kind       RuleKind
	Path       string
	SourceInfo SourceInfo

	// CardRule
	Min int
	Max string

	// FlagRule
	MustSupport bool
	Summary     bool
	Modifier    bool

	// ValueSetRule
	ValueSet string
	Strength Strength

	// FixedValueRule
	Value LiteralValue

	// OnlyRule
	Types []OnlyType

	// ContainsRule
	Items []ContainsItem

	// CaretValueRule
	CaretPath string
}

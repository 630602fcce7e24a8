package fshast

// Document is the IR produced from one RawInput: a mapping from entity
// kind to an ordered-by-insertion map of name->entity. Document IRs are
// produced once per Import call and are immutable thereafter.
type Document struct {
	Path string

	Aliases     *OrderedMap[Alias]
	Profiles    *OrderedMap[*StructureDef]
	Extensions  *OrderedMap[*StructureDef]
	Instances   *OrderedMap[*Instance]
	ValueSets   *OrderedMap[*ValueSet]
	CodeSystems *OrderedMap[*CodeSystem]
	RuleSets    *OrderedMap[*RuleSet]
}

// NewDocument returns an empty Document for the given source path.
func NewDocument(path string) *Document {
	return &Document{
		Path:        path,
		Aliases:     NewOrderedMap[Alias](),
		Profiles:    NewOrderedMap[*StructureDef](),
		Extensions:  NewOrderedMap[*StructureDef](),
		Instances:   NewOrderedMap[*Instance](),
		ValueSets:   NewOrderedMap[*ValueSet](),
		CodeSystems: NewOrderedMap[*CodeSystem](),
		RuleSets:    NewOrderedMap[*RuleSet](),
	}
}

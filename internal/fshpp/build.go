package fshpp

import (
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fshast"
	"github.com/dekarrin/fshimport/internal/ierrors"
)

// ParsedTree pairs one document's concrete syntax tree with the source
// file it was parsed from, for diagnostic attribution during Build.
type ParsedTree struct {
	File string
	Tree *parsetree.Tree
}

// Build walks every tree's declared entities and registers each one's
// name (and id, if it differs) against the canonical URL the entity
// will resolve to, producing the shared Table the resolver and visitor
// consult during the second pass.
func Build(parsed []ParsedTree, canonical string, sink *ierrors.Sink) *Table {
	table := newTable()
	prefix := strings.TrimSuffix(canonical, "/")

	for _, pt := range parsed {
		if pt.Tree == nil {
			continue
		}
		for _, entity := range pt.Tree.Children {
			registerEntity(table, sink, pt.File, prefix, entity)
		}
	}

	return table
}

func registerEntity(table *Table, sink *ierrors.Sink, file, prefix string, entity *parsetree.Tree) {
	switch entity.Symbol {
	case "aliasEntity":
		name, ok := childLexeme(entity, 1)
		if !ok {
			return
		}
		url, ok := childLexeme(entity, 2)
		if !ok {
			return
		}
		register(table, sink, fshast.KindAlias, name, url, file, entity)

	case "profileEntity":
		registerStructureDef(table, sink, file, prefix, entity, fshast.KindProfile)

	case "extensionEntity":
		registerStructureDef(table, sink, file, prefix, entity, fshast.KindExtension)

	case "valueSetEntity":
		name, ok := childLexeme(entity, 1)
		if !ok {
			return
		}
		id, hasID := metadataValue(entity, "Id:")
		key := id
		if !hasID {
			key = name
		}
		url := prefix + "/ValueSet/" + key
		register(table, sink, fshast.KindValueSet, name, url, file, entity)
		if hasID && id != name {
			register(table, sink, fshast.KindValueSet, id, url, file, entity)
		}

	case "codeSystemEntity":
		name, ok := childLexeme(entity, 1)
		if !ok {
			return
		}
		id, hasID := metadataValue(entity, "Id:")
		key := id
		if !hasID {
			key = name
		}
		url := prefix + "/CodeSystem/" + key
		register(table, sink, fshast.KindCodeSystem, name, url, file, entity)
		if hasID && id != name {
			register(table, sink, fshast.KindCodeSystem, id, url, file, entity)
		}

	case "instanceEntity", "ruleSetEntity":
		// Reserved: Instance and RuleSet names are never registered in
		// the symbol table. Instances are never referenced externally,
		// and RuleSets are only ever looked up by the visitor directly
		// against the document they were declared in — the visitor
		// still routes a RuleSet name through Resolver.Resolve first,
		// which always hands it back unresolved since nothing here
		// registers it.
	}
}

func registerStructureDef(table *Table, sink *ierrors.Sink, file, prefix string, entity *parsetree.Tree, kind fshast.Kind) {
	name, ok := childLexeme(entity, 1)
	if !ok {
		return
	}
	id, hasID := metadataValue(entity, "Id:")
	key := id
	if !hasID {
		key = name
	}
	url := prefix + "/StructureDefinition/" + key
	register(table, sink, kind, name, url, file, entity)
	if hasID && id != name {
		register(table, sink, kind, id, url, file, entity)
	}
}

// register records name -> url under kind and in the global table. If
// the name is already registered with a different URL, a diagnostic is
// recorded and the original registration is kept. Re-registering the
// same (name, url) pair is a no-op, not a conflict.
func register(table *Table, sink *ierrors.Sink, kind fshast.Kind, name, url, file string, loc *parsetree.Tree) {
	m := table.kindMap(kind)
	if existing, ok := m[name]; ok {
		if existing != url {
			sink.Errorf(file, treeLocation(loc), "%q is already registered as a %s with URL %q; keeping the original registration", name, kind, existing)
		}
	} else {
		m[name] = url
	}

	if existing, ok := table.global[name]; ok {
		if existing != url {
			sink.Errorf(file, treeLocation(loc), "%q is already registered with URL %q; keeping the original registration", name, existing)
		}
	} else {
		table.global[name] = url
	}
}

// metadataValue scans entity's direct children for a metadataLine
// whose key lexeme matches key, returning the first one found (later
// duplicates are the visitor's concern, not the preprocessor's).
func metadataValue(entity *parsetree.Tree, key string) (string, bool) {
	for _, c := range entity.Children {
		if c.Symbol != "metadataLine" || len(c.Children) < 2 {
			continue
		}
		if c.Children[0].Source.Lexeme() == key {
			return c.Children[1].Source.Lexeme(), true
		}
	}
	return "", false
}

func childLexeme(entity *parsetree.Tree, idx int) (string, bool) {
	if idx >= len(entity.Children) {
		return "", false
	}
	c := entity.Children[idx]
	if !c.Terminal {
		return "", false
	}
	return c.Source.Lexeme(), true
}

func treeLocation(t *parsetree.Tree) *ierrors.Location {
	startLine, startCol, endLine, endCol := t.Span()
	if startLine == 0 {
		return nil
	}
	return &ierrors.Location{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
		SourceLine:  t.SourceLine(),
	}
}

package fshvisit

import (
	"strconv"
	"strings"

	"github.com/dekarrin/fshimport/internal/fsh/parsetree"
	"github.com/dekarrin/fshimport/internal/fsh/token"
	"github.com/dekarrin/fshimport/internal/fshast"
)

// visitValue builds the LiteralValue a value parse-tree node
// describes, resolving any embedded symbolic references along the
// way. node's Symbol selects the variant; exactly one must match per
// the grammar, since the parser already reported a syntax error for
// anything else and produced an "undefinedValue" placeholder.
func (v *Visitor) visitValue(node *parsetree.Tree) fshast.LiteralValue {
	switch node.Symbol {
	case "stringValue":
		return fshast.StringLiteral(unescapeSingleLineString(node.Children[0].Source.Lexeme()))

	case "multilineStringValue":
		return fshast.MultilineLiteral(dedentMultilineString(node.Children[0].Source.Lexeme()))

	case "numberValue":
		n, _ := strconv.ParseFloat(node.Children[0].Source.Lexeme(), 64)
		return fshast.NumberLiteral(n)

	case "datetimeValue":
		return fshast.DatetimeLiteral(node.Children[0].Source.Lexeme())

	case "timeValue":
		return fshast.TimeLiteral(node.Children[0].Source.Lexeme())

	case "boolValue":
		return fshast.BoolLiteral(node.Children[0].Source.Lexeme() == "true")

	case "codeValue":
		return fshast.CodeLiteral(v.visitCode(node))

	case "quantityValue":
		return fshast.QuantityLiteral(v.visitQuantity(node))

	case "ratioValue":
		return fshast.RatioLiteral(fshast.Ratio{
			Numerator:   v.visitQuantityPart(node.Children[0]),
			Denominator: v.visitQuantityPart(node.Children[1]),
		})

	case "referenceValue":
		return fshast.ReferenceLiteral(v.visitReference(node))

	default:
		return fshast.LiteralValue{}
	}
}

// visitCode builds a Code from a codeValue node: `[SYSTEM]#code
// ["display"]`. The lexeme is split on the first '#'; a quoted code
// part is unescaped.
func (v *Visitor) visitCode(node *parsetree.Tree) fshast.Code {
	lexeme := node.Children[0].Source.Lexeme()
	system, code := splitCode(lexeme)
	if system != "" {
		system = v.resolver.Resolve(system, fshast.KindAlias, fshast.KindCodeSystem)
	}

	c := fshast.Code{Code: unquoteCode(code), System: system}
	if len(node.Children) > 1 {
		c.Display = unescapeSingleLineString(node.Children[1].Source.Lexeme())
	}
	return c
}

func splitCode(lexeme string) (system, code string) {
	idx := strings.Index(lexeme, "#")
	if idx < 0 {
		return "", lexeme
	}
	return lexeme[:idx], lexeme[idx+1:]
}

func unquoteCode(code string) string {
	if len(code) >= 2 && strings.HasPrefix(code, `"`) && strings.HasSuffix(code, `"`) {
		return unescapeSingleLineString(code)
	}
	return code
}

// visitQuantity builds a Quantity from a quantityValue node: `NUMBER
// UNIT`, where UNIT is a single-quoted UCUM symbol.
func (v *Visitor) visitQuantity(node *parsetree.Tree) fshast.Quantity {
	n, _ := strconv.ParseFloat(node.Children[0].Source.Lexeme(), 64)
	unit := unquoteUnit(node.Children[1].Source.Lexeme())
	return fshast.Quantity{Value: n, Unit: fshast.Code{Code: unit, System: fshast.UcumSystem}}
}

// visitQuantityPart builds a Quantity from one ratioValue operand: a
// bare NUMBER (no unit) or a NUMBER UNIT pair.
func (v *Visitor) visitQuantityPart(part *parsetree.Tree) fshast.Quantity {
	n, _ := strconv.ParseFloat(part.Children[0].Source.Lexeme(), 64)
	if len(part.Children) < 2 {
		return fshast.Quantity{Value: n}
	}
	unit := unquoteUnit(part.Children[1].Source.Lexeme())
	return fshast.Quantity{Value: n, Unit: fshast.Code{Code: unit, System: fshast.UcumSystem}}
}

func unquoteUnit(lexeme string) string {
	if len(lexeme) >= 2 && strings.HasPrefix(lexeme, "'") && strings.HasSuffix(lexeme, "'") {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}

// visitReference builds a Reference from a referenceValue node:
// `Reference(A|B|…)`, taking only the first target before the first
// '|' and resolving it against every kind a reference may point to.
func (v *Visitor) visitReference(node *parsetree.Tree) fshast.Reference {
	targets := node.Children[1:]
	var displayIdx = -1
	for i, c := range targets {
		if c.Source.Class() == token.String {
			displayIdx = i
			break
		}
	}
	if displayIdx >= 0 {
		targets = targets[:displayIdx]
	}
	if len(targets) == 0 {
		return fshast.Reference{}
	}

	first := targets[0].Source.Lexeme()
	resolved := v.resolver.Resolve(first,
		fshast.KindAlias, fshast.KindProfile, fshast.KindExtension,
		fshast.KindValueSet, fshast.KindCodeSystem, fshast.KindInstance)

	ref := fshast.Reference{Reference: resolved}
	if displayIdx >= 0 {
		ref.Display = unescapeSingleLineString(node.Children[1+displayIdx].Source.Lexeme())
	}
	return ref
}

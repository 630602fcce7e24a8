package fshvisit

import "strings"

// unescapeSingleLineString strips the surrounding quotes from a STRING
// lexeme and unescapes `\\` then `\"`, in that order.
func unescapeSingleLineString(lexeme string) string {
	inner := lexeme
	if len(inner) >= 2 && strings.HasPrefix(inner, `"`) && strings.HasSuffix(inner, `"`) {
		inner = inner[1 : len(inner)-1]
	}
	inner = strings.ReplaceAll(inner, `\\`, "\x00")
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, "\x00", `\`)
	return inner
}

// dedentMultilineString implements the five-step normalization of a
// """…""" literal: strip delimiters and a leading newline, drop a
// trailing whitespace-only line, strip the common leading-space count
// from every remaining line, and rejoin.
func dedentMultilineString(lexeme string) string {
	inner := lexeme
	inner = strings.TrimPrefix(inner, `"""`)
	inner = strings.TrimSuffix(inner, `"""`)
	inner = strings.TrimPrefix(inner, "\n")

	lines := strings.Split(inner, "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := 0
		for indent < len(line) && line[indent] == ' ' {
			indent++
		}
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		strip := minIndent
		if strip > len(line) {
			strip = len(line)
		}
		lines[i] = line[strip:]
	}
	return strings.Join(lines, "\n")
}

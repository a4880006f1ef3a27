// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"regexp"
	"strings"
)

// Shape selects which JSON value ExtractJSON isolates
type Shape int

const (
	// ShapeObject isolates a {...} payload
	ShapeObject Shape = iota
	// ShapeArray isolates a [...] payload
	ShapeArray
)

// fenceMarker matches a markdown fence and its optional language tag.
var fenceMarker = regexp.MustCompile("```[A-Za-z0-9_+-]*[ \t]*\r?\n?")

// CleanJSONBlock removes markdown code fence markers from an LLM response.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to,
// and sometimes emit prose around the block, so markers are removed wherever they appear.
func CleanJSONBlock(text string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(text, ""))
}

// ExtractJSON returns the most likely JSON payload in a completion.
// After stripping fences it slices from the first opening bracket to the last
// closing bracket of the requested shape. When either bracket is missing, or
// the close precedes the open, the stripped text is returned unchanged.
// Brackets are not balanced: prose containing braces can widen the span.
func ExtractJSON(text string, shape Shape) string {
	cleaned := CleanJSONBlock(text)

	open, closing := "{", "}"
	if shape == ShapeArray {
		open, closing = "[", "]"
	}

	first := strings.Index(cleaned, open)
	last := strings.LastIndex(cleaned, closing)
	if first == -1 || last == -1 || last <= first {
		return cleaned
	}
	return cleaned[first : last+1]
}

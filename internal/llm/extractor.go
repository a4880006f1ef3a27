// Package llm - extractor.go renders the expected output shape of a structured completion.
package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON document a prompt asks the model to return.
type OutputSchema struct {
	Name   string        // Schema name (e.g., "FitScore")
	Array  bool          // true when the model must return an array of objects
	Fields []SchemaField // Expected output fields
}

// SchemaField defines a single field in the expected output.
type SchemaField struct {
	Name        string // JSON field name
	Example     string // literal JSON example value, e.g. `85` or `["Go", "SQL"]`
	Description string // optional guidance for the model
}

// WriteSchema appends the schema as an annotated JSON example to sb.
func WriteSchema(sb *strings.Builder, schema OutputSchema) {
	indent := "  "
	if schema.Array {
		sb.WriteString("[\n  {\n")
		indent = "    "
	} else {
		sb.WriteString("{\n")
	}

	for i, field := range schema.Fields {
		example := field.Example
		if example == "" {
			example = `""`
		}
		sb.WriteString(fmt.Sprintf("%s\"%s\": %s", indent, field.Name, example))
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		sb.WriteString("\n")
	}

	if schema.Array {
		sb.WriteString("  }\n]")
	} else {
		sb.WriteString("}")
	}
}

// RenderSchema returns the schema as a standalone string.
func RenderSchema(schema OutputSchema) string {
	var sb strings.Builder
	WriteSchema(&sb, schema)
	return sb.String()
}

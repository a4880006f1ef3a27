package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSchema_Object(t *testing.T) {
	schema := OutputSchema{
		Name: "Score",
		Fields: []SchemaField{
			{Name: "score", Example: "85"},
			{Name: "gaps", Example: `["Learn Kubernetes"]`, Description: "missing skills"},
		},
	}

	expected := "{\n  \"score\": 85,\n  \"gaps\": [\"Learn Kubernetes\"] // missing skills\n}"
	assert.Equal(t, expected, RenderSchema(schema))
}

func TestRenderSchema_Array(t *testing.T) {
	schema := OutputSchema{
		Name:   "Items",
		Array:  true,
		Fields: []SchemaField{{Name: "id", Example: "1"}, {Name: "text"}},
	}

	expected := "[\n  {\n    \"id\": 1,\n    \"text\": \"\"\n  }\n]"
	assert.Equal(t, expected, RenderSchema(schema))
}

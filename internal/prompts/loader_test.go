package prompts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get(AssessmentFile, "parse-resume")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Extract information from this resume")
	assert.Contains(t, prompt, "{{.ResumeText}}")

	_, err = Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "not embedded")

	_, err = Get(AssessmentFile, "nonexistent-key")
	assert.ErrorContains(t, err, "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustGet("nonexistent.json", "some-key") })
	assert.NotPanics(t, func() { MustGet(AssessmentFile, "fit-score") })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"fills all", "Hello {{.Name}}, welcome to {{.Company}}!", map[string]string{"Name": "Alice", "Company": "Acme Corp"}, "Hello Alice, welcome to Acme Corp!"},
		{"values not re-expanded", "A={{.A}} B={{.B}}", map[string]string{"A": "{{.B}}", "B": "bee"}, "A={{.B}} B=bee"},
		{"no data", "Hello {{.Name}}", nil, "Hello {{.Name}}"},
		{"unknown placeholder kept", "{{.Role}} at {{.Company}}", map[string]string{"Role": "SRE"}, "SRE at {{.Company}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestKeys(t *testing.T) {
	keys, err := Keys(AssessmentFile)
	require.NoError(t, err)
	for _, key := range []string{
		"parse-resume", "fit-score", "code-analysis", "code-analysis-system",
		"questions-system", "questions-user", "evaluate-answer", "assistant-system",
	} {
		assert.Contains(t, keys, key)
	}
	assert.IsIncreasing(t, keys)
}

func TestTemplates_PlaceholderSyntax(t *testing.T) {
	placeholder := regexp.MustCompile(`\{\{\s*\.?([^}]*)\}\}`)
	wellFormed := regexp.MustCompile(`^\{\{\.[A-Z][A-Za-z0-9]*\}\}$`)

	keys, err := Keys(AssessmentFile)
	require.NoError(t, err)
	for _, key := range keys {
		for _, m := range placeholder.FindAllString(MustGet(AssessmentFile, key), -1) {
			assert.Regexp(t, wellFormed, m, "template %s", key)
		}
	}
}

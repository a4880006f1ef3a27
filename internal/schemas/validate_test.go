package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/career-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{CodeAnalysis, FitScore, InterviewQuestions, JobConfigs, ParsedProfile}, Names())
}

func TestEmbeddedSchemas_Compile(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			assert.NoError(t, err)
		})
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("resume_plan", []byte(`{}`))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "unknown schema")
}

func TestValidate_FitScore(t *testing.T) {
	valid, err := json.Marshal(types.UnavailableFitScore())
	require.NoError(t, err)
	assert.NoError(t, Validate(FitScore, valid))

	err = Validate(FitScore, []byte(`{"score": 140, "breakdown": {}, "strengths": [], "gaps": [], "suggestions": []}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, FitScore, validationErr.Schema)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2, "score out of range and breakdown fields missing")
}

func TestValidate_ParsedProfile(t *testing.T) {
	data, err := json.Marshal(types.DefaultProfile(types.ParseFailSummary))
	require.NoError(t, err)
	assert.NoError(t, Validate(ParsedProfile, data))

	err = Validate(ParsedProfile, []byte(`{"name": "Ada"}`))
	assert.Error(t, err)
}

func TestValidate_CodeAnalysis(t *testing.T) {
	data, err := json.Marshal(types.FallbackAnalysis("raw", "code"))
	require.NoError(t, err)
	assert.NoError(t, Validate(CodeAnalysis, data))
}

func TestValidate_InterviewQuestions(t *testing.T) {
	questions := []types.InterviewQuestion{{
		ID:            1,
		Question:      "Which structure gives constant time lookup?",
		Options:       []string{"Hash map", "Linked list", "Binary heap", "Sorted array"},
		CorrectAnswer: 0,
		Explanation:   types.DefaultExplanation,
		Difficulty:    types.DifficultyMedium,
		Category:      types.DefaultCategory,
	}}
	data, err := json.Marshal(questions)
	require.NoError(t, err)
	assert.NoError(t, Validate(InterviewQuestions, data))

	questions[0].Options = questions[0].Options[:3]
	questions[0].CorrectAnswer = 5
	data, err = json.Marshal(questions)
	require.NoError(t, err)
	var validationErr *ValidationError
	require.ErrorAs(t, Validate(InterviewQuestions, data), &validationErr)
	assert.Len(t, validationErr.Errors, 2)
}

func TestValidate_JobConfigs(t *testing.T) {
	assert.NoError(t, Validate(JobConfigs, []byte(`[{"role": "SRE", "experienceLevel": "senior", "yearsOfExperience": 6}]`)))
	assert.Error(t, Validate(JobConfigs, []byte(`[{"role": "SRE", "experienceLevel": "principal"}]`)))
	assert.Error(t, Validate(JobConfigs, []byte(`{"role": "SRE"}`)))
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(FitScore, []byte(`{ invalid json }`))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.json")
	data, err := json.Marshal(types.UnavailableFitScore())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	assert.NoError(t, ValidateFile(FitScore, path))

	err = ValidateFile(FitScore, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Fields(t *testing.T) {
	err := Validate(JobConfigs, []byte(`[{"role": 3, "experienceLevel": "principal"}]`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.ElementsMatch(t, []string{"0.role", "0.experienceLevel"}, validationErr.Fields())
	assert.Contains(t, err.Error(), "document does not match job_configs (2 problems)")
}

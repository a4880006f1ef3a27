package assessment

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/career-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceFitScore_ClampsOutOfRange(t *testing.T) {
	fs, err := CoerceFitScore(`{
		"score": 140,
		"breakdown": {"skills_match": -5, "experience_match": "65", "education_match": 101.5},
		"strengths": ["Strong Go background", "", 42],
		"gaps": ["No Kubernetes"],
		"suggestions": []
	}`)
	require.NoError(t, err)

	assert.Equal(t, 100.0, fs.Score)
	assert.Equal(t, 0.0, fs.Breakdown.SkillsMatch)
	assert.Equal(t, 65.0, fs.Breakdown.ExperienceMatch)
	assert.Equal(t, 100.0, fs.Breakdown.EducationMatch)
	assert.Equal(t, 0.0, fs.Breakdown.ProjectsMatch)
	assert.Equal(t, []string{"Strong Go background", "42"}, fs.Strengths)
	assert.Equal(t, []string{"No Kubernetes"}, fs.Gaps)
	assert.Empty(t, fs.Suggestions)
	assert.NotNil(t, fs.Suggestions)
}

func TestCoerceFitScore_Defaults(t *testing.T) {
	fs, err := CoerceFitScore(`{"score": "high"}`)
	require.NoError(t, err)

	assert.Equal(t, 0.0, fs.Score)
	assert.Equal(t, []string{}, fs.Strengths)
	assert.Equal(t, types.GapsNotAvailable, fs.Gaps)
	assert.Equal(t, types.SuggestionsNotAvailable, fs.Suggestions)

	fs.Gaps[0] = "mutated"
	assert.Equal(t, "Analysis not available", types.GapsNotAvailable[0], "defaults must be copied")
}

func TestCoerceFitScore_InvalidJSON(t *testing.T) {
	for _, text := range []string{"", "not json", `{"score": 80`, `[1, 2]`} {
		_, err := CoerceFitScore(text)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "input %q", text)
	}
}

func TestCoerceProfile(t *testing.T) {
	profile, err := CoerceProfile(`{
		"name": "Ada Lovelace",
		"email": "ada@example.com",
		"skills": ["Mathematics", "Analytical Engines"],
		"experience": [
			{"company": "Babbage & Co", "role": "Analyst", "duration": "1842-1843", "description": "Notes on the engine"},
			"free text entry"
		],
		"education": [{"institution": "Home tutoring", "degree": "None", "year": 1833}],
		"projects": [{"name": "Note G", "technologies": ["Bernoulli numbers"]}]
	}`)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, "", profile.Phone)
	assert.Equal(t, []string{"Mathematics", "Analytical Engines"}, profile.Skills)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Babbage & Co", profile.Experience[0].Company)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "1833", profile.Education[0].Year)
	require.Len(t, profile.Projects, 1)
	assert.Equal(t, []string{"Bernoulli numbers"}, profile.Projects[0].Technologies)
	assert.Equal(t, types.NoSummary, profile.Summary)
	assert.NotNil(t, profile.Certifications)
}

func TestCoerceProfile_EmptyObject(t *testing.T) {
	profile, err := CoerceProfile(`{}`)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultProfile(""), profile)
}

func TestCoerceCodeAnalysis_PartialOutput(t *testing.T) {
	analysis, err := CoerceCodeAnalysis(`{
		"correctness": {"score": 90, "explanation": "Handles all cases", "issues": []},
		"timeComplexity": {"current": "O(n log n)"},
		"approach": {"isOptimal": false},
		"overallScore": 250
	}`, "func f() {}")
	require.NoError(t, err)

	assert.Equal(t, 90.0, analysis.Correctness.Score)
	assert.Equal(t, "Handles all cases", analysis.Correctness.Explanation)
	assert.Equal(t, "O(n log n)", analysis.TimeComplexity.Current)
	assert.Equal(t, "O(n)", analysis.TimeComplexity.Optimal)
	assert.False(t, analysis.Approach.IsOptimal)
	assert.Equal(t, 100.0, analysis.OverallScore)
	assert.Equal(t, 80.0, analysis.CodeQuality.Score)
	assert.Equal(t, "func f() {}", analysis.OptimizedSolution.Code)
	assert.Equal(t, noDetail, analysis.Feedback)
}

func TestCoerceAnswerEvaluation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		score float64
	}{
		{"in range", `{"score": 7, "feedback": "Good"}`, 7},
		{"above scale", `{"score": 12}`, 10},
		{"below scale", `{"score": -1}`, 0},
		{"missing", `{"feedback": "ok"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := CoerceAnswerEvaluation(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.score, eval.Score)
			assert.NotNil(t, eval.Strengths)
		})
	}
}

func TestCoerce_NonFiniteNumbersFallBack(t *testing.T) {
	fs, err := CoerceFitScore(`{
		"score": "NaN",
		"breakdown": {"skills_match": "nan", "experience_match": "Infinity", "education_match": "-Inf", "projects_match": "+Inf"}
	}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fs.Score)
	assert.Equal(t, types.ScoreBreakdown{}, fs.Breakdown)

	_, err = json.Marshal(fs)
	require.NoError(t, err)

	analysis, err := CoerceCodeAnalysis(`{"correctness": {"score": "NaN"}, "overallScore": "Infinity"}`, "")
	require.NoError(t, err)
	assert.Equal(t, 75.0, analysis.Correctness.Score)
	assert.Equal(t, 78.0, analysis.OverallScore)

	eval, err := CoerceAnswerEvaluation(`{"score": "NaN"}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, eval.Score)
}

func roundTrip[T any](t *testing.T, v T) T {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestCoerced_RoundTrip(t *testing.T) {
	t.Run("fit score", func(t *testing.T) {
		fs, err := CoerceFitScore(`{"score": 71.5, "breakdown": {"skills_match": 80}, "strengths": ["Go"], "gaps": [], "suggestions": ["Learn Rust"]}`)
		require.NoError(t, err)
		assert.Equal(t, fs, roundTrip(t, fs))
	})
	t.Run("unavailable fit score", func(t *testing.T) {
		fs := types.UnavailableFitScore()
		assert.Equal(t, fs, roundTrip(t, fs))
	})
	t.Run("profile", func(t *testing.T) {
		p, err := CoerceProfile(`{
			"name": "Ada Lovelace",
			"skills": ["Go", "SQL"],
			"experience": [{"company": "Analytical Engines", "role": "Engineer", "duration": "2 years"}],
			"education": [{"institution": "University of London", "degree": "BSc", "year": 1835}],
			"projects": [{"name": "Note G"}]
		}`)
		require.NoError(t, err)
		assert.Equal(t, p, roundTrip(t, p))
	})
	t.Run("default profile", func(t *testing.T) {
		p := types.DefaultProfile("")
		assert.Equal(t, p, roundTrip(t, p))
	})
	t.Run("code analysis", func(t *testing.T) {
		a, err := CoerceCodeAnalysis(`{"correctness": {"score": 90, "issues": ["off by one"]}, "learningPoints": []}`, "func f() {}")
		require.NoError(t, err)
		assert.Equal(t, a, roundTrip(t, a))
	})
	t.Run("fallback analysis", func(t *testing.T) {
		a := types.FallbackAnalysis("model said something", "print(1)")
		assert.Equal(t, a, roundTrip(t, a))
	})
}

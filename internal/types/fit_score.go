package types

import "math"

// Placeholder lists used when a fit score cannot be produced or parsed
var (
	GapsNotAvailable        = []string{"Analysis not available"}
	SuggestionsNotAvailable = []string{"Please try again for suggestions"}
	GapsUnavailable         = []string{"Analysis temporarily unavailable"}
	SuggestionsRetryLater   = []string{"Please try again later for detailed feedback"}
)

// FitScore represents how well a profile matches one job configuration.
// Every numeric field lies in [0,100].
type FitScore struct {
	Score       float64        `json:"score"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
	Strengths   []string       `json:"strengths"`
	Gaps        []string       `json:"gaps"`
	Suggestions []string       `json:"suggestions"`
}

// ScoreBreakdown holds the four fit sub-scores
type ScoreBreakdown struct {
	SkillsMatch     float64 `json:"skills_match"`
	ExperienceMatch float64 `json:"experience_match"`
	EducationMatch  float64 `json:"education_match"`
	ProjectsMatch   float64 `json:"projects_match"`
}

// UnavailableFitScore is recorded for a configuration whose scoring call failed.
func UnavailableFitScore() FitScore {
	return FitScore{
		Strengths:   []string{},
		Gaps:        append([]string(nil), GapsUnavailable...),
		Suggestions: append([]string(nil), SuggestionsRetryLater...),
	}
}

// Clamp bounds a score to [0,100]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

package assessment

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/career-prep/internal/types"
	"github.com/tidwall/gjson"
)

const noDetail = "No detailed analysis provided"

// parseObject checks that text is a JSON object and returns its root.
func parseObject(task, text string) (gjson.Result, error) {
	if !gjson.Valid(text) {
		return gjson.Result{}, &ParseError{Task: task, Message: "model output is not valid JSON"}
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return gjson.Result{}, &ParseError{Task: task, Message: "expected a JSON object, got " + root.Type.String()}
	}
	return root, nil
}

// CoerceProfile builds a ParsedProfile from the model's JSON, defaulting every field it cannot read.
func CoerceProfile(text string) (types.ParsedProfile, error) {
	root, err := parseObject("parse resume", text)
	if err != nil {
		return types.ParsedProfile{}, err
	}

	profile := types.ParsedProfile{
		Name:           stringOr(root.Get("name"), types.UnknownName),
		Email:          stringOr(root.Get("email"), ""),
		Phone:          stringOr(root.Get("phone"), ""),
		Skills:         stringList(root.Get("skills"), nil),
		Certifications: stringList(root.Get("certifications"), nil),
		Summary:        stringOr(root.Get("summary"), types.NoSummary),
		Experience:     []types.ExperienceEntry{},
		Education:      []types.EducationEntry{},
		Projects:       []types.ProjectEntry{},
	}

	eachObject(root.Get("experience"), func(e gjson.Result) {
		profile.Experience = append(profile.Experience, types.ExperienceEntry{
			Company:     stringOr(e.Get("company"), ""),
			Role:        stringOr(e.Get("role"), ""),
			Duration:    stringOr(e.Get("duration"), ""),
			Description: stringOr(e.Get("description"), ""),
		})
	})
	eachObject(root.Get("education"), func(e gjson.Result) {
		profile.Education = append(profile.Education, types.EducationEntry{
			Institution: stringOr(e.Get("institution"), ""),
			Degree:      stringOr(e.Get("degree"), ""),
			Field:       stringOr(e.Get("field"), ""),
			Year:        stringOr(e.Get("year"), ""),
		})
	})
	eachObject(root.Get("projects"), func(e gjson.Result) {
		profile.Projects = append(profile.Projects, types.ProjectEntry{
			Name:         stringOr(e.Get("name"), ""),
			Description:  stringOr(e.Get("description"), ""),
			Technologies: stringList(e.Get("technologies"), nil),
			Type:         stringOr(e.Get("type"), ""),
		})
	})

	return profile, nil
}

// CoerceFitScore builds a FitScore from the model's JSON with every number clamped to [0,100].
func CoerceFitScore(text string) (types.FitScore, error) {
	root, err := parseObject("fit score", text)
	if err != nil {
		return types.FitScore{}, err
	}

	breakdown := root.Get("breakdown")
	return types.FitScore{
		Score: score(root.Get("score"), 0),
		Breakdown: types.ScoreBreakdown{
			SkillsMatch:     score(breakdown.Get("skills_match"), 0),
			ExperienceMatch: score(breakdown.Get("experience_match"), 0),
			EducationMatch:  score(breakdown.Get("education_match"), 0),
			ProjectsMatch:   score(breakdown.Get("projects_match"), 0),
		},
		Strengths:   stringList(root.Get("strengths"), nil),
		Gaps:        stringList(root.Get("gaps"), types.GapsNotAvailable),
		Suggestions: stringList(root.Get("suggestions"), types.SuggestionsNotAvailable),
	}, nil
}

// CoerceCodeAnalysis builds a CodeAnalysis from the model's JSON.
// Missing fields take the values of the fallback analysis for code.
func CoerceCodeAnalysis(text, code string) (types.CodeAnalysis, error) {
	root, err := parseObject("code analysis", text)
	if err != nil {
		return types.CodeAnalysis{}, err
	}

	def := types.FallbackAnalysis(noDetail, code)
	correctness := root.Get("correctness")
	timeC := root.Get("timeComplexity")
	spaceC := root.Get("spaceComplexity")
	quality := root.Get("codeQuality")
	approach := root.Get("approach")
	optimized := root.Get("optimizedSolution")

	return types.CodeAnalysis{
		Correctness: types.Correctness{
			Score:       score(correctness.Get("score"), def.Correctness.Score),
			Explanation: stringOr(correctness.Get("explanation"), def.Correctness.Explanation),
			Issues:      stringList(correctness.Get("issues"), nil),
		},
		TimeComplexity: coerceComplexity(timeC, def.TimeComplexity),
		SpaceComplexity: coerceComplexity(spaceC, def.SpaceComplexity),
		CodeQuality: types.CodeQuality{
			Score:        score(quality.Get("score"), def.CodeQuality.Score),
			Strengths:    stringList(quality.Get("strengths"), def.CodeQuality.Strengths),
			Improvements: stringList(quality.Get("improvements"), def.CodeQuality.Improvements),
		},
		Approach: types.Approach{
			Description:           stringOr(approach.Get("description"), def.Approach.Description),
			IsOptimal:             boolOr(approach.Get("isOptimal"), def.Approach.IsOptimal),
			AlternativeApproaches: stringList(approach.Get("alternativeApproaches"), nil),
		},
		OptimizedSolution: types.OptimizedSolution{
			Code:        stringOr(optimized.Get("code"), def.OptimizedSolution.Code),
			Explanation: stringOr(optimized.Get("explanation"), def.OptimizedSolution.Explanation),
		},
		LearningPoints: stringList(root.Get("learningPoints"), def.LearningPoints),
		OverallScore:   score(root.Get("overallScore"), def.OverallScore),
		Feedback:       stringOr(root.Get("feedback"), def.Feedback),
	}, nil
}

func coerceComplexity(r gjson.Result, def types.Complexity) types.Complexity {
	return types.Complexity{
		Current:     stringOr(r.Get("current"), def.Current),
		Optimal:     stringOr(r.Get("optimal"), def.Optimal),
		Explanation: stringOr(r.Get("explanation"), def.Explanation),
	}
}

// CoerceAnswerEvaluation builds an AnswerEvaluation with the score clamped to [0,10].
func CoerceAnswerEvaluation(text string) (types.AnswerEvaluation, error) {
	root, err := parseObject("evaluate answer", text)
	if err != nil {
		return types.AnswerEvaluation{}, err
	}

	s := number(root.Get("score"), 0)
	switch {
	case s < 0:
		s = 0
	case s > 10:
		s = 10
	}
	return types.AnswerEvaluation{
		Score:        s,
		Feedback:     stringOr(root.Get("feedback"), noDetail),
		Strengths:    stringList(root.Get("strengths"), nil),
		Improvements: stringList(root.Get("improvements"), nil),
	}, nil
}

// number reads a finite JSON number or numeric string, else def.
func number(r gjson.Result, def float64) float64 {
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Float()
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// score reads a number and clamps it to [0,100].
func score(r gjson.Result, def float64) float64 {
	return types.Clamp(number(r, def))
}

// stringOr reads a non-blank string (numbers are formatted), else def.
func stringOr(r gjson.Result, def string) string {
	switch r.Type {
	case gjson.String:
		if s := strings.TrimSpace(r.Str); s != "" {
			return s
		}
	case gjson.Number:
		return r.Raw
	}
	return def
}

func boolOr(r gjson.Result, def bool) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	}
	return def
}

// stringList reads an array of strings, skipping blank or non-scalar items.
// A missing or non-array value yields a copy of def; the result is never nil.
func stringList(r gjson.Result, def []string) []string {
	if !r.IsArray() {
		return append([]string{}, def...)
	}
	out := []string{}
	r.ForEach(func(_, item gjson.Result) bool {
		if s := stringOr(item, ""); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func eachObject(r gjson.Result, fn func(gjson.Result)) {
	if !r.IsArray() {
		return
	}
	r.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			fn(item)
		}
		return true
	})
}

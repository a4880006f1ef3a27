package assessment

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/types"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// MinValidRatio is the share of requested questions that must pass the quality check
const MinValidRatio = 0.8

const optionsPerQuestion = 4

var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// GenerateQuestions produces count multiple-choice questions for role.
// A count of zero or less means the default batch size. The output is read
// twice at most: once as a whole and once through the first-to-last bracket match.
func (p *Pipeline) GenerateQuestions(ctx context.Context, role string, count int) ([]types.InterviewQuestion, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, &InputError{Field: "role", Message: "is required"}
	}
	if count <= 0 {
		count = types.DefaultQuestionCount
	}

	system, prompt := BuildQuestionPrompt(role, count)
	raw, err := p.complete(ctx, p.settings.Questions, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	cleaned := llm.CleanJSONBlock(raw)
	questions, err := CoerceQuestions(cleaned, count)
	if err == nil {
		return questions, nil
	}

	p.logger.Warn("question output rejected, retrying extraction",
		zap.String("task", "questions"),
		zap.String("role", role),
		zap.Error(err))

	match := arrayPattern.FindString(cleaned)
	if match == "" {
		return nil, err
	}
	return CoerceQuestions(match, count)
}

// CoerceQuestions reads a question array (or an object with a "questions" array),
// keeps the items that pass the quality check, and normalizes them.
// It fails when fewer than MinValidRatio of count items are usable.
func CoerceQuestions(text string, count int) ([]types.InterviewQuestion, error) {
	if count <= 0 {
		count = types.DefaultQuestionCount
	}
	if !gjson.Valid(text) {
		return nil, &GenerationError{
			Requested: count,
			Message:   "unparseable output",
			Cause:     &ParseError{Task: "questions", Message: "model output is not valid JSON"},
		}
	}

	items := gjson.Parse(text)
	if items.IsObject() {
		items = items.Get("questions")
	}
	if !items.IsArray() {
		return nil, &GenerationError{Requested: count, Message: "no question array in output"}
	}

	var valid []gjson.Result
	items.ForEach(func(_, item gjson.Result) bool {
		if usableQuestion(item) {
			valid = append(valid, item)
		}
		return true
	})

	if float64(len(valid)) < float64(count)*MinValidRatio {
		return nil, &GenerationError{
			Requested: count,
			Valid:     len(valid),
			Message:   "too few usable questions",
		}
	}

	if len(valid) > count {
		valid = valid[:count]
	}
	out := make([]types.InterviewQuestion, len(valid))
	for i, item := range valid {
		out[i] = normalizeQuestion(i+1, item)
	}
	return out, nil
}

// usableQuestion rejects placeholder text and malformed option lists.
func usableQuestion(item gjson.Result) bool {
	q := item.Get("question")
	if q.Type != gjson.String || utf8.RuneCountInString(q.Str) <= 20 || strings.Contains(q.Str, "Question ") {
		return false
	}
	opts := item.Get("options").Array()
	if !item.Get("options").IsArray() || len(opts) != optionsPerQuestion {
		return false
	}
	for _, o := range opts {
		if o.Type != gjson.String || utf8.RuneCountInString(o.Str) <= 3 {
			return false
		}
	}
	return true
}

func normalizeQuestion(id int, item gjson.Result) types.InterviewQuestion {
	opts := item.Get("options").Array()
	options := make([]string, len(opts))
	for i, o := range opts {
		options[i] = o.Str
	}

	correct := 0
	if ca := item.Get("correctAnswer"); ca.Type == gjson.Number {
		f := ca.Float()
		if f == math.Trunc(f) && f >= 0 && f < optionsPerQuestion {
			correct = int(f)
		}
	}

	difficulty := types.DifficultyMedium
	if item.Get("difficulty").Str == types.DifficultyHard {
		difficulty = types.DifficultyHard
	}

	return types.InterviewQuestion{
		ID:            id,
		Question:      item.Get("question").Str,
		Options:       options,
		CorrectAnswer: correct,
		Explanation:   stringOr(item.Get("explanation"), types.DefaultExplanation),
		Difficulty:    difficulty,
		Category:      stringOr(item.Get("category"), types.DefaultCategory),
	}
}

package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// questionBatch renders good well-formed questions followed by bad placeholder ones.
func questionBatch(t *testing.T, good, bad int) string {
	t.Helper()
	items := make([]map[string]any, 0, good+bad)
	for i := 0; i < good; i++ {
		items = append(items, map[string]any{
			"id":            100 + i,
			"question":      fmt.Sprintf("Which data structure gives O(1) average lookup in scenario %d?", i),
			"options":       []string{"Hash map", "Linked list", "Binary heap", "Sorted array"},
			"correctAnswer": 0,
			"explanation":   "Hash maps provide constant time average lookup",
			"difficulty":    "hard",
			"category":      "Problem Solving",
		})
	}
	for i := 0; i < bad; i++ {
		items = append(items, map[string]any{
			"question": fmt.Sprintf("Question %d about something", i),
			"options":  []string{"A", "B", "C", "D"},
		})
	}
	data, err := json.Marshal(items)
	require.NoError(t, err)
	return string(data)
}

func TestCoerceQuestions_Threshold(t *testing.T) {
	_, err := CoerceQuestions(questionBatch(t, 25, 10), 35)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 35, genErr.Requested)
	assert.Equal(t, 25, genErr.Valid)

	questions, err := CoerceQuestions(questionBatch(t, 29, 6), 35)
	require.NoError(t, err)
	assert.Len(t, questions, 29, "short batches are not padded")
	for i, q := range questions {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestCoerceQuestions_TruncatesToCount(t *testing.T) {
	questions, err := CoerceQuestions(questionBatch(t, 12, 0), 10)
	require.NoError(t, err)
	assert.Len(t, questions, 10)
	assert.Equal(t, 10, questions[9].ID)
}

func TestCoerceQuestions_Normalization(t *testing.T) {
	text := `{"questions": [
		{"question": "What does the CAP theorem state about distributed systems?",
		 "options": ["Consistency only", "Pick two of three", "Availability only", "Partition never"],
		 "correctAnswer": 7, "difficulty": "easy"},
		{"question": "Which isolation level prevents phantom reads in SQL?",
		 "options": ["Read committed", "Serializable", "Read uncommitted", "Repeatable read"],
		 "correctAnswer": 1.5, "difficulty": "hard", "category": "System Design", "explanation": "Range locks"}
	]}`

	questions, err := CoerceQuestions(text, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, 0, questions[0].CorrectAnswer)
	assert.Equal(t, types.DifficultyMedium, questions[0].Difficulty)
	assert.Equal(t, types.DefaultCategory, questions[0].Category)
	assert.Equal(t, types.DefaultExplanation, questions[0].Explanation)

	assert.Equal(t, 0, questions[1].CorrectAnswer, "fractional answers are reset")
	assert.Equal(t, types.DifficultyHard, questions[1].Difficulty)
	assert.Equal(t, "System Design", questions[1].Category)
	assert.Equal(t, "Range locks", questions[1].Explanation)
}

func TestUsableQuestion(t *testing.T) {
	opts := `["Option one", "Option two", "Option three", "Option four"]`
	tests := []struct {
		name string
		item string
		want bool
	}{
		{"valid", `{"question": "How does a goroutine differ from a thread?", "options": ` + opts + `}`, true},
		{"short question", `{"question": "Why Go?", "options": ` + opts + `}`, false},
		{"placeholder", `{"question": "Question 4: explain channels in detail", "options": ` + opts + `}`, false},
		{"three options", `{"question": "How does a goroutine differ from a thread?", "options": ["Option one", "Option two", "Option three"]}`, false},
		{"short option", `{"question": "How does a goroutine differ from a thread?", "options": ["Yes", "Option two", "Option three", "Option four"]}`, false},
		{"numeric option", `{"question": "How does a goroutine differ from a thread?", "options": [12345, "Option two", "Option three", "Option four"]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, gjson.Valid(tt.item))
			assert.Equal(t, tt.want, usableQuestion(gjson.Parse(tt.item)))
		})
	}
}

func TestGenerateQuestions(t *testing.T) {
	t.Run("fenced output", func(t *testing.T) {
		client := &MockLLMClient{
			CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
				assert.Equal(t, "mock-advanced", req.Model)
				assert.Equal(t, 8000, req.MaxTokens)
				assert.Contains(t, req.System, "Generate 5 multiple choice questions for a Go Developer")
				return "```json\n" + questionBatch(t, 5, 0) + "\n```", nil
			},
		}
		questions, err := New(client, nil, nil).GenerateQuestions(context.Background(), "Go Developer", 5)
		require.NoError(t, err)
		assert.Len(t, questions, 5)
	})

	t.Run("second extraction recovers array from prose", func(t *testing.T) {
		client := &MockLLMClient{
			CompleteFunc: func(_ context.Context, _ llm.Request) (string, error) {
				return "Here are your questions:\n" + questionBatch(t, 4, 0) + "\nGood luck!", nil
			},
		}
		questions, err := New(client, nil, nil).GenerateQuestions(context.Background(), "Go Developer", 4)
		require.NoError(t, err)
		assert.Len(t, questions, 4)
	})

	t.Run("rejected batch", func(t *testing.T) {
		client := &MockLLMClient{
			CompleteFunc: func(_ context.Context, _ llm.Request) (string, error) {
				return questionBatch(t, 25, 10), nil
			},
		}
		_, err := New(client, nil, nil).GenerateQuestions(context.Background(), "Go Developer", 0)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, types.DefaultQuestionCount, genErr.Requested)
	})

	t.Run("no array at all", func(t *testing.T) {
		client := &MockLLMClient{
			CompleteFunc: func(_ context.Context, _ llm.Request) (string, error) {
				return "Sorry, I cannot help with that.", nil
			},
		}
		_, err := New(client, nil, nil).GenerateQuestions(context.Background(), "Go Developer", 10)
		var genErr *GenerationError
		assert.ErrorAs(t, err, &genErr)
	})

	t.Run("empty role", func(t *testing.T) {
		client := &MockLLMClient{}
		_, err := New(client, nil, nil).GenerateQuestions(context.Background(), " ", 10)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr)
		assert.Empty(t, client.Requests())
	})
}

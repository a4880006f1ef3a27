package types

import (
	"time"

	"github.com/google/uuid"
)

// Question difficulty and category values
const (
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DefaultCategory    = "Technical Knowledge"
	DefaultExplanation = "Explanation not provided"

	// DefaultQuestionCount is the size of a generated assessment when none is requested
	DefaultQuestionCount = 35
)

// QuestionCategories lists the categories the generator is asked to cover
var QuestionCategories = []string{
	"Technical Knowledge",
	"Problem Solving",
	"Coding Logic",
	"System Design",
	"Best Practices",
}

// InterviewQuestion is one multiple-choice assessment item
type InterviewQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Category      string   `json:"category"`
}

// GenerateQuestionsRequest asks for a question batch for a role
type GenerateQuestionsRequest struct {
	Role  string `json:"role" validate:"required"`
	Count int    `json:"count" validate:"gte=0,lte=100"`
}

// SubmitInterviewRequest carries a completed assessment for grading
type SubmitInterviewRequest struct {
	Role      string              `json:"role" validate:"required"`
	Questions []InterviewQuestion `json:"questions" validate:"required,min=1"`
	Answers   []int               `json:"answers"`
	TimeSpent int                 `json:"timeSpent"`
}

// InterviewResult is a graded assessment
type InterviewResult struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	Role           string              `json:"role"`
	Questions      []InterviewQuestion `json:"questions,omitempty"`
	Answers        []int               `json:"answers"`
	Score          float64             `json:"score"`
	TotalQuestions int                 `json:"totalQuestions"`
	CorrectAnswers int                 `json:"correctAnswers"`
	TimeSpent      int                 `json:"timeSpent"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Grade counts the answers matching each question's correct option.
// Unanswered questions count as wrong; the score is 0 for an empty batch.
func Grade(questions []InterviewQuestion, answers []int) (correct int, score float64) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	if len(questions) == 0 {
		return 0, 0
	}
	return correct, float64(correct) / float64(len(questions)) * 100
}

// EvaluateAnswerRequest asks for feedback on an open-ended answer
type EvaluateAnswerRequest struct {
	Role     string `json:"role"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// AnswerEvaluation is the model's grading of an open-ended answer. Score is on a 0-10 scale.
type AnswerEvaluation struct {
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

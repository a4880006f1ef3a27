package types

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// Problem difficulties
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Coding session outcomes
const (
	SessionAttempted = "attempted"
	SessionSolved    = "solved"
)

// Submission messages
const (
	SolvedMessage    = "Congratulations! Problem solved!"
	AttemptedMessage = "Keep trying!"
)

// Problem is a coding-practice exercise from the catalog
type Problem struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Difficulty       string            `json:"difficulty"`
	Topic            string            `json:"topic"`
	Description      string            `json:"description"`
	Examples         []ProblemExample  `json:"examples"`
	Constraints      []string          `json:"constraints"`
	TestCases        []TestCase        `json:"testCases"`
	SolutionTemplate map[string]string `json:"solutionTemplate"`
	Companies        []string          `json:"companies"`
	AcceptanceRate   float64           `json:"acceptanceRate"`
	Likes            int               `json:"likes"`
	Dislikes         int               `json:"dislikes"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ProblemExample is a worked input/output pair shown with a problem
type ProblemExample struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// TestCase is an input and its expected result, both free-form JSON
type TestCase struct {
	Input    json.RawMessage `json:"input"`
	Expected json.RawMessage `json:"expected"`
}

// ProblemFilter narrows a catalog listing; empty fields match everything.
type ProblemFilter struct {
	Difficulty string
	Topic      string
}

// ValidDifficulty reports whether d is one of the catalog difficulties
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// TestResults is the client-side test run reported with a submission
type TestResults struct {
	Passed    int  `json:"passed" validate:"gte=0"`
	Total     int  `json:"total" validate:"gte=0"`
	AllPassed bool `json:"allPassed"`
}

// Score is 100 when every test passed, else the floored pass percentage.
// Passed counts above Total are capped.
func (t TestResults) Score() float64 {
	if t.AllPassed {
		return 100
	}
	if t.Total <= 0 || t.Passed <= 0 {
		return 0
	}
	passed := min(t.Passed, t.Total)
	return math.Floor(float64(passed) / float64(t.Total) * 100)
}

// CodingSubmitRequest is a solution submitted against a catalog problem
type CodingSubmitRequest struct {
	ProblemID   int64       `json:"problemId" validate:"required,gt=0"`
	Language    string      `json:"language" validate:"required"`
	Code        string      `json:"code" validate:"required"`
	TestResults TestResults `json:"testResults"`
}

// CodingSession is a stored submission
type CodingSession struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	ProblemID   int64       `json:"problem_id"`
	Language    string      `json:"language"`
	Code        string      `json:"code"`
	TestResults TestResults `json:"test_results"`
	Score       float64     `json:"score"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewCodingSession scores a submission for userID.
func NewCodingSession(userID uuid.UUID, req CodingSubmitRequest) *CodingSession {
	score := req.TestResults.Score()
	status := SessionAttempted
	if score == 100 {
		status = SessionSolved
	}
	return &CodingSession{
		UserID:      userID,
		ProblemID:   req.ProblemID,
		Language:    req.Language,
		Code:        req.Code,
		TestResults: req.TestResults,
		Score:       score,
		Status:      status,
	}
}

// Message is the feedback line returned with a submission
func (s *CodingSession) Message() string {
	if s.Status == SessionSolved {
		return SolvedMessage
	}
	return AttemptedMessage
}

// PracticeStats summarizes platform activity for administrators
type PracticeStats struct {
	TotalUsers       int64 `json:"totalUsers"`
	TotalProblems    int64 `json:"totalProblems"`
	TotalSubmissions int64 `json:"totalSubmissions"`
	ActiveToday      int64 `json:"activeToday"`
}

package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTestResults_Score(t *testing.T) {
	tests := []struct {
		name    string
		results TestResults
		want    float64
	}{
		{"all passed flag wins", TestResults{Passed: 1, Total: 3, AllPassed: true}, 100},
		{"partial is floored", TestResults{Passed: 2, Total: 3}, 66},
		{"half", TestResults{Passed: 5, Total: 10}, 50},
		{"every test passed without flag", TestResults{Passed: 4, Total: 4}, 100},
		{"none passed", TestResults{Passed: 0, Total: 4}, 0},
		{"no tests", TestResults{}, 0},
		{"passed above total is capped", TestResults{Passed: 9, Total: 3}, 100},
		{"negative passed", TestResults{Passed: -2, Total: 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.results.Score())
		})
	}
}

func TestNewCodingSession(t *testing.T) {
	userID := uuid.New()

	solved := NewCodingSession(userID, CodingSubmitRequest{
		ProblemID: 1, Language: "go", Code: "func twoSum() {}",
		TestResults: TestResults{Passed: 3, Total: 3, AllPassed: true},
	})
	assert.Equal(t, userID, solved.UserID)
	assert.Equal(t, int64(1), solved.ProblemID)
	assert.Equal(t, 100.0, solved.Score)
	assert.Equal(t, SessionSolved, solved.Status)
	assert.Equal(t, SolvedMessage, solved.Message())

	attempted := NewCodingSession(userID, CodingSubmitRequest{
		ProblemID: 2, Language: "python", Code: "pass",
		TestResults: TestResults{Passed: 1, Total: 4},
	})
	assert.Equal(t, 25.0, attempted.Score)
	assert.Equal(t, SessionAttempted, attempted.Status)
	assert.Equal(t, AttemptedMessage, attempted.Message())
}

func TestValidDifficulty(t *testing.T) {
	assert.True(t, ValidDifficulty(DifficultyEasy))
	assert.True(t, ValidDifficulty(DifficultyHard))
	assert.False(t, ValidDifficulty("easy"))
	assert.False(t, ValidDifficulty(""))
}

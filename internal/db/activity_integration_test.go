package db

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jonathan/career-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_Interviews(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := createTestUser(t, db)

	questions := []types.InterviewQuestion{
		{ID: 1, Question: "Which structure gives constant time lookup?", Options: []string{"Hash map", "List", "Heap", "Tree"}},
		{ID: 2, Question: "Which isolation level prevents phantoms?", Options: []string{"Serializable", "Read committed", "Snapshot", "None"}},
	}
	correct, score := types.Grade(questions, []int{0, 2})

	result := &types.InterviewResult{
		UserID:         userID,
		Role:           "Backend Engineer",
		Questions:      questions,
		Answers:        []int{0, 2},
		Score:          score,
		TotalQuestions: len(questions),
		CorrectAnswers: correct,
		TimeSpent:      420,
	}
	require.NoError(t, db.CreateInterview(ctx, result))
	assert.False(t, result.CreatedAt.IsZero())

	listed, err := db.ListInterviewsByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 50.0, listed[0].Score)
	assert.Equal(t, []int{0, 2}, listed[0].Answers)
	assert.Equal(t, 1, listed[0].CorrectAnswers)
	assert.Nil(t, listed[0].Questions)
}

func TestIntegration_ProctoringEvents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	userID := createTestUser(t, db)

	reqs := []types.ProctoringEventRequest{
		{SessionID: "s-1", EventType: "tab_switch", EventData: json.RawMessage(`{"count": 2}`)},
		{},
	}
	for _, req := range reqs {
		req = req.Normalize()
		require.NoError(t, db.CreateProctoringEvent(ctx, &types.ProctoringEvent{
			UserID:    userID,
			SessionID: req.SessionID,
			EventType: req.EventType,
			EventData: req.EventData,
		}))
	}

	all, err := db.ListProctoringEvents(ctx, userID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	session, err := db.ListProctoringEvents(ctx, userID, "s-1")
	require.NoError(t, err)
	require.Len(t, session, 1)
	assert.Equal(t, "tab_switch", session[0].EventType)
	assert.JSONEq(t, `{"count": 2}`, string(session[0].EventData))

	defaults, err := db.ListProctoringEvents(ctx, userID, types.DefaultSessionID)
	require.NoError(t, err)
	require.Len(t, defaults, 1)
	assert.Equal(t, types.UnknownEvent, defaults[0].EventType)
	assert.JSONEq(t, `{}`, string(defaults[0].EventData))
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/types"
)

// DefaultListLimit caps list queries that do not specify a limit
const DefaultListLimit = 50

// CreateInterview stores a graded assessment and fills in its ID and creation time
func (db *DB) CreateInterview(ctx context.Context, result *types.InterviewResult) error {
	questions, err := json.Marshal(nonNil(result.Questions))
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	answers, err := json.Marshal(nonNil(result.Answers))
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO interviews (user_id, role, questions, answers, score, total_questions, correct_answers, time_spent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		result.UserID, result.Role, questions, answers, result.Score,
		result.TotalQuestions, result.CorrectAnswers, result.TimeSpent,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// ListInterviewsByUser retrieves a user's graded assessments, newest first.
// Questions are omitted; a limit of 0 or less means DefaultListLimit.
func (db *DB) ListInterviewsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]types.InterviewResult, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, role, answers, score, total_questions, correct_answers, time_spent, created_at
		 FROM interviews WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	results := []types.InterviewResult{}
	for rows.Next() {
		var (
			r       types.InterviewResult
			answers []byte
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Role, &answers, &r.Score,
			&r.TotalQuestions, &r.CorrectAnswers, &r.TimeSpent, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		if err := json.Unmarshal(answers, &r.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return results, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

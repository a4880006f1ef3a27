package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/types"
)

// CreateCodingSession stores a scored submission and fills in its ID and creation time
func (db *DB) CreateCodingSession(ctx context.Context, session *types.CodingSession) error {
	results, err := json.Marshal(session.TestResults)
	if err != nil {
		return fmt.Errorf("failed to marshal test results: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO coding_sessions (user_id, problem_id, language, code, test_results, score, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		session.UserID, session.ProblemID, session.Language, session.Code, results,
		types.Clamp(session.Score), session.Status,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create coding session: %w", err)
	}
	return nil
}

// ListCodingSessionsByUser retrieves a user's submissions, newest first.
// A limit of 0 or less means DefaultListLimit.
func (db *DB) ListCodingSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]types.CodingSession, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, problem_id, language, code, test_results, score, status, created_at
		 FROM coding_sessions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list coding sessions: %w", err)
	}
	defer rows.Close()

	sessions := []types.CodingSession{}
	for rows.Next() {
		var (
			s       types.CodingSession
			results []byte
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProblemID, &s.Language, &s.Code,
			&results, &s.Score, &s.Status, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coding session: %w", err)
		}
		if err := json.Unmarshal(results, &s.TestResults); err != nil {
			return nil, fmt.Errorf("failed to unmarshal test results: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list coding sessions: %w", err)
	}
	return sessions, nil
}

// PracticeStats returns platform totals and the number of users who submitted since midnight UTC.
func (db *DB) PracticeStats(ctx context.Context) (*types.PracticeStats, error) {
	var stats types.PracticeStats
	err := db.pool.QueryRow(ctx,
		`SELECT
		     (SELECT COUNT(*) FROM users),
		     (SELECT COUNT(*) FROM problems),
		     (SELECT COUNT(*) FROM coding_sessions),
		     (SELECT COUNT(DISTINCT user_id) FROM coding_sessions
		      WHERE created_at >= date_trunc('day', NOW() AT TIME ZONE 'UTC') AT TIME ZONE 'UTC')`,
	).Scan(&stats.TotalUsers, &stats.TotalProblems, &stats.TotalSubmissions, &stats.ActiveToday)
	if err != nil {
		return nil, fmt.Errorf("failed to load practice stats: %w", err)
	}
	return &stats, nil
}

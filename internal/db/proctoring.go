package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/types"
)

// CreateProctoringEvent stores a proctoring signal and fills in its ID and creation time
func (db *DB) CreateProctoringEvent(ctx context.Context, event *types.ProctoringEvent) error {
	data := []byte(event.EventData)
	if len(data) == 0 {
		data = []byte("{}")
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO proctoring_logs (user_id, session_id, event_type, event_data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		event.UserID, event.SessionID, event.EventType, data,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create proctoring event: %w", err)
	}
	return nil
}

// ListProctoringEvents retrieves a user's events in the order they were logged.
// An empty sessionID matches every session.
func (db *DB) ListProctoringEvents(ctx context.Context, userID uuid.UUID, sessionID string) ([]types.ProctoringEvent, error) {
	query := `SELECT id, user_id, session_id, event_type, event_data, created_at
		FROM proctoring_logs WHERE user_id = $1`
	args := []any{userID}
	if sessionID != "" {
		query += " AND session_id = $2"
		args = append(args, sessionID)
	}
	query += " ORDER BY created_at ASC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list proctoring events: %w", err)
	}
	defer rows.Close()

	events := []types.ProctoringEvent{}
	for rows.Next() {
		var (
			e    types.ProctoringEvent
			data []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.SessionID, &e.EventType, &data, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan proctoring event: %w", err)
		}
		e.EventData = data
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list proctoring events: %w", err)
	}
	return events, nil
}

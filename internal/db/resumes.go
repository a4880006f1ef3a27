package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-prep/internal/types"
)

const resumeColumns = `id, user_id, filename, parsed_data, confidence_score, fit_scores, created_at`

// CreateResume stores a scored resume and fills in its ID and creation time.
// The extracted text is not stored.
func (db *DB) CreateResume(ctx context.Context, record *types.ResumeRecord) error {
	profile, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal parsed profile: %w", err)
	}
	fitScores := record.FitScores
	if fitScores == nil {
		fitScores = map[string]types.FitScore{}
	}
	scores, err := json.Marshal(fitScores)
	if err != nil {
		return fmt.Errorf("failed to marshal fit scores: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, filename, parsed_data, confidence_score, fit_scores)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		record.UserID, record.Filename, profile, types.Clamp(record.Confidence), scores,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func scanResume(row pgx.Row) (*types.ResumeRecord, error) {
	var (
		r       types.ResumeRecord
		profile []byte
		scores  []byte
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Filename, &profile, &r.Confidence, &scores, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profile, &r.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parsed profile: %w", err)
	}
	if err := json.Unmarshal(scores, &r.FitScores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fit scores: %w", err)
	}
	return &r, nil
}

// GetResume retrieves a resume by ID. Returns nil, nil when absent.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeRecord, error) {
	r, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumesByUser retrieves a user's resumes, newest first
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]types.ResumeRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.ResumeRecord{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// DeleteResume removes a resume. Returns an error when no row matched.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord is a scored resume owned by a user
type ResumeRecord struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	Filename   string              `json:"filename"`
	Text       string              `json:"-"` // extracted text is never persisted
	Profile    ParsedProfile       `json:"parsed_data"`
	Confidence float64             `json:"confidence_score"`
	FitScores  map[string]FitScore `json:"fit_scores"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Confidence returns the best score among the fit scores, or 0 when there are none.
func Confidence(scores map[string]FitScore) float64 {
	best := 0.0
	for _, fs := range scores {
		if fs.Score > best {
			best = fs.Score
		}
	}
	return best
}

package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Proctoring defaults for events posted without a session or type
const (
	DefaultSessionID = "default-session"
	UnknownEvent     = "unknown"
)

// ProctoringEventRequest is a client-reported proctoring signal
type ProctoringEventRequest struct {
	SessionID string          `json:"sessionId"`
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData,omitempty"`
}

// ProctoringEvent is a stored proctoring signal
type ProctoringEvent struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	SessionID string          `json:"session_id"`
	EventType string          `json:"event_type"`
	EventData json.RawMessage `json:"event_data"`
	CreatedAt time.Time       `json:"created_at"`
}

// Normalize fills the session, type, and payload defaults.
func (r ProctoringEventRequest) Normalize() ProctoringEventRequest {
	if r.SessionID == "" {
		r.SessionID = DefaultSessionID
	}
	if r.EventType == "" {
		r.EventType = UnknownEvent
	}
	if len(r.EventData) == 0 || string(r.EventData) == "null" {
		r.EventData = json.RawMessage("{}")
	}
	return r
}

// ChatRequest is a message to the assistant
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the assistant's reply
type ChatResponse struct {
	Response string `json:"response"`
}

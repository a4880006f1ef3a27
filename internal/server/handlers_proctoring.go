package server

import (
	"net/http"

	"github.com/jonathan/career-prep/internal/types"
)

// handleCreateProctoringEvent records a client-reported proctoring signal.
func (s *Server) handleCreateProctoringEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req types.ProctoringEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = req.Normalize()

	event := &types.ProctoringEvent{
		UserID:    userID,
		SessionID: req.SessionID,
		EventType: req.EventType,
		EventData: req.EventData,
	}
	if err := s.db.CreateProctoringEvent(r.Context(), event); err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusCreated, event)
}

// handleListProctoringEvents lists the caller's events for ?session_id, oldest first.
func (s *Server) handleListProctoringEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = types.DefaultSessionID
	}

	events, err := s.db.ListProctoringEvents(r.Context(), userID, sessionID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"session_id": sessionID, "events": events, "count": len(events)})
}

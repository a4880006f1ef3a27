package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-prep/internal/types"
)

var validate = validator.New()

// handleAnalyzeCode reviews a submitted solution.
func (s *Server) handleAnalyzeCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req types.CodeSubmission
	if !decodeJSON(w, r, &req) {
		return
	}

	analysis, err := s.pipeline.AnalyzeCode(r.Context(), req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, analysis)
}

// handleChat answers a message with the career assistant.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req types.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := s.pipeline.Chat(r.Context(), req.Message)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, types.ChatResponse{Response: reply})
}

package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/career-prep/internal/db"
	"github.com/jonathan/career-prep/internal/types"
)

// handleGenerateQuestions returns a multiple-choice question batch for a role.
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req types.GenerateQuestionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, s.logger, extractValidationErrors(err))
		return
	}

	questions, err := s.pipeline.GenerateQuestions(r.Context(), req.Role, req.Count)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{
		"role":      req.Role,
		"questions": questions,
		"count":     len(questions),
	})
}

// handleSubmitInterview grades and stores a completed assessment.
func (s *Server) handleSubmitInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req types.SubmitInterviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, s.logger, extractValidationErrors(err))
		return
	}
	if req.TimeSpent < 0 {
		req.TimeSpent = 0
	}

	correct, score := types.Grade(req.Questions, req.Answers)
	result := &types.InterviewResult{
		UserID:         userID,
		Role:           req.Role,
		Questions:      req.Questions,
		Answers:        req.Answers,
		Score:          score,
		TotalQuestions: len(req.Questions),
		CorrectAnswers: correct,
		TimeSpent:      req.TimeSpent,
	}
	if result.Answers == nil {
		result.Answers = []int{}
	}

	if err := s.db.CreateInterview(r.Context(), result); err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusCreated, result)
}

// handleListInterviews lists the caller's graded assessments, newest first.
// ?limit caps the result size (default 50).
func (s *Server) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit, err := listLimit(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	results, err := s.db.ListInterviewsByUser(r.Context(), userID, limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"interviews": results, "count": len(results)})
}

// handleEvaluateAnswer grades an open-ended answer.
func (s *Server) handleEvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req types.EvaluateAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	eval, err := s.pipeline.EvaluateAnswer(r.Context(), req)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, eval)
}

// listLimit reads ?limit, defaulting to db.DefaultListLimit.
func listLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return db.DefaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 200 {
		return 0, &ErrValidation{Field: "limit", Message: "must be between 1 and 200"}
	}
	return n, nil
}

package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/career-prep/internal/types"
	"go.uber.org/zap"
)

// handleListProblems lists the practice catalog, optionally narrowed by ?difficulty and ?topic.
func (s *Server) handleListProblems(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	filter := types.ProblemFilter{
		Difficulty: r.URL.Query().Get("difficulty"),
		Topic:      r.URL.Query().Get("topic"),
	}
	if filter.Difficulty != "" && !types.ValidDifficulty(filter.Difficulty) {
		writeError(w, s.logger, &ErrValidation{Field: "difficulty", Message: "must be Easy, Medium, or Hard"})
		return
	}

	problems, err := s.db.ListProblems(r.Context(), filter)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"problems": problems, "count": len(problems)})
}

// handleGetProblem returns one catalog problem.
func (s *Server) handleGetProblem(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, s.logger, &ErrValidation{Field: "id", Message: "must be a positive integer"})
		return
	}

	problem, err := s.db.GetProblem(r.Context(), id)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if problem == nil {
		writeError(w, s.logger, &ErrNotFound{Resource: "problem", ID: r.PathValue("id")})
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"problem": problem})
}

// handleSubmitSolution scores and stores a solution against a catalog problem.
func (s *Server) handleSubmitSolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req types.CodingSubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, s.logger, extractValidationErrors(err))
		return
	}

	problem, err := s.db.GetProblem(r.Context(), req.ProblemID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if problem == nil {
		writeError(w, s.logger, &ErrNotFound{Resource: "problem", ID: strconv.FormatInt(req.ProblemID, 10)})
		return
	}

	session := types.NewCodingSession(userID, req)
	if err := s.db.CreateCodingSession(r.Context(), session); err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.logger.Debug("solution submitted",
		zap.Stringer("user_id", userID),
		zap.Int64("problem_id", problem.ID),
		zap.Float64("score", session.Score))

	jsonResponse(w, s.logger, http.StatusCreated, map[string]any{
		"success": true,
		"score":   session.Score,
		"message": session.Message(),
		"session": session,
	})
}

// handleListCodingSessions lists the caller's submissions, newest first.
func (s *Server) handleListCodingSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit, err := listLimit(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	sessions, err := s.db.ListCodingSessionsByUser(r.Context(), userID, limit)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"sessions": sessions, "count": len(sessions)})
}

// requireAdmin reports whether the caller's stored account is an administrator, writing 401 or 403 when not.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	userID, ok := requireUser(w, r)
	if !ok {
		return false
	}
	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return false
	}
	if user == nil || !user.IsAdmin {
		writeError(w, s.logger, &ErrForbidden{Resource: "admin area"})
		return false
	}
	return true
}

// handleAdminStats reports platform totals.
func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	stats, err := s.db.PracticeStats(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, stats)
}

// handleSeedProblems inserts any missing catalog problems.
func (s *Server) handleSeedProblems(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	added, err := s.db.SeedProblems(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	s.logger.Info("problem catalog seeded", zap.Int("added", added))
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"added": added})
}

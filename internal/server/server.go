package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/assessment"
	"github.com/jonathan/career-prep/internal/config"
	"github.com/jonathan/career-prep/internal/db"
	"github.com/jonathan/career-prep/internal/server/middleware"
	"github.com/jonathan/career-prep/internal/server/ratelimit"
	"github.com/jonathan/career-prep/internal/types"
	"go.uber.org/zap"
)

// DBClient is the storage the server needs; *db.DB implements it.
type DBClient interface {
	Ping(ctx context.Context) error
	Close()

	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateResume(ctx context.Context, record *types.ResumeRecord) error
	GetResume(ctx context.Context, id uuid.UUID) (*types.ResumeRecord, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]types.ResumeRecord, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error

	CreateInterview(ctx context.Context, result *types.InterviewResult) error
	ListInterviewsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]types.InterviewResult, error)

	CreateProctoringEvent(ctx context.Context, event *types.ProctoringEvent) error
	ListProctoringEvents(ctx context.Context, userID uuid.UUID, sessionID string) ([]types.ProctoringEvent, error)

	ListProblems(ctx context.Context, filter types.ProblemFilter) ([]types.Problem, error)
	GetProblem(ctx context.Context, id int64) (*types.Problem, error)
	SeedProblems(ctx context.Context) (int, error)
	CreateCodingSession(ctx context.Context, session *types.CodingSession) error
	ListCodingSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]types.CodingSession, error)
	PracticeStats(ctx context.Context) (*types.PracticeStats, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	db             DBClient
	pipeline       *assessment.Pipeline
	logger         *zap.Logger
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	userService    *UserService
	authHandler    *AuthHandler
	corsOrigin     string
	maxUploadBytes int64
}

// Config holds server configuration
type Config struct {
	Port           int
	CORSOrigin     string
	MaxUploadBytes int64
}

// New creates a new server instance. JWT and password settings are read from the environment.
// The pipeline should persist through database.
func New(cfg Config, database DBClient, pipeline *assessment.Pipeline, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	s := &Server{
		db:             database,
		pipeline:       pipeline,
		logger:         logger,
		rateLimiter:    ratelimit.NewLimiter(ratelimit.LoadConfig()),
		jwtService:     NewJWTService(jwtConfig),
		corsOrigin:     cfg.CORSOrigin,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	s.userService = NewUserService(database, passwordConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, logger)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // question generation and multi-config scoring are slow
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the full middleware-wrapped router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /auth/me", protected(s.authHandler.Me))
	mux.Handle("PUT /auth/password", protected(s.authHandler.UpdatePassword))

	// Resumes
	mux.Handle("POST /resumes", protected(s.handleUploadResume))
	mux.Handle("POST /resumes/stream", protected(s.handleUploadResumeStream))
	mux.Handle("GET /resumes", protected(s.handleListResumes))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))

	// Interviews
	mux.Handle("POST /interviews/questions", protected(s.handleGenerateQuestions))
	mux.Handle("POST /interviews/evaluate", protected(s.handleEvaluateAnswer))
	mux.Handle("POST /interviews", protected(s.handleSubmitInterview))
	mux.Handle("GET /interviews", protected(s.handleListInterviews))

	// Coding practice and assistant
	mux.Handle("GET /problems", protected(s.handleListProblems))
	mux.Handle("GET /problems/{id}", protected(s.handleGetProblem))
	mux.Handle("POST /coding/submit", protected(s.handleSubmitSolution))
	mux.Handle("GET /coding/sessions", protected(s.handleListCodingSessions))
	mux.Handle("POST /coding/analyze", protected(s.handleAnalyzeCode))
	mux.Handle("POST /assistant/chat", protected(s.handleChat))

	// Proctoring
	mux.Handle("POST /proctoring/events", protected(s.handleCreateProctoringEvent))
	mux.Handle("GET /proctoring/events", protected(s.handleListProctoringEvents))

	// Admin
	mux.Handle("GET /admin/stats", protected(s.handleAdminStats))
	mux.Handle("POST /admin/problems/seed", protected(s.handleSeedProblems))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	s.db.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE responses streaming through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		jsonResponse(w, s.logger, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// extractClientID uses the IP from RemoteAddr. X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("client", s.extractClientID(r)),
		zap.Int("limit", info.Limit))
	jsonResponse(w, s.logger, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	jsonResponse(w, logger, status, map[string]string{"error": message})
}

// writeError maps err to a status. Internal failures are logged and hidden from the client.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			errorResponse(w, logger, status, "internal server error")
			return
		}
	}
	errorResponse(w, logger, status, err.Error())
}

// decodeJSON reads the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errorResponse(w, zap.NewNop(), http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// requireUser returns the authenticated user ID or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, zap.NewNop(), http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

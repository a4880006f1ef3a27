package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/assessment"
	"github.com/jonathan/career-prep/internal/ingestion"
	"github.com/jonathan/career-prep/internal/schemas"
	"github.com/jonathan/career-prep/internal/types"
	"go.uber.org/zap"
)

// ResumeSummary is a list entry for GET /resumes
type ResumeSummary struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence_score"`
	CreatedAt  string    `json:"created_at"`
}

// readUpload parses the multipart form and ingests the "resume" file.
// jobConfigs is an optional JSON array validated against the job_configs schema.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (assessment.ResumeUpload, error) {
	limit := s.maxUploadBytes
	if limit <= 0 {
		limit = ingestion.MaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return assessment.ResumeUpload{}, &ingestion.UploadError{Field: "resume", Message: "file too large"}
		}
		return assessment.ResumeUpload{}, &ErrValidation{Field: "body", Message: "expected multipart form data"}
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return assessment.ResumeUpload{}, &ingestion.UploadError{Field: "resume", Message: "no file uploaded"}
	}
	defer file.Close() //nolint:errcheck

	if header.Size > limit {
		return assessment.ResumeUpload{}, &ingestion.UploadError{Field: "resume", Message: "file too large"}
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return assessment.ResumeUpload{}, fmt.Errorf("failed to read upload: %w", err)
	}

	configs, err := parseJobConfigs(r.FormValue("jobConfigs"))
	if err != nil {
		return assessment.ResumeUpload{}, err
	}

	doc, err := ingestion.IngestPDF(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return assessment.ResumeUpload{}, err
	}
	s.logger.Debug("resume ingested", zap.Stringer("user_id", userID), zap.Object("document", doc.Metadata))

	return assessment.ResumeUpload{
		UserID:   userID,
		Filename: doc.Filename,
		Text:     doc.Text,
		Configs:  configs,
	}, nil
}

// parseJobConfigs validates the jobConfigs form field. An empty field means the default configuration.
func parseJobConfigs(raw string) ([]types.JobConfiguration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if err := schemas.Validate(schemas.JobConfigs, []byte(raw)); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			field := "jobConfigs"
			if f := ve.Errors[0].Field; f != "(root)" {
				field += "." + f
			}
			return nil, &ErrValidation{Field: field, Message: ve.Errors[0].Message}
		}
		return nil, &ErrValidation{Field: "jobConfigs", Message: "must be a JSON array"}
	}

	var configs []types.JobConfiguration
	if err := json.Unmarshal([]byte(raw), &configs); err != nil {
		return nil, &ErrValidation{Field: "jobConfigs", Message: "must be a JSON array"}
	}
	return configs, nil
}

// handleUploadResume scores an uploaded PDF against the submitted job configurations.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	upload, err := s.readUpload(w, r, userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	record, err := s.pipeline.ScoreResume(r.Context(), upload)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusCreated, record)
}

// handleUploadResumeStream is handleUploadResume reported as server-sent events:
// one "profile" event, a "fit_score" event per configuration, then "complete" with the record.
func (s *Server) handleUploadResumeStream(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	upload, err := s.readUpload(w, r, userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	stream, err := newProgressStream(w, s.logger)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	upload.Progress = stream.progress()

	record, err := s.pipeline.ScoreResume(r.Context(), upload)
	if err != nil {
		s.logger.Error("streamed resume scoring failed", zap.Error(err))
		stream.fail(err)
		return
	}
	stream.finish(record)
}

// handleListResumes lists the caller's resumes, newest first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	records, err := s.db.ListResumesByUser(r.Context(), userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	summaries := make([]ResumeSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, ResumeSummary{
			ID:         rec.ID,
			Filename:   rec.Filename,
			Name:       rec.Profile.Name,
			Confidence: rec.Confidence,
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		})
	}
	jsonResponse(w, s.logger, http.StatusOK, map[string]any{"resumes": summaries, "count": len(summaries)})
}

// ownedResume loads the resume named in the path and checks that the caller owns it.
func (s *Server) ownedResume(r *http.Request, userID uuid.UUID) (*types.ResumeRecord, error) {
	rawID := r.PathValue("id")
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid resume ID"}
	}

	record, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if record == nil {
		return nil, &ErrNotFound{Resource: "resume", ID: rawID}
	}
	if record.UserID != userID {
		return nil, &ErrForbidden{Resource: "resume"}
	}
	return record, nil
}

// handleGetResume returns a stored resume with its fit scores.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	record, err := s.ownedResume(r, userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	jsonResponse(w, s.logger, http.StatusOK, record)
}

// handleDeleteResume removes a stored resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	record, err := s.ownedResume(r, userID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	if err := s.db.DeleteResume(r.Context(), record.ID); err != nil {
		writeError(w, s.logger, fmt.Errorf("failed to delete resume: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

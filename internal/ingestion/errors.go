package ingestion

import "fmt"

// UploadError indicates an uploaded file was rejected before any extraction or model call
type UploadError struct {
	Field   string
	Message string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("invalid upload %s: %s", e.Field, e.Message)
}

// ExtractionError indicates a document passed validation but its text could not be read
type ExtractionError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.Filename, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

package assessment

import "fmt"

// ParseError indicates model output could not be parsed into the expected shape
type ParseError struct {
	Task    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Task, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Task, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// GenerationError indicates a question batch was rejected by the quality check
type GenerationError struct {
	Requested int
	Valid     int
	Message   string
	Cause     error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("question generation failed: %s (valid %d of %d requested)", e.Message, e.Valid, e.Requested)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// InputError indicates a caller supplied an unusable request; raised before any model call
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

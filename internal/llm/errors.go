package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed completion call
type ErrorKind string

// Failure modes a caller must tolerate
const (
	KindTimeout       ErrorKind = "timeout"
	KindRateLimited   ErrorKind = "rate_limited"
	KindEmptyResponse ErrorKind = "empty_response"
	KindTransport     ErrorKind = "transport"
)

// InferenceError represents a failed call to the inference provider
type InferenceError struct {
	Kind    ErrorKind
	Model   string
	Message string
	Cause   error
}

func (e *InferenceError) Error() string {
	msg := fmt.Sprintf("inference %s (model %s): %s", e.Kind, e.Model, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the first InferenceError in err's chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

// IsTimeout reports whether err is an inference timeout
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// IsRateLimited reports whether err is a provider rate-limit rejection
func IsRateLimited(err error) bool { return KindOf(err) == KindRateLimited }

// IsEmptyResponse reports whether the provider returned no usable text
func IsEmptyResponse(err error) bool { return KindOf(err) == KindEmptyResponse }

func emptyResponse(model string) *InferenceError {
	return &InferenceError{Kind: KindEmptyResponse, Model: model, Message: "no text in completion"}
}

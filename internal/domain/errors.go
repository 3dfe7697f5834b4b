package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("resource not found")
	ErrValidation               = errors.New("validation failed")
	ErrIdentityMissing          = errors.New("unable to identify user")
	ErrScanFailed               = errors.New("document scan failed")
	ErrEmptyExtraction          = errors.New("no text extracted from document")
	ErrInferenceFailed          = errors.New("inference request failed")
	ErrInvalidInferenceResponse = errors.New("inference response is not a JSON object")
	ErrStoreFailed              = errors.New("saving analysis result failed")
	ErrModelNotConfigured       = errors.New("model provider is not configured")
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// UpstreamError reports a collaborator that answered with a non-success status,
// returned an unusable body, or could not be reached. StatusCode is 0 when no
// status was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
	Kind       error
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d: %s", e.Kind, e.Service, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s request failed: %v", e.Kind, e.Service, e.Err)
}

// Unwrap exposes both the failure kind sentinel and the underlying cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ExtractionError reports a successful scan that produced no text for a
// named document.
type ExtractionError struct {
	Document string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s", e.Document)
}

func (e *ExtractionError) Unwrap() error {
	return ErrEmptyExtraction
}

package services

import (
	"errors"
	"fmt"
)

// Domain error kinds surfaced to the HTTP boundary. Handlers discriminate with
// errors.Is / errors.As and map each kind to a status code.
var (
	// ErrIncompleteSubmission: the answer set does not cover every active
	// question. Rejected before any write.
	ErrIncompleteSubmission = errors.New("please answer all the questions")
	// ErrNotFound: profession, question or submission absent or inactive.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID: malformed identifier.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrEnrichmentFailed: a narrative generation pass failed. The score
	// matrix and already-cached narrative entries remain usable.
	ErrEnrichmentFailed = errors.New("narrative enrichment failed")
)

// ValidationError carries a human-readable message for a missing or malformed
// request field. The request is rejected with no partial state change.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

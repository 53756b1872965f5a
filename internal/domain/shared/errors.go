package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes of the seller-operations error taxonomy
const (
	CodeNotFound           = "NOT_FOUND"
	CodeValidationFailure  = "VALIDATION_FAILED"
	CodeExternalAPIFailure = "EXTERNAL_API_FAILURE"
	CodeStateConflict      = "STATE_CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code.
// This lets callers write errors.Is(err, shared.ErrNotFound).
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Sentinels for errors.Is matching
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidationFailure  = NewDomainError(CodeValidationFailure, "Validation failed")
	ErrExternalAPIFailure = NewDomainError(CodeExternalAPIFailure, "External API call failed")
	ErrStateConflict      = NewDomainError(CodeStateConflict, "Operation not allowed in current state")
)

// NewNotFoundError creates a NotFound error for the given resource and id
func NewNotFoundError(resource string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// NewValidationError creates a ValidationFailure error
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidationFailure, message)
}

// NewStateConflictError creates a StateConflict error
func NewStateConflictError(message string) *DomainError {
	return NewDomainError(CodeStateConflict, message)
}

// NewExternalAPIError wraps a failure of a remote collaborator
func NewExternalAPIError(message string, cause error) *DomainError {
	msg := message
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", message, cause)
	}
	return &DomainError{
		Code:    CodeExternalAPIFailure,
		Message: msg,
		cause:   cause,
	}
}

// MissingIDsMessage formats a list of ids for a validation message
func MissingIDsMessage(prefix string, ids []string) string {
	return fmt.Sprintf("%s: %s", prefix, strings.Join(ids, ", "))
}

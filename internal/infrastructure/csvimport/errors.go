package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the file is not UTF-8 and no fallback encoding is set
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")
)

// DefaultMaxErrors caps the row errors kept in a LoadResult
const DefaultMaxErrors = 100

// RowError represents an error in a specific row
type RowError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column '%s': %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ErrorList collects row errors up to a limit
type ErrorList struct {
	errors    []RowError
	max       int
	total     int
	truncated bool
}

// NewErrorList creates an error list keeping at most max errors.
// A non-positive max falls back to DefaultMaxErrors.
func NewErrorList(max int) *ErrorList {
	if max <= 0 {
		max = DefaultMaxErrors
	}
	return &ErrorList{max: max}
}

// Add records an error; past the limit it is only counted
func (l *ErrorList) Add(err RowError) {
	l.total++
	if len(l.errors) >= l.max {
		l.truncated = true
		return
	}
	l.errors = append(l.errors, err)
}

// Errors returns the kept errors
func (l *ErrorList) Errors() []RowError {
	return l.errors
}

// Count returns the number of errors added, kept or not
func (l *ErrorList) Count() int {
	return l.total
}

// HasErrors reports whether any error was added
func (l *ErrorList) HasErrors() bool {
	return l.total > 0
}

// Truncated reports whether errors were dropped past the limit
func (l *ErrorList) Truncated() bool {
	return l.truncated
}

// Error joins the kept errors into one message
func (l *ErrorList) Error() string {
	if l.total == 0 {
		return ""
	}
	parts := make([]string, 0, len(l.errors))
	for _, e := range l.errors {
		parts = append(parts, e.Error())
	}
	msg := strings.Join(parts, "; ")
	if l.truncated {
		msg += fmt.Sprintf(" (and %d more)", l.total-len(l.errors))
	}
	return msg
}

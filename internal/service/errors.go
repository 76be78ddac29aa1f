package service

import (
	"errors"
	"fmt"

	"rental-movies/internal/data"
	"rental-movies/internal/query"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = data.ErrNotFound
	// ErrForbidden is returned when the identity may not perform the operation.
	ErrForbidden = errors.New("operation not permitted")
	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// acronym or a wrong password.
	ErrInvalidCredentials = errors.New("invalid acronym or password")
)

// Message is the outcome of a successful mutation.
type Message struct {
	Text string `json:"message"`
	ID   int64  `json:"id,omitempty"`
}

// ValidationError reports a missing or malformed input field. No write is
// attempted when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConstraintError reports a unique key violation detected by the database.
type ConstraintError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConstraintError) Error() string {
	return e.Message
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// GatewayError carries any other database failure together with the raw
// driver diagnostic.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// gatewayError classifies a repository error. Not found errors are passed
// through so callers can test them with errors.Is.
func gatewayError(op string, err error) error {
	if errors.Is(err, data.ErrNotFound) {
		return err
	}
	return &GatewayError{Op: op, Err: err}
}

// searchError turns a rejected sort parameter into a ValidationError.
func searchError(op string, err error) error {
	var sortErr *query.InvalidSortError
	if errors.As(err, &sortErr) {
		return &ValidationError{Field: sortErr.Param, Message: sortErr.Error()}
	}
	return &GatewayError{Op: op, Err: err}
}

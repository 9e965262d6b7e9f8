package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure.
type ErrorKind string

const (
	// Import failures. Each is terminal for the current attempt.
	KindInputRejected      ErrorKind = "input_rejected"
	KindParseFailure       ErrorKind = "parse_failure"
	KindValidationFailure  ErrorKind = "validation_failure"
	KindPersistenceFailure ErrorKind = "persistence_failure"

	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindInvalidInput    ErrorKind = "invalid_input"
	KindConflict        ErrorKind = "conflict"
)

var (
	// ErrNotFound is wrapped by stores when a row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is wrapped by stores when a unique value is taken.
	ErrDuplicate = errors.New("duplicate key value")

	// ErrInvalidTransition is returned when an importer operation is not
	// allowed from its current state.
	ErrInvalidTransition = errors.New("invalid import state transition")
)

// Error is a classified domain error. Message is safe to show to users;
// Err, when set, carries the technical cause.
type Error struct {
	Kind    ErrorKind
	Message string
	// Details lists per-row or per-field problems, when there are several.
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

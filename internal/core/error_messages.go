package core

// # Error Codes Reference
//
// Codes let users quote a failure to support staff. Classified domain
// errors (*Error) keep their own message and take the code of their kind;
// everything else is matched by pattern.
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Input rejected: the file is not a CSV or is too large
//	         Action: Choose a .csv file smaller than 5MB
//	IMP002 - Parse failure: the file could not be read as CSV
//	         Action: Check the file for unbalanced quotes or broken rows
//	IMP003 - Validation failure: required fields are missing
//	         Action: Fill in title, location and employment_type on every row
//	IMP004 - Persistence failure: jobs could not be saved
//	         Action: Please try again. Your preview is still available
//	IMP005 - Import state: the import cannot do that right now
//	         Action: Retry or discard the current import first
//	         Patterns: "invalid import state transition"
//
// # Auth Errors (AUTH001-AUTH099)
//
//	AUTH001 - Not signed in
//	AUTH002 - Not allowed to change this company
//	AUTH003 - Preview link invalid or expired
//	          Patterns: "preview token"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key            Patterns: "duplicate key"
//	DB002 - Unique constraint        Patterns: "unique constraint", "violates unique"
//	DB003 - Foreign key              Patterns: "foreign key constraint", "violates foreign key"
//	DB004 - Connection refused       Patterns: "connection refused"
//	DB005 - Connection reset         Patterns: "connection reset"
//	DB006 - Timeout                  Patterns: "timeout", "context deadline exceeded"
//	DB007 - Deadlock                 Patterns: "deadlock"
//
// # Other
//
//	NF001   - Not found              Patterns: "not found"
//	VAL001  - Invalid input
//	UPL002  - Too many imports       Patterns: "too many concurrent imports"
//	RATE001 - Rate limited           Patterns: "rate limit"
//	ERR000  - Unknown error (check application logs for the technical error)
//
// Patterns are matched case-insensitively using strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// kindMessages gives the code and action for each classified error kind.
// Message is taken from the error itself.
var kindMessages = map[ErrorKind]UserMessage{
	KindInputRejected:      {Code: "IMP001", Action: "Choose a .csv file smaller than 5MB"},
	KindParseFailure:       {Code: "IMP002", Action: "Check the file for unbalanced quotes or broken rows"},
	KindValidationFailure:  {Code: "IMP003", Action: "Fill in title, location and employment_type on every row"},
	KindPersistenceFailure: {Code: "IMP004", Action: "Please try again. Your preview is still available"},
	KindConflict:           {Code: "IMP005", Action: "Retry or discard the current import first"},
	KindUnauthenticated:    {Code: "AUTH001", Action: "Sign in and try again"},
	KindForbidden:          {Code: "AUTH002", Action: "You can only edit your own company"},
	KindNotFound:           {Code: "NF001", Action: "Check the link and try again"},
	KindInvalidInput:       {Code: "VAL001", Action: "Correct the highlighted fields"},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "invalid import state transition",
		msg: UserMessage{
			Message: "The import cannot do that right now",
			Action:  "Retry or discard the current import first",
			Code:    "IMP005",
		},
	},
	{
		pattern: "preview token",
		msg: UserMessage{
			Message: "This preview link is invalid or has expired",
			Action:  "Ask the page owner for a new preview link",
			Code:    "AUTH003",
		},
	},
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "Too many imports in progress",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},

	// Database constraint errors
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this value already exists",
			Action:  "Choose a different slug",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "DB002",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key constraint",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Reload the editor and try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "violates foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Reload the editor and try again",
			Code:    "DB003",
		},
	},

	// Connection errors
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	{
		pattern: "not found",
		msg: UserMessage{
			Message: "The requested record was not found",
			Action:  "Check the link and try again",
			Code:    "NF001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
//
// A classified *Error keeps its own message, which is already written for
// users, and takes the code and action of its kind. Any other error is
// matched against the known patterns (case-insensitive); if none match, a
// generic fallback with code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var de *Error
	if errors.As(err, &de) {
		if km, ok := kindMessages[de.Kind]; ok {
			km.Message = de.Message
			return km
		}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}

package core

import "fmt"

// Well-known error codes carried by Error values.
const (
	CodeNotFound         = "Error.NotFound"
	CodeInvalidField     = "Error.InvalidField"
	CodeNullValue        = "Error.NullValue"
	CodeOperationFailed  = "Error.OperationFailed"
	CodeOperationInvalid = "Error.OperationInvalid"
	CodeUnexpectedState  = "Error.UnexpectedState"
)

// Error is a structured, immutable failure description. It travels inside a
// Result instead of being returned through Go's error channel, so that
// expected outcomes (not found, nil input, conversion failure) stay values.
type Error struct {
	Code    string
	Message string
	// Field names the offending field for validation errors. Empty otherwise.
	Field string
}

// NonError is the sentinel carried by every successful Result.
// A Result is a success if and only if its error equals NonError.
var NonError = Error{}

// NullValue signals that a required input was nil.
var NullValue = Error{Code: CodeNullValue, Message: "A required value was null."}

func (e Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNone reports whether e is the NonError sentinel.
func (e Error) IsNone() bool {
	return e == NonError
}

// NewNotFoundError describes a lookup that matched no record.
func NewNotFoundError(entity string) Error {
	return Error{Code: CodeNotFound, Message: fmt.Sprintf("%s was not found.", entity)}
}

// NewInvalidFieldError describes a field-level validation failure.
func NewInvalidFieldError(field string, message string) Error {
	return Error{Code: CodeInvalidField, Message: message, Field: field}
}

// NewOperationFailedError wraps an unexpected persistence-layer failure.
// The underlying message is passed through for diagnostics.
func NewOperationFailedError(message string) Error {
	return Error{Code: CodeOperationFailed, Message: message}
}

// NewOperationInvalidError describes an operation that cannot be performed
// in the current state.
func NewOperationInvalidError(message string) Error {
	return Error{Code: CodeOperationInvalid, Message: message}
}

// NewUnexpectedStateError guards against malformed results reaching callers.
func NewUnexpectedStateError(message string) Error {
	return Error{Code: CodeUnexpectedState, Message: message}
}

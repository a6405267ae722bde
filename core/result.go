package core

import "net/http"

// Result is the uniform outcome of a repository or service operation: either
// a value with a status code, or an Error with a status code. Construct one
// through Success, SuccessWithStatus or Failure, never directly; the factory
// functions enforce the invariants between error and status code.
type Result[T any] struct {
	value      T
	err        Error
	statusCode int
}

// Success wraps a value in a Result with status 200.
func Success[T any](value T) Result[T] {
	return SuccessWithStatus(value, http.StatusOK)
}

// SuccessWithStatus wraps a value in a Result with the given status code.
// A success may carry an absent (zero) value, e.g. a lookup that matched
// nothing returns a nil value with status 404.
func SuccessWithStatus[T any](value T, statusCode int) Result[T] {
	return Result[T]{value: value, err: NonError, statusCode: statusCode}
}

// Failure wraps an Error in a Result. Claiming failure while passing the
// NonError sentinel is a contract violation and panics. A failure can never
// carry a success status: codes in [200,300) are coerced to 400.
func Failure[T any](err Error, statusCode int) Result[T] {
	if err.IsNone() {
		panic("core: a failure result requires a non-NonError error")
	}
	if statusCode >= 200 && statusCode < 300 {
		statusCode = http.StatusBadRequest
	}
	var zero T
	return Result[T]{value: zero, err: err, statusCode: statusCode}
}

// Value returns the wrapped value. It is the zero value for failures and
// for successes that matched nothing.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the wrapped Error, NonError for successes.
func (r Result[T]) Err() Error {
	return r.err
}

// StatusCode returns the HTTP-style status code of the outcome.
func (r Result[T]) StatusCode() int {
	return r.statusCode
}

// IsSuccess reports whether the result carries no error.
func (r Result[T]) IsSuccess() bool {
	return r.err.IsNone()
}

// IsFailure reports whether the result carries an error.
func (r Result[T]) IsFailure() bool {
	return !r.err.IsNone()
}

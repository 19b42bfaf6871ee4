// Package dbresult provides the disjoint success/failure result type returned
// by trip store operations. Callers discriminate business failures (not found,
// trip full) from infrastructure failures by the enumerated error code, never
// by message text.
package dbresult

import "fmt"

// Code enumerates store failure classes.
type Code string

const (
	// CodeNotFound means the trip identity does not exist in the partition.
	CodeNotFound Code = "NOT_FOUND"
	// CodeTripFull means the capacity check failed: the member list already
	// holds MaxOtherMembers entries.
	CodeTripFull Code = "TRIP_FULL"
	// CodeDBError covers every other persistence fault.
	CodeDBError Code = "DB_ERROR"
)

// StoreError is the left side of a Result.
type StoreError struct {
	Code    Code
	Message string
}

func (e StoreError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// DBErrorf builds a CodeDBError StoreError from a format string.
func DBErrorf(format string, args ...any) StoreError {
	return StoreError{Code: CodeDBError, Message: fmt.Sprintf(format, args...)}
}

// Result holds either a StoreError or a value, never both.
type Result[T any] struct {
	err   *StoreError
	value T
}

// Left builds a failed Result.
func Left[T any](err StoreError) Result[T] {
	return Result[T]{err: &err}
}

// Right builds a successful Result.
func Right[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// IsLeft reports whether the Result holds an error.
func (r Result[T]) IsLeft() bool { return r.err != nil }

// CaseOf dispatches on the Result, calling exactly one handler and returning
// its value. It is a free function because Go methods cannot introduce the
// second type parameter.
func CaseOf[T, R any](r Result[T], left func(StoreError) R, right func(T) R) R {
	if r.err != nil {
		return left(*r.err)
	}
	return right(r.value)
}

// CaseOfE is CaseOf for handlers that also return an error, the shape of
// every coordinator dispatch.
func CaseOfE[T, R any](r Result[T], left func(StoreError) (R, error), right func(T) (R, error)) (R, error) {
	if r.err != nil {
		return left(*r.err)
	}
	return right(r.value)
}

// Package apperrors defines the error taxonomy shared by the gate, the
// transaction store and the HTTP layer. Handlers map each Kind to a status
// code explicitly instead of inspecting error strings.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindUnknown is the zero value for errors that carry no Kind.
	KindUnknown Kind = iota
	// KindValidation marks client input rejected before any store access.
	KindValidation
	// KindNotFound marks an operation that matched no row. Not logged as
	// an error; it is a normal outcome surfaced as absence.
	KindNotFound
	// KindRateLimited marks a request denied by the gate.
	KindRateLimited
	// KindGateUnavailable marks a counter backend failure. The gate never
	// silently allows or denies on backend errors; the caller decides.
	KindGateUnavailable
	// KindStore marks a database failure during list/create/delete/summarize.
	KindStore
)

// Error is an error with a Kind attached.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the classification of this error.
func (e *Error) Kind() Kind {
	return e.kind
}

// New creates a classified error.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap creates a classified error wrapping an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf extracts the Kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsNotFound reports whether err is a not-found outcome.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

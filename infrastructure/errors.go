// Package infrastructure holds concerns shared by every layer of the core:
// the application error taxonomy and small helpers that do not belong to a
// single feature package.
package infrastructure

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. Callers outside the core map kinds
// to their own protocol; the core itself only ever branches on Kind.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindStorageFailure   Kind = "STORAGE_FAILURE"
)

// Error is the only error type the core returns for expected failures.
// StorageFailure wraps the underlying I/O error and is considered
// unrecoverable; the other kinds are ordinary business outcomes.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...any) error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperation(format string, args ...any) error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

// StorageFailure wraps a backend I/O error. No retry policy exists anywhere
// in the core; the caller is expected to treat this as fatal.
func StorageFailure(cause error, format string, args ...any) error {
	return &Error{Kind: KindStorageFailure, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsKind reports whether err (or anything it wraps) is an application error
// of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// KindOf returns the kind of err, or KindStorageFailure when err is not an
// application error. Unclassified errors can only come from a backend.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorageFailure
}

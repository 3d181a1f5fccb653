// Package feature defines the unsupported-feature error contract shared by
// the translator and the value conversion layer.
//
// Translation either succeeds completely or fails with one of two disjoint
// error kinds: an unsupported-feature error (the input exercises a construct
// with no translation rule) or a panic (an internal invariant of the
// translator was violated). This package owns the first kind.
package feature

import (
	"errors"
	"fmt"
)

// ErrNotSupported is the sentinel all unsupported-feature errors match via
// errors.Is. Callers should branch on it rather than on message text.
var ErrNotSupported = errors.New("feature not supported")

// Error describes a construct the MongoDB dialect cannot translate.
type Error struct {
	// Feature is a short name for the rejected construct, e.g. "lock modes".
	Feature string
	// Message is the full human-readable explanation.
	Message string
	// Ref optionally carries a tracking reference for planned support.
	Ref string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Ref)
	}
	return e.Message
}

// Is reports whether the error matches ErrNotSupported.
func (e *Error) Is(target error) bool {
	return target == ErrNotSupported
}

// Errorf builds an unsupported-feature error for the named construct.
func Errorf(feature, format string, args ...interface{}) *Error {
	return &Error{
		Feature: feature,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsNotSupported checks if an error is an unsupported-feature error.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}

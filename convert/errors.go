package convert

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	InputInvalid ErrorKind = iota
	ExternalMissing
	ExternalFailed
	IO
)

func (kind ErrorKind) String() string {
	switch kind {
	case InputInvalid:
		return "invalid input"
	case ExternalMissing:
		return "missing external tool"
	case ExternalFailed:
		return "external tool failed"
	case IO:
		return "io error"
	}

	return "error"
}

// Error carries the failure kind alongside the cause; the caller formats it
// for display.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (err *Error) Error() string {
	return err.Kind.String() + ": " + err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

func errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// wrap attaches a kind to err, keeping the innermost kind when one is
// already present.
func wrap(kind ErrorKind, err error) *Error {
	var existing *Error

	if errors.As(err, &existing) {
		return existing
	}

	return &Error{Kind: kind, Err: err}
}

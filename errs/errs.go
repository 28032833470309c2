// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for caller-facing handling.
type Kind int

const (
	// KindUnknown is anything not produced through this package.
	KindUnknown Kind = iota
	// KindValidation covers empty or malformed input.
	KindValidation
	// KindNotFound covers absent polls and nominations.
	KindNotFound
	// KindConflict covers duplicate mutations and already-active polls.
	KindConflict
	// KindPrecondition covers unmet lifecycle requirements.
	KindPrecondition
	// KindPersistence covers storage I/O failures.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPrecondition:
		return "precondition"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a classified error. Validation, NotFound, Conflict, and
// Precondition errors carry messages safe to show to callers;
// Persistence errors wrap the underlying failure and must not leak it.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a KindValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound creates a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict creates a KindConflict error.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Precondition creates a KindPrecondition error.
func Precondition(format string, args ...any) error {
	return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a storage failure. The message describes the
// operation; err keeps the driver detail for logs.
func Persistence(err error, format string, args ...any) error {
	return &Error{Kind: KindPersistence, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the Kind of err, or KindUnknown for plain errors.
// Wrapped errors are unwrapped via errors.As.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Package errors provides structured error handling for the simless harness.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies the category of a harness error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindLoad indicates a plugin load or entry-point failure. Load faults
	// are fatal: they abort the run instead of being swallowed.
	KindLoad
	// KindPermission indicates a write to a read-only dataref.
	KindPermission
	// KindTypeMismatch indicates a typed accessor used against a dataref of
	// a different promoted type.
	KindTypeMismatch
	// KindCallback indicates a recovered failure inside a plugin callback
	// (flight loop, widget message handler, or draw callback).
	KindCallback
	// KindTimeout indicates a readiness timeout that disabled a plugin.
	KindTimeout
	// KindConfig indicates an invalid harness or seed configuration.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindPermission:
		return "permission"
	case KindTypeMismatch:
		return "type-mismatch"
	case KindCallback:
		return "callback"
	case KindTimeout:
		return "timeout"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the harness.
type Error struct {
	// Op is the operation that failed (e.g., "dataref.SetFloat").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error with the given operation, kind, and message.
func New(op string, kind Kind, msg string) *Error {
	return &Error{Op: op, Kind: kind, Err: errors.New(msg), Timestamp: time.Now()}
}

// Newf constructs an Error with a formatted message.
func Newf(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...), Timestamp: time.Now()}
}

// Wrap constructs an Error around an existing error.
func Wrap(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// IsKind reports whether err is (or wraps) a harness Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var he *Error
	if errors.As(err, &he) {
		return he.Kind == kind
	}
	return false
}

// PanicError represents a recovered panic from a plugin callback.
type PanicError struct {
	// Op is the operation that panicked (e.g., "widget.Dispatch").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Handler receives errors reported by the harness.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

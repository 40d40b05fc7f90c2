// Package errs defines the error taxonomy shared by all ndimage packages.
//
// Every failure raised by the library is an *Error of one of three kinds:
//
//   - Assertion: an internal invariant was violated (the library code is wrong).
//   - Parameter: a caller supplied an inconsistent or out-of-range value.
//   - Runtime: the environment could not satisfy a valid request (allocation).
//
// Kinds are matched with errors.Is against ErrAssertion, ErrParameter and
// ErrRuntime. Context added with AddStackTrace extends the message only.
package errs

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Kind classifies an Error by origin.
type Kind uint8

const (
	// KindAssertion marks an internal-consistency failure.
	KindAssertion Kind = iota + 1
	// KindParameter marks an invalid-input failure.
	KindParameter
	// KindRuntime marks an environment failure.
	KindRuntime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAssertion:
		return "assertion"
	case KindParameter:
		return "parameter"
	case KindRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

var (
	// ErrAssertion matches every assertion-kind Error.
	ErrAssertion = errors.New("ndimage: assertion error")
	// ErrParameter matches every parameter-kind Error.
	ErrParameter = errors.New("ndimage: parameter error")
	// ErrRuntime matches every runtime-kind Error.
	ErrRuntime = errors.New("ndimage: runtime error")
)

// Error is the concrete error type raised by ndimage.
type Error struct {
	kind    Kind
	message string
	trace   []string
	cause   error
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Parameter creates a parameter-kind Error.
func Parameter(message string) *Error {
	return New(KindParameter, message)
}

// Parameterf creates a parameter-kind Error with a formatted message.
func Parameterf(format string, args ...any) *Error {
	return New(KindParameter, fmt.Sprintf(format, args...))
}

// Runtime creates a runtime-kind Error wrapping cause (which may be nil).
func Runtime(message string, cause error) *Error {
	return &Error{kind: KindRuntime, message: message, cause: cause}
}

// Wrap creates an Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: cause}
}

// Assertion creates an assertion-kind Error.
func Assertion(message string) *Error {
	return New(KindAssertion, message)
}

// Kind returns the error kind.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without stack trace entries.
func (e *Error) Message() string { return e.message }

// Trace returns the recorded "in function" entries, innermost first.
func (e *Error) Trace() []string {
	out := make([]string, len(e.trace))
	copy(out, e.trace)
	return out
}

// Error implements the error interface. The message (and cause) is followed
// by one line per stack trace entry.
func (e *Error) Error() string {
	s := e.message
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	for _, t := range e.trace {
		s += "\nin function: " + t
	}
	return s
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAssertion:
		return e.kind == KindAssertion
	case ErrParameter:
		return e.kind == KindParameter
	case ErrRuntime:
		return e.kind == KindRuntime
	}
	return false
}

// AddStackTrace appends the caller's function name, file and line to err if
// it is an *Error. Other errors are returned unchanged. The kind never changes.
func AddStackTrace(err error) error {
	return addFrame(err, 2)
}

func addFrame(err error, skip int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return err
	}
	name := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
	}
	e.trace = append(e.trace, fmt.Sprintf("%s (%s at line number %d)", name, filepath.Base(file), line))
	return err
}

// Raise returns a parameter-kind Error for message with the caller recorded
// as the first stack trace entry.
func Raise(message string) error {
	return addFrame(Parameter(message), 2)
}

// RaiseIf returns Raise(message) if cond holds, nil otherwise.
func RaiseIf(cond bool, message string) error {
	if !cond {
		return nil
	}
	return addFrame(Parameter(message), 2)
}

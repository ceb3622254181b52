package apperr

import (
	"errors"
	"fmt"
	"os"

	"github.com/mendapp/mend/internal/logger"
)

// Kind classifies the recoverable failures the engines report. Every Kind is
// safe to render to the user; none should crash the process.
type Kind int

const (
	// Unauthenticated means no resolved user accompanied the call.
	Unauthenticated Kind = iota
	// NotFound covers both missing records and records owned by another
	// user. The two are deliberately indistinguishable.
	NotFound
	// QuotaExceeded means a bounded budget (shuffles, shields) is spent.
	QuotaExceeded
	// InvalidState means the operation is illegal for the record's current
	// state (complete twice, shuffle after completing, undo when not done).
	InvalidState
	// Validation means the input itself was rejected.
	Validation
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	case QuotaExceeded:
		return "quota_exceeded"
	case InvalidState:
		return "invalid_state"
	case Validation:
		return "validation"
	}
	return "unknown"
}

// Error is a typed recoverable failure.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New builds a typed error with a plain message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds a typed error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is (or wraps) a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of a typed error, or ok=false for plumbing errors
// (storage failures and the like) that should propagate unchanged.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

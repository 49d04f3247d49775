package domain

import (
	"errors"
	"fmt"
)

// Kind classifies infrastructure failures by the boundary they crossed
type Kind int

const (
	// KindGather is a failure to discover or parse test specifications
	KindGather Kind = iota + 1
	// KindExecution is a failure to spawn a command, feed its stdin or decode its output
	KindExecution
	// KindRun is an execution failure surfaced by the runner; it aborts the whole run
	KindRun
	// KindFormat is a failure to render a summary; the built-in formatters never return it
	KindFormat
	// KindIO is a failure to write the report
	KindIO
	// KindStorage is a failure to persist or load run results
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindGather:
		return "gather"
	case KindExecution:
		return "execution"
	case KindRun:
		return "run"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a fatal infrastructure error. Test mismatches are never represented
// as an Error; they are unsuccessful TestResults.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and the operation that failed
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether any Error in err's chain has the given kind
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// IsFatal reports whether err is an infrastructure error
func IsFatal(err error) bool {
	var e *Error
	return err != nil && errors.As(err, &e)
}

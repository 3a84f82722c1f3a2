package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds of a run
var (
	// ErrFormat indicates a golden file that violates the grammar
	ErrFormat = errors.New("malformed golden file")
	// ErrIO indicates a golden file could not be opened, read or written
	ErrIO = errors.New("golden file i/o")
	// ErrAssertion indicates that computed values did not match the golden file
	ErrAssertion = errors.New("golden mismatch")
)

// FormatError is returned when a golden file does not follow the grammar.
// It aborts the run before any case executes.
type FormatError struct {
	Path    string // File being parsed, if known
	Line    int    // 1-based line number of the offending line, 0 at end of input
	Content string // The offending line, trimmed
	Reason  string
}

func (e *FormatError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if loc == "" {
		loc = "golden file"
	}
	if e.Content != "" {
		return fmt.Sprintf("%s: %s, found %s", loc, e.Reason, e.Content)
	}
	return fmt.Sprintf("%s: %s", loc, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// IOError wraps a failure to open, read or write a golden file.
type IOError struct {
	Op   string // "open", "read", "create", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying error.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// AssertionFailure carries the aggregated mismatch report of a run.
type AssertionFailure struct {
	Report string
}

func (e *AssertionFailure) Error() string {
	return "\nFAILURES:\n" + e.Report
}

func (e *AssertionFailure) Unwrap() error {
	return ErrAssertion
}

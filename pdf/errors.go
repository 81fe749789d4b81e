package pdf

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when a merge is requested with no input buffers.
var ErrNoInput = errors.New("no input documents")

// ParseError reports a byte buffer that could not be parsed as a PDF document.
// Input is the zero-based position of the offending buffer in a merge input
// list, or -1 when the failing buffer is the working document of a reduction.
type ParseError struct {
	Input int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Input < 0 {
		return fmt.Sprintf("parse document: %v", e.Err)
	}
	return fmt.Sprintf("parse input %d: %v", e.Input+1, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReduceError reports a fatal failure of the reduction loop: every attempt
// failed to produce serialized bytes, the placeholder could not be built, or
// the caller's deadline expired before a result was ready.
type ReduceError struct {
	Attempts int
	Err      error
}

func (e *ReduceError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("reduce failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("reduce failed: %v", e.Err)
}

func (e *ReduceError) Unwrap() error { return e.Err }

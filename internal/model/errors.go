package model

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is fatal: the current file cannot be processed.
	ErrFormat = errors.New("format error")
	// ErrValidation is recoverable: the offending line is dropped.
	ErrValidation = errors.New("validation error")
	// ErrUnknownToken reports an unrecognized access token.
	ErrUnknownToken = errors.New("unknown access token")
	// ErrChainOrder reports mapping sources merged out of namespace order.
	ErrChainOrder = errors.New("mapping chain out of order")
	// ErrBuilderFinalized reports use of a builder after Finalize.
	ErrBuilderFinalized = errors.New("builder already finalized")
)

// LineError attaches a 1-based line number and the offending text to an error.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// NewLineError wraps err with a line position.
func NewLineError(line int, text string, err error) error {
	return &LineError{Line: line, Text: text, Err: err}
}

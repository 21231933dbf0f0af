// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"errors"
	"fmt"
)

// Error categories. Every execution failure wraps one of these, so
// callers can classify with errors.Is through the line wrapper.
var (
	ErrUnknownOpcode      = errors.New("unknown opcode")
	ErrMissingOperands    = errors.New("missing operands")
	ErrUnknownRegister    = errors.New("unknown register")
	ErrMalformedImmediate = errors.New("malformed immediate")
)

// LineError wraps an execution error with the 1-based source line
// number and the offending instruction text.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v (in %q)", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"math/bits"

	"github.com/asmlab/minisim/insts"
)

// Flags holds the canonical condition flag state. Each ISA exposes a
// subset of these under its own display names.
type Flags struct {
	// Zero is set when a flag-affecting result is 0.
	Zero bool
	// Negative is set when a flag-affecting result is negative.
	Negative bool
	// Carry is set on unsigned overflow of the addition check.
	Carry bool
	// Overflow is set on signed overflow of the addition check.
	Overflow bool
	// Parity is set when the low result byte has an even bit count.
	Parity bool
}

// Get returns the value of one canonical flag.
func (f *Flags) Get(key insts.FlagKey) bool {
	switch key {
	case insts.FlagZero:
		return f.Zero
	case insts.FlagNegative:
		return f.Negative
	case insts.FlagCarry:
		return f.Carry
	case insts.FlagOverflow:
		return f.Overflow
	case insts.FlagParity:
		return f.Parity
	}
	return false
}

// Reset clears every flag.
func (f *Flags) Reset() {
	*f = Flags{}
}

// setArith sets the full flag set for op1 + op2 = result.
// Subtraction-class operations pass the negated subtrahend as op2, so
// carry and overflow come out of the same addition check.
func (f *Flags) setArith(op1, op2, result int64) {
	// Z: set if result is zero
	f.Zero = result == 0

	// N: set if result is negative
	f.Negative = result < 0

	// C: set if unsigned overflow (carry out of bit 63)
	_, carry := bits.Add64(uint64(op1), uint64(op2), 0)
	f.Carry = carry == 1

	// V: set if signed overflow
	// Overflow occurs when both operands share a sign the result lacks
	f.Overflow = (op1 < 0) == (op2 < 0) && (op1 < 0) != (result < 0)

	f.Parity = parity(result)
}

// setLogic sets only the result-shape flags. Carry and overflow keep
// whatever the last arithmetic instruction left in them.
func (f *Flags) setLogic(result int64) {
	f.Zero = result == 0
	f.Negative = result < 0
	f.Parity = parity(result)
}

// parity reports whether the low byte of v has an even number of set bits.
func parity(v int64) bool {
	return bits.OnesCount8(uint8(v))%2 == 0
}

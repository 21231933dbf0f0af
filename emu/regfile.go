// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"github.com/asmlab/minisim/insts"
)

// RegFile represents the register file for one machine.
// Values are signed 64-bit; hex renderings reinterpret them as unsigned.
// The ISA's zero register always reads as 0 and swallows writes.
type RegFile struct {
	isa      *insts.ISA
	values   map[string]int64
	modified map[string]bool
}

// NewRegFile creates a register file for the given instruction set,
// initialized to the reset state.
func NewRegFile(isa *insts.ISA) *RegFile {
	r := &RegFile{isa: isa}
	r.Reset()
	return r
}

// Reset zeroes every register, clears the modified set, and applies the
// stack and link sentinels.
func (r *RegFile) Reset() {
	r.values = make(map[string]int64, len(r.isa.Registers))
	r.modified = make(map[string]bool)
	for _, name := range r.isa.Registers {
		r.values[name] = 0
	}
	if r.isa.StackRegister != "" {
		r.values[r.isa.StackRegister] = r.isa.StackSentinel
	}
	if r.isa.LinkRegister != "" {
		r.values[r.isa.LinkRegister] = r.isa.LinkSentinel
	}
}

// Resolve maps a register name or alias to its canonical name.
func (r *RegFile) Resolve(name string) (string, bool) {
	return r.isa.ResolveRegister(name)
}

// Read returns a canonical register's value. The zero register reads as 0.
func (r *RegFile) Read(canonical string) int64 {
	if r.isa.ZeroRegister != "" && canonical == r.isa.ZeroRegister {
		return 0
	}
	return r.values[canonical]
}

// Write stores a value and marks the register modified. Writes to the
// zero register are discarded and leave the modified set alone.
func (r *RegFile) Write(canonical string, value int64) {
	if r.isa.ZeroRegister != "" && canonical == r.isa.ZeroRegister {
		return
	}
	r.values[canonical] = value
	r.modified[canonical] = true
}

// Modified reports whether the register has been written since reset.
func (r *RegFile) Modified(canonical string) bool {
	return r.modified[canonical]
}

// setInitial stores a reset value without marking the register modified.
func (r *RegFile) setInitial(canonical string, value int64) {
	r.values[canonical] = value
}

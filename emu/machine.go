// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asmlab/minisim/insts"
)

// RegisterValue is one display-ready entry of a register snapshot.
type RegisterValue struct {
	// Value is the signed decimal rendering.
	Value string `json:"value"`

	// Hex is "0x" followed by 16 uppercase hex digits.
	Hex string `json:"hex"`

	// Modified is true if the register was written since reset.
	Modified bool `json:"modified"`
}

// Result reports one full program execution.
type Result struct {
	// Success is true if the program ran to completion or halted.
	Success bool `json:"success"`

	// Output is the execution trace, one line per instruction plus a
	// closing status line.
	Output string `json:"output"`

	// Error describes the failure, prefixed with the source line
	// number. Empty on success.
	Error string `json:"error,omitempty"`
}

// Stats counts executed instructions since the last reset.
type Stats struct {
	// Instructions is the total executed instruction count.
	Instructions uint64

	// OpCounts breaks the total down per operation tag.
	OpCounts map[insts.Op]uint64
}

// Machine executes programs for one instruction set. All state
// (registers, flags, trace, statistics) lives on the machine; separate
// machines share nothing. A Machine is not safe for concurrent use.
type Machine struct {
	isa    *insts.ISA
	parser *insts.Parser
	regs   *RegFile
	flags  Flags

	// Execution state
	trace            []string
	halted           bool
	instructionCount uint64
	opCounts         map[insts.Op]uint64

	stackPointer int64
}

// MachineOption is a functional option for configuring the Machine.
type MachineOption func(*Machine)

// WithStackPointer overrides the initial stack pointer value.
func WithStackPointer(sp int64) MachineOption {
	return func(m *Machine) {
		m.stackPointer = sp
	}
}

// NewMachine creates a machine for the given instruction set.
func NewMachine(isa *insts.ISA, opts ...MachineOption) *Machine {
	m := &Machine{
		isa:          isa,
		parser:       insts.NewParser(),
		stackPointer: isa.StackSentinel,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.regs = NewRegFile(isa)
	m.Reset()
	return m
}

// Reset returns the machine to its initial state: registers zeroed with
// the stack and link sentinels applied, flags cleared, trace and
// statistics emptied.
func (m *Machine) Reset() {
	m.regs.Reset()
	if m.isa.StackRegister != "" && m.stackPointer != m.isa.StackSentinel {
		m.regs.setInitial(m.isa.StackRegister, m.stackPointer)
	}
	m.flags.Reset()
	m.trace = nil
	m.halted = false
	m.instructionCount = 0
	m.opCounts = make(map[insts.Op]uint64)
}

// Execute resets the machine and runs the program source to completion.
// Execution stops at the first error or at a halt; lines after a halt
// are not executed.
func (m *Machine) Execute(source string) Result {
	m.Reset()

	for i, line := range strings.Split(source, "\n") {
		halted, err := m.ExecuteLine(line, i+1)
		if err != nil {
			return Result{Output: m.Output(), Error: err.Error()}
		}
		if halted {
			break
		}
	}

	m.tracef("Execution completed (%d instructions)", m.instructionCount)
	return Result{Success: true, Output: m.Output()}
}

// ExecuteLine executes a single source line against the current state.
// Blank and comment-only lines execute nothing. Errors come back as a
// *LineError carrying lineNo and are echoed into the trace.
func (m *Machine) ExecuteLine(line string, lineNo int) (halted bool, err error) {
	st := m.parser.ParseLine(line)
	if st == nil {
		return false, nil
	}

	halted, err = m.executeStatement(st)
	if err != nil {
		lineErr := &LineError{Line: lineNo, Text: st.Text, Err: err}
		m.tracef("Error: %v", lineErr)
		return false, lineErr
	}
	if halted {
		m.halted = true
	}
	return halted, nil
}

// executeStatement looks up, validates, and dispatches one statement.
func (m *Machine) executeStatement(st *insts.Statement) (bool, error) {
	info, ok := m.isa.Opcodes[st.Mnemonic]
	if !ok {
		return false, fmt.Errorf("%w %q", ErrUnknownOpcode, st.Mnemonic)
	}
	if got := len(st.Args) + 1; got < info.MinTokens {
		return false, fmt.Errorf("%s %w: need %d, got %d",
			st.Mnemonic, ErrMissingOperands, info.MinTokens-1, got-1)
	}

	handler, ok := handlers[info.Op]
	if !ok {
		return false, fmt.Errorf("%w %q", ErrUnknownOpcode, st.Mnemonic)
	}

	halted, err := handler(m, st)
	if err != nil {
		return false, err
	}

	m.instructionCount++
	m.opCounts[info.Op]++
	return halted, nil
}

// Output returns the trace joined into one printable block.
func (m *Machine) Output() string {
	return strings.Join(m.trace, "\n")
}

// Trace returns a copy of the trace lines recorded since the last reset.
func (m *Machine) Trace() []string {
	out := make([]string, len(m.trace))
	copy(out, m.trace)
	return out
}

// Halted reports whether a halt instruction executed since reset.
func (m *Machine) Halted() bool {
	return m.halted
}

// ISA returns the machine's instruction-set description.
func (m *Machine) ISA() *insts.ISA {
	return m.isa
}

// InstructionCount returns the number of instructions executed since reset.
func (m *Machine) InstructionCount() uint64 {
	return m.instructionCount
}

// Stats returns the per-operation execution counts since reset.
func (m *Machine) Stats() Stats {
	counts := make(map[insts.Op]uint64, len(m.opCounts))
	for op, n := range m.opCounts {
		counts[op] = n
	}
	return Stats{Instructions: m.instructionCount, OpCounts: counts}
}

// RegisterState returns a display snapshot of every architectural
// register. The zero register is not part of the snapshot.
func (m *Machine) RegisterState() map[string]RegisterValue {
	state := make(map[string]RegisterValue, len(m.isa.Registers))
	for _, name := range m.isa.Registers {
		v := m.regs.Read(name)
		state[name] = RegisterValue{
			Value:    strconv.FormatInt(v, 10),
			Hex:      formatHex(v),
			Modified: m.regs.Modified(name),
		}
	}
	return state
}

// FlagsState returns the ISA-visible flags under their display names.
func (m *Machine) FlagsState() map[string]bool {
	state := make(map[string]bool, len(m.isa.Flags))
	for _, spec := range m.isa.Flags {
		state[spec.Name] = m.flags.Get(spec.Key)
	}
	return state
}

// tracef appends a formatted line to the execution trace.
func (m *Machine) tracef(format string, args ...interface{}) {
	m.trace = append(m.trace, fmt.Sprintf(format, args...))
}

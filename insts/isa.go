// Package insts provides instruction-set definitions and line parsing.
package insts

import (
	"fmt"
	"strings"
)

// Reset sentinels. Stack registers start at the conventional user-space
// stack top; the ARM64-like link register starts just under the
// address-space ceiling so it reads as a host return address.
const (
	DefaultStackTop    int64 = 0x7ffffffff000
	DefaultLinkAddress int64 = 0x7ffffffffff0
)

// FlagKey identifies one of the canonical condition flags.
type FlagKey uint8

// Canonical condition flags. Each ISA exposes a subset of these under
// its own display names.
const (
	FlagZero FlagKey = iota
	FlagNegative
	FlagCarry
	FlagOverflow
	FlagParity
)

// FlagSpec binds a display name to a canonical flag.
type FlagSpec struct {
	Name string
	Key  FlagKey
}

// OpcodeInfo describes one mnemonic in an ISA's opcode table.
type OpcodeInfo struct {
	// Op is the operation tag the mnemonic maps to.
	Op Op

	// MinTokens is the minimum token count for the instruction,
	// counting the mnemonic itself. Extra tokens are tolerated.
	MinTokens int
}

// ISA describes one simulated instruction set: its registers, flags,
// immediate syntax, and opcode table. The execution engine in the emu
// package is generic over this description.
type ISA struct {
	// Name is the canonical architecture name ("arm64" or "x86-64").
	Name string

	// Registers lists the canonical register names in display order.
	// The zero register is not listed; it is not part of snapshots.
	Registers []string

	// Aliases maps alternate register spellings to canonical names.
	Aliases map[string]string

	// ZeroRegister names the discard register, if the ISA has one.
	// It reads as zero and swallows writes.
	ZeroRegister string

	// StackRegister and LinkRegister name the registers that receive
	// sentinel values on reset. LinkRegister may be empty.
	StackRegister string
	LinkRegister  string

	// StackSentinel and LinkSentinel are the reset values for the
	// registers above.
	StackSentinel int64
	LinkSentinel  int64

	// Flags lists the exposed condition flags in display order.
	Flags []FlagSpec

	// ImmediateMarker is the prefix that introduces an immediate
	// operand ("#" for the ARM64-like set). When empty, bare literals
	// are accepted wherever a token fails register lookup.
	ImmediateMarker string

	// ThreeOperand is true when binary operations name the destination
	// and both sources separately. When false the destination doubles
	// as the first source.
	ThreeOperand bool

	// Opcodes is the mnemonic table.
	Opcodes map[string]OpcodeInfo

	lookup map[string]string
}

// ResolveRegister maps a register name or alias to its canonical name.
// Lookup is case-insensitive.
func (isa *ISA) ResolveRegister(name string) (string, bool) {
	canonical, ok := isa.lookup[strings.ToUpper(name)]
	return canonical, ok
}

// buildLookup indexes canonical names, the zero register, and aliases.
func (isa *ISA) buildLookup() *ISA {
	isa.lookup = make(map[string]string, len(isa.Registers)+len(isa.Aliases)+1)
	for _, reg := range isa.Registers {
		isa.lookup[reg] = reg
	}
	if isa.ZeroRegister != "" {
		isa.lookup[isa.ZeroRegister] = isa.ZeroRegister
	}
	for alias, canonical := range isa.Aliases {
		isa.lookup[alias] = canonical
	}
	return isa
}

// ARM64 returns the reduced ARM64-like instruction set: X0-X30 plus SP,
// the XZR/WZR zero register, NZCV flags, '#'-prefixed immediates, and
// three-operand data processing.
func ARM64() *ISA {
	regs := make([]string, 0, 32)
	for i := 0; i <= 30; i++ {
		regs = append(regs, fmt.Sprintf("X%d", i))
	}
	regs = append(regs, "SP")

	isa := &ISA{
		Name:      "arm64",
		Registers: regs,
		Aliases: map[string]string{
			"LR":  "X30",
			"WZR": "XZR",
		},
		ZeroRegister:    "XZR",
		StackRegister:   "SP",
		LinkRegister:    "X30",
		StackSentinel:   DefaultStackTop,
		LinkSentinel:    DefaultLinkAddress,
		ImmediateMarker: "#",
		ThreeOperand:    true,
		Flags: []FlagSpec{
			{Name: "N", Key: FlagNegative},
			{Name: "Z", Key: FlagZero},
			{Name: "C", Key: FlagCarry},
			{Name: "V", Key: FlagOverflow},
		},
		Opcodes: map[string]OpcodeInfo{
			"MOV":  {Op: OpMOV, MinTokens: 3},
			"MOVZ": {Op: OpMOV, MinTokens: 3},
			"ADD":  {Op: OpADD, MinTokens: 4},
			"SUB":  {Op: OpSUB, MinTokens: 4},
			"MUL":  {Op: OpMUL, MinTokens: 4},
			"AND":  {Op: OpAND, MinTokens: 4},
			"ORR":  {Op: OpORR, MinTokens: 4},
			"EOR":  {Op: OpEOR, MinTokens: 4},
			"LSL":  {Op: OpLSL, MinTokens: 4},
			"LSR":  {Op: OpLSR, MinTokens: 4},
			"CMP":  {Op: OpCMP, MinTokens: 3},
			"NOP":  {Op: OpNOP, MinTokens: 1},
			"RET":  {Op: OpRET, MinTokens: 1},
		},
	}
	return isa.buildLookup()
}

// AMD64 returns the reduced x86-64-like instruction set: the sixteen
// general-purpose registers, the CF/PF/ZF/SF/OF flags, bare literals,
// and two-operand data processing where the destination doubles as the
// first source.
func AMD64() *ISA {
	isa := &ISA{
		Name: "x86-64",
		Registers: []string{
			"RAX", "RBX", "RCX", "RDX", "RSI", "RDI", "RBP", "RSP",
			"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
		},
		StackRegister: "RSP",
		StackSentinel: DefaultStackTop,
		Flags: []FlagSpec{
			{Name: "CF", Key: FlagCarry},
			{Name: "PF", Key: FlagParity},
			{Name: "ZF", Key: FlagZero},
			{Name: "SF", Key: FlagNegative},
			{Name: "OF", Key: FlagOverflow},
		},
		Opcodes: map[string]OpcodeInfo{
			"MOV": {Op: OpMOV, MinTokens: 3},
			"ADD": {Op: OpADD, MinTokens: 3},
			"SUB": {Op: OpSUB, MinTokens: 3},
			"MUL": {Op: OpMUL, MinTokens: 3},
			"AND": {Op: OpAND, MinTokens: 3},
			"OR":  {Op: OpORR, MinTokens: 3},
			"XOR": {Op: OpEOR, MinTokens: 3},
			"SHL": {Op: OpLSL, MinTokens: 3},
			"SHR": {Op: OpLSR, MinTokens: 3},
			"CMP": {Op: OpCMP, MinTokens: 3},
			"INC": {Op: OpINC, MinTokens: 2},
			"DEC": {Op: OpDEC, MinTokens: 2},
			"NOP": {Op: OpNOP, MinTokens: 1},
			"RET": {Op: OpRET, MinTokens: 1},
		},
	}
	return isa.buildLookup()
}

// Lookup returns the ISA for an architecture name. Common spellings
// (aarch64, amd64, x86_64, x86) are accepted as aliases.
func Lookup(name string) (*ISA, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "arm64", "aarch64":
		return ARM64(), nil
	case "x86-64", "x86_64", "amd64", "x86":
		return AMD64(), nil
	default:
		return nil, fmt.Errorf("unknown architecture %q", name)
	}
}

// Names returns the canonical architecture names.
func Names() []string {
	return []string{"arm64", "x86-64"}
}

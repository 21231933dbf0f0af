// Package insts provides instruction-set definitions and line parsing.
package insts

// Op identifies a simulated operation independent of its mnemonic
// spelling. Both instruction sets map their mnemonics onto these tags.
type Op uint16

// Operation tags.
const (
	OpUnknown Op = iota
	OpMOV
	OpADD
	OpSUB
	OpMUL
	OpAND
	OpORR
	OpEOR
	OpLSL
	OpLSR
	OpCMP
	OpINC
	OpDEC
	OpNOP
	OpRET
)

var opNames = map[Op]string{
	OpMOV: "MOV",
	OpADD: "ADD",
	OpSUB: "SUB",
	OpMUL: "MUL",
	OpAND: "AND",
	OpORR: "ORR",
	OpEOR: "EOR",
	OpLSL: "LSL",
	OpLSR: "LSR",
	OpCMP: "CMP",
	OpINC: "INC",
	OpDEC: "DEC",
	OpNOP: "NOP",
	OpRET: "RET",
}

// String returns the tag's canonical name.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "UNKNOWN"
}

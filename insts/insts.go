// Package insts provides instruction-set definitions and line parsing.
//
// This package describes the two simulated instruction sets and turns
// assembly source lines into structured statements. It supports:
//   - A reduced ARM64-like set: MOV/MOVZ, ADD, SUB, MUL, AND, ORR, EOR,
//     LSL, LSR, CMP, NOP, RET over X0-X30, SP, and the zero register
//   - A reduced x86-64-like set: MOV, ADD, SUB, MUL, AND, OR, XOR, SHL,
//     SHR, CMP, INC, DEC, NOP, RET over the sixteen general registers
//
// Usage:
//
//	parser := insts.NewParser()
//	st := parser.ParseLine("ADD X2, X0, X1 // total")
//	fmt.Printf("Mnemonic: %s, Args: %v\n", st.Mnemonic, st.Args)
package insts

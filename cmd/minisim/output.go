package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/asmlab/minisim/emu"
	"github.com/asmlab/minisim/insts"
	"github.com/asmlab/minisim/timing"
)

// printRegisters prints the register panel. By default only modified
// registers and the stack/link registers appear.
func printRegisters(w io.Writer, machine *emu.Machine, all bool) {
	isa := machine.ISA()
	state := machine.RegisterState()

	fmt.Fprintf(w, "Registers (%s):\n", isa.Name)
	for _, name := range isa.Registers {
		rv := state[name]
		if !all && !rv.Modified && name != isa.StackRegister && name != isa.LinkRegister {
			continue
		}
		marker := " "
		if rv.Modified {
			marker = "*"
		}
		fmt.Fprintf(w, "  %-4s %s %20s  %s\n", name, marker, rv.Value, rv.Hex)
	}
}

// printFlags prints the flag panel in ISA display order.
func printFlags(w io.Writer, machine *emu.Machine) {
	state := machine.FlagsState()

	line := "Flags:"
	for _, spec := range machine.ISA().Flags {
		bit := 0
		if state[spec.Name] {
			bit = 1
		}
		line += fmt.Sprintf(" %s=%d", spec.Name, bit)
	}
	fmt.Fprintln(w, line)
}

// printTiming prints the estimated cycle report for the last run.
func printTiming(w io.Writer, machine *emu.Machine, table *timing.Table) {
	stats := machine.Stats()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Instructions: %d\n", stats.Instructions)
	fmt.Fprintf(w, "Estimated cycles: %d\n", table.Estimate(stats.OpCounts))

	ops := make([]insts.Op, 0, len(stats.OpCounts))
	for op := range stats.OpCounts {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })

	for _, op := range ops {
		fmt.Fprintf(w, "  %-4s %6d x %d cycles\n", op, stats.OpCounts[op], table.Cost(op))
	}
}

// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"fmt"
	"strings"
)

// formatHex renders a value as "0x" plus 16 uppercase hex digits.
func formatHex(v int64) string {
	return fmt.Sprintf("0x%016X", uint64(v))
}

// formatValue renders a result in both decimal and hex for the trace.
func formatValue(v int64) string {
	return fmt.Sprintf("%d (%s)", v, formatHex(v))
}

// flagSummary renders the ISA-visible flags in display order, as in
// "N=0 Z=1 C=1 V=0".
func (m *Machine) flagSummary() string {
	parts := make([]string, len(m.isa.Flags))
	for i, spec := range m.isa.Flags {
		bit := 0
		if m.flags.Get(spec.Key) {
			bit = 1
		}
		parts[i] = fmt.Sprintf("%s=%d", spec.Name, bit)
	}
	return strings.Join(parts, " ")
}

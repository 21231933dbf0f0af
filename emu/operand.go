// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"fmt"
	"strconv"
	"strings"
)

// operand is a resolved source value plus its display form for the trace.
type operand struct {
	value int64
	disp  string
}

// destRegister resolves a destination token, which must name a register.
func (m *Machine) destRegister(tok string) (string, error) {
	canonical, ok := m.regs.Resolve(tok)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownRegister, tok)
	}
	return canonical, nil
}

// sourceValue resolves a value-position token to a register read or an
// immediate, following the ISA's immediate syntax.
func (m *Machine) sourceValue(tok string) (operand, error) {
	marker := m.isa.ImmediateMarker
	if marker != "" {
		if strings.HasPrefix(tok, marker) {
			v, err := parseImmediate(tok[len(marker):])
			if err != nil {
				return operand{}, fmt.Errorf("%w %q", ErrMalformedImmediate, tok)
			}
			return operand{value: v, disp: marker + strconv.FormatInt(v, 10)}, nil
		}
		canonical, ok := m.regs.Resolve(tok)
		if !ok {
			return operand{}, fmt.Errorf("%w %q", ErrUnknownRegister, tok)
		}
		return operand{value: m.regs.Read(canonical), disp: canonical}, nil
	}

	// Bare-literal syntax: a register name wins, anything else must
	// parse as an immediate.
	if canonical, ok := m.regs.Resolve(tok); ok {
		return operand{value: m.regs.Read(canonical), disp: canonical}, nil
	}
	v, err := parseImmediate(tok)
	if err != nil {
		return operand{}, fmt.Errorf("invalid operand %q: %w", tok, ErrMalformedImmediate)
	}
	return operand{value: v, disp: strconv.FormatInt(v, 10)}, nil
}

// parseImmediate parses a decimal or 0x-prefixed hex literal with an
// optional sign. Hex literals cover the full unsigned 64-bit range and
// are reinterpreted as two's-complement.
func parseImmediate(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty literal")
	}

	body := s
	negative := false
	switch body[0] {
	case '+':
		body = body[1:]
	case '-':
		negative = true
		body = body[1:]
	}

	if len(body) > 2 && (strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X")) {
		u, err := strconv.ParseUint(body[2:], 16, 64)
		if err != nil {
			return 0, err
		}
		v := int64(u)
		if negative {
			v = -v
		}
		return v, nil
	}

	return strconv.ParseInt(s, 10, 64)
}

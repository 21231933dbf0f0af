// Package emu provides the generic execution engine for the simulated
// instruction sets.
package emu

import (
	"github.com/asmlab/minisim/insts"
)

// handlerFunc executes one validated statement and reports whether the
// machine should halt.
type handlerFunc func(m *Machine, st *insts.Statement) (bool, error)

// handlers dispatches operation tags to their implementations. Both
// instruction sets share them; per-ISA differences (operand form,
// immediate syntax, exposed flags) live in the ISA description.
var handlers = map[insts.Op]handlerFunc{
	insts.OpMOV: execMOV,
	insts.OpADD: execADD,
	insts.OpSUB: execSUB,
	insts.OpMUL: execMUL,
	insts.OpAND: execAND,
	insts.OpORR: execORR,
	insts.OpEOR: execEOR,
	insts.OpLSL: execLSL,
	insts.OpLSR: execLSR,
	insts.OpCMP: execCMP,
	insts.OpINC: execINC,
	insts.OpDEC: execDEC,
	insts.OpNOP: execNOP,
	insts.OpRET: execRET,
}

// binaryOperands resolves the destination and both sources of a binary
// operation. Under a three-operand ISA the sources are the second and
// third tokens; otherwise the destination doubles as the first source.
func (m *Machine) binaryOperands(st *insts.Statement) (dest string, a, b operand, err error) {
	dest, err = m.destRegister(st.Args[0])
	if err != nil {
		return "", operand{}, operand{}, err
	}

	if m.isa.ThreeOperand {
		a, err = m.sourceValue(st.Args[1])
		if err != nil {
			return "", operand{}, operand{}, err
		}
		b, err = m.sourceValue(st.Args[2])
		if err != nil {
			return "", operand{}, operand{}, err
		}
		return dest, a, b, nil
	}

	a = operand{value: m.regs.Read(dest), disp: dest}
	b, err = m.sourceValue(st.Args[1])
	if err != nil {
		return "", operand{}, operand{}, err
	}
	return dest, a, b, nil
}

func execMOV(m *Machine, st *insts.Statement) (bool, error) {
	dest, err := m.destRegister(st.Args[0])
	if err != nil {
		return false, err
	}
	src, err := m.sourceValue(st.Args[1])
	if err != nil {
		return false, err
	}

	m.regs.Write(dest, src.value)
	m.tracef("%s: %s = %s", st.Mnemonic, dest, formatValue(src.value))
	return false, nil
}

func execADD(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	// ADD leaves the flags alone; the subtraction paths recompute them.
	result := a.value + b.value
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s + %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execSUB(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	// Flags come from the addition check over the negated subtrahend,
	// so subtracting zero leaves carry clear.
	negated := -b.value
	result := a.value + negated
	m.flags.setArith(a.value, negated, result)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s - %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execMUL(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	result := a.value * b.value
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s * %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execAND(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	result := a.value & b.value
	m.flags.setLogic(result)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s & %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execORR(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	result := a.value | b.value
	m.flags.setLogic(result)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s | %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execEOR(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	result := a.value ^ b.value
	m.flags.setLogic(result)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s ^ %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execLSL(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	result := shiftLeft(a.value, b.value)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s << %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execLSR(m *Machine, st *insts.Statement) (bool, error) {
	dest, a, b, err := m.binaryOperands(st)
	if err != nil {
		return false, err
	}

	result := shiftRight(a.value, b.value)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s >> %s = %s", st.Mnemonic, dest, a.disp, b.disp, formatValue(result))
	return false, nil
}

func execCMP(m *Machine, st *insts.Statement) (bool, error) {
	a, err := m.sourceValue(st.Args[0])
	if err != nil {
		return false, err
	}
	b, err := m.sourceValue(st.Args[1])
	if err != nil {
		return false, err
	}

	// Compare sets flags exactly like SUB but writes no register.
	negated := -b.value
	m.flags.setArith(a.value, negated, a.value+negated)
	m.tracef("%s: %s vs %s -> %s", st.Mnemonic, a.disp, b.disp, m.flagSummary())
	return false, nil
}

func execINC(m *Machine, st *insts.Statement) (bool, error) {
	dest, err := m.destRegister(st.Args[0])
	if err != nil {
		return false, err
	}

	v := m.regs.Read(dest)
	result := v + 1
	m.flags.setArith(v, 1, result)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s + 1 = %s", st.Mnemonic, dest, dest, formatValue(result))
	return false, nil
}

func execDEC(m *Machine, st *insts.Statement) (bool, error) {
	dest, err := m.destRegister(st.Args[0])
	if err != nil {
		return false, err
	}

	v := m.regs.Read(dest)
	negated := int64(-1)
	result := v + negated
	m.flags.setArith(v, negated, result)
	m.regs.Write(dest, result)
	m.tracef("%s: %s = %s - 1 = %s", st.Mnemonic, dest, dest, formatValue(result))
	return false, nil
}

func execNOP(m *Machine, st *insts.Statement) (bool, error) {
	m.tracef("%s: no operation", st.Mnemonic)
	return false, nil
}

func execRET(m *Machine, st *insts.Statement) (bool, error) {
	m.tracef("%s: halting execution", st.Mnemonic)
	return true, nil
}

// shiftLeft shifts left within the 64-bit window. Amounts outside
// [0, 63] shift every bit out.
func shiftLeft(v, amount int64) int64 {
	if amount < 0 || amount > 63 {
		return 0
	}
	return int64(uint64(v) << uint(amount))
}

// shiftRight is a logical (zero-filling) right shift within the 64-bit
// window. Amounts outside [0, 63] shift every bit out.
func shiftRight(v, amount int64) int64 {
	if amount < 0 || amount > 63 {
		return 0
	}
	return int64(uint64(v) >> uint(amount))
}

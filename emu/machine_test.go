package emu_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asmlab/minisim/emu"
	"github.com/asmlab/minisim/insts"
)

var _ = Describe("Machine (arm64)", func() {
	var m *emu.Machine

	BeforeEach(func() {
		m = emu.NewMachine(insts.ARM64())
	})

	Describe("MOV", func() {
		It("should load an immediate into the destination", func() {
			result := m.Execute("MOV X0, #42")

			Expect(result.Success).To(BeTrue())
			state := m.RegisterState()
			Expect(state["X0"].Value).To(Equal("42"))
			Expect(state["X0"].Hex).To(Equal("0x000000000000002A"))
			Expect(state["X0"].Modified).To(BeTrue())
		})

		It("should accept hex and decimal immediates equally", func() {
			m.Execute("MOV X0, #0x2A\nMOV X1, #42")

			state := m.RegisterState()
			Expect(state["X0"].Value).To(Equal(state["X1"].Value))
		})

		It("should accept negative immediates", func() {
			m.Execute("MOV X0, #-5")

			Expect(m.RegisterState()["X0"].Value).To(Equal("-5"))
			Expect(m.RegisterState()["X0"].Hex).To(Equal("0xFFFFFFFFFFFFFFFB"))
		})

		It("should copy register to register", func() {
			m.Execute("MOV X0, #7\nMOV X1, X0")

			Expect(m.RegisterState()["X1"].Value).To(Equal("7"))
		})

		It("should leave the flags alone", func() {
			m.Execute("MOV X0, #0")

			for name, set := range m.FlagsState() {
				Expect(set).To(BeFalse(), "flag %s", name)
			}
		})

		It("should treat MOVZ as MOV", func() {
			result := m.Execute("MOVZ X0, #9")

			Expect(result.Success).To(BeTrue())
			Expect(m.RegisterState()["X0"].Value).To(Equal("9"))
		})
	})

	Describe("arithmetic", func() {
		It("should add registers", func() {
			result := m.Execute("MOV X0, #42\nMOV X1, #8\nADD X2, X0, X1")

			Expect(result.Success).To(BeTrue())
			state := m.RegisterState()
			Expect(state["X2"].Value).To(Equal("50"))
			Expect(state["X2"].Hex).To(Equal("0x0000000000000032"))
		})

		It("should subtract registers", func() {
			m.Execute("MOV X0, #42\nMOV X1, #8\nSUB X2, X0, X1")

			Expect(m.RegisterState()["X2"].Value).To(Equal("34"))
		})

		It("should multiply registers", func() {
			m.Execute("MOV X0, #6\nMOV X1, #7\nMUL X2, X0, X1")

			Expect(m.RegisterState()["X2"].Value).To(Equal("42"))
		})

		It("should keep signed results without truncation", func() {
			m.Execute("MOV X0, #3\nMOV X1, #10\nSUB X2, X0, X1")

			Expect(m.RegisterState()["X2"].Value).To(Equal("-7"))
		})

		It("should allow immediates in source positions", func() {
			m.Execute("MOV X0, #40\nADD X1, X0, #2")

			Expect(m.RegisterState()["X1"].Value).To(Equal("42"))
		})
	})

	Describe("flags", func() {
		It("should set Z when a SUB result is zero", func() {
			m.Execute("MOV X0, #5\nSUB X1, X0, X0")

			Expect(m.FlagsState()["Z"]).To(BeTrue())
			Expect(m.FlagsState()["N"]).To(BeFalse())
		})

		It("should clear Z on a nonzero result", func() {
			m.Execute("MOV X0, #5\nSUB X1, X0, #3")

			Expect(m.FlagsState()["Z"]).To(BeFalse())
		})

		It("should set N on a negative result", func() {
			m.Execute("MOV X0, #3\nSUB X1, X0, #10")

			Expect(m.FlagsState()["N"]).To(BeTrue())
		})

		It("should set C when comparing equal values", func() {
			// The subtraction carry comes from adding the negated
			// subtrahend, so equal nonzero values carry out.
			m.Execute("MOV X0, #1\nCMP X0, X0")

			flags := m.FlagsState()
			Expect(flags["Z"]).To(BeTrue())
			Expect(flags["C"]).To(BeTrue())
			Expect(flags["V"]).To(BeFalse())
		})

		It("should leave C clear when subtracting zero", func() {
			m.Execute("MOV X0, #5\nSUB X1, X0, #0")

			Expect(m.FlagsState()["C"]).To(BeFalse())
		})

		It("should not touch flags on ADD", func() {
			m.Execute("MOV X0, #1\nCMP X0, X0\nADD X1, X0, X0")

			flags := m.FlagsState()
			Expect(flags["Z"]).To(BeTrue())
			Expect(flags["C"]).To(BeTrue())
		})

		It("should preserve C and V across bitwise operations", func() {
			m.Execute("MOV X0, #1\nCMP X0, X0\nMOV X1, #2\nAND X2, X0, X1")

			flags := m.FlagsState()
			Expect(flags["Z"]).To(BeTrue(), "AND result is zero")
			Expect(flags["C"]).To(BeTrue(), "carry from the earlier CMP survives")
			Expect(flags["V"]).To(BeFalse())
		})

		It("should recompute Z and N on ORR and EOR", func() {
			m.Execute("MOV X0, #-1\nORR X1, X0, X0")
			Expect(m.FlagsState()["N"]).To(BeTrue())

			m.Execute("MOV X0, #7\nEOR X1, X0, X0")
			Expect(m.FlagsState()["Z"]).To(BeTrue())
		})
	})

	Describe("CMP", func() {
		It("should write no register", func() {
			m.Execute("MOV X0, #5\nMOV X1, #3\nCMP X0, X1")

			state := m.RegisterState()
			Expect(state["X0"].Value).To(Equal("5"))
			Expect(state["X1"].Value).To(Equal("3"))
			for _, name := range []string{"X2", "X3", "X4"} {
				Expect(state[name].Modified).To(BeFalse())
			}
		})

		It("should accept an immediate first operand", func() {
			result := m.Execute("MOV X0, #5\nCMP #5, X0")

			Expect(result.Success).To(BeTrue())
			Expect(m.FlagsState()["Z"]).To(BeTrue())
		})
	})

	Describe("shifts", func() {
		It("should shift left", func() {
			m.Execute("MOV X0, #1\nLSL X1, X0, #4")

			Expect(m.RegisterState()["X1"].Value).To(Equal("16"))
		})

		It("should shift right logically", func() {
			m.Execute("MOV X0, #16\nLSR X1, X0, #4")

			Expect(m.RegisterState()["X1"].Value).To(Equal("1"))
		})

		It("should zero-fill a right shift of a negative value", func() {
			m.Execute("MOV X0, #-1\nLSR X1, X0, #60")

			Expect(m.RegisterState()["X1"].Value).To(Equal("15"))
		})

		It("should produce zero for out-of-range amounts", func() {
			m.Execute("MOV X0, #1\nLSL X1, X0, #64\nLSL X2, X0, #200")

			Expect(m.RegisterState()["X1"].Value).To(Equal("0"))
			Expect(m.RegisterState()["X2"].Value).To(Equal("0"))
		})
	})

	Describe("zero register", func() {
		It("should read as zero", func() {
			m.Execute("ADD X0, XZR, #3")

			Expect(m.RegisterState()["X0"].Value).To(Equal("3"))
		})

		It("should discard writes", func() {
			result := m.Execute("MOV XZR, #5\nADD X0, XZR, #1")

			Expect(result.Success).To(BeTrue())
			Expect(m.RegisterState()["X0"].Value).To(Equal("1"))
		})

		It("should never appear in the register snapshot", func() {
			m.Execute("MOV XZR, #5")

			state := m.RegisterState()
			Expect(state).NotTo(HaveKey("XZR"))
			Expect(state).NotTo(HaveKey("WZR"))
		})

		It("should treat WZR as the same slot", func() {
			result := m.Execute("MOV WZR, #5\nADD X0, WZR, #2")

			Expect(result.Success).To(BeTrue())
			Expect(m.RegisterState()["X0"].Value).To(Equal("2"))
		})
	})

	Describe("halting", func() {
		It("should stop at RET and skip the rest", func() {
			result := m.Execute("MOV X0, #1\nRET\nMOV X1, #2")

			Expect(result.Success).To(BeTrue())
			Expect(m.RegisterState()["X1"].Modified).To(BeFalse())
			Expect(result.Output).To(ContainSubstring("RET: halting execution"))
			Expect(strings.Count(result.Output, "MOV:")).To(Equal(1))
		})

		It("should report Halted after RET", func() {
			m.Execute("RET")

			Expect(m.Halted()).To(BeTrue())
		})
	})

	Describe("errors", func() {
		It("should fail on an unknown opcode with the line number", func() {
			result := m.Execute("MOV X0, #1\nFOO X0, X0")

			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(ContainSubstring("line 2"))
			Expect(result.Error).To(ContainSubstring("unknown opcode"))
			Expect(result.Error).To(ContainSubstring("FOO"))
		})

		It("should echo the error into the trace", func() {
			result := m.Execute("BAR")

			Expect(result.Output).To(ContainSubstring("Error: line 1"))
		})

		It("should keep the trace accumulated before the failure", func() {
			result := m.Execute("MOV X0, #1\nFOO X0, X0")

			Expect(result.Output).To(ContainSubstring("MOV: X0 = 1"))
		})

		It("should fail on too few operands", func() {
			result := m.Execute("ADD X0, X1")

			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(ContainSubstring("missing operands"))
		})

		It("should fail on an unknown register", func() {
			result := m.Execute("MOV X99, #1")

			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(ContainSubstring("unknown register"))
		})

		It("should fail on a malformed immediate", func() {
			result := m.Execute("MOV X0, #zz")

			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(ContainSubstring("malformed immediate"))
		})

		It("should classify errors through the line wrapper", func() {
			_, err := m.ExecuteLine("FOO X0", 1)

			Expect(errors.Is(err, emu.ErrUnknownOpcode)).To(BeTrue())

			var lineErr *emu.LineError
			Expect(errors.As(err, &lineErr)).To(BeTrue())
			Expect(lineErr.Line).To(Equal(1))
			Expect(lineErr.Text).To(Equal("FOO X0"))
		})

		It("should not count the failing instruction", func() {
			m.Execute("MOV X0, #1\nFOO X0, X0")

			Expect(m.InstructionCount()).To(Equal(uint64(1)))
		})
	})

	Describe("program runner", func() {
		It("should skip blank and comment lines without numbering drift", func() {
			result := m.Execute("\n// leading comment\nMOV X0, #1\n\nQUX")

			Expect(result.Success).To(BeFalse())
			Expect(result.Error).To(ContainSubstring("line 5"))
		})

		It("should tolerate CRLF line endings", func() {
			result := m.Execute("MOV X0, #1\r\nADD X1, X0, #1\r\n")

			Expect(result.Success).To(BeTrue())
			Expect(m.RegisterState()["X1"].Value).To(Equal("2"))
		})

		It("should append a closing line with the instruction count", func() {
			result := m.Execute("MOV X0, #1\nNOP")

			Expect(result.Output).To(ContainSubstring("Execution completed (2 instructions)"))
		})

		It("should produce the documented trace shapes", func() {
			result := m.Execute("MOV X0, #42\nMOV X1, #8\nADD X2, X0, X1")

			Expect(result.Output).To(ContainSubstring("MOV: X0 = 42 (0x000000000000002A)"))
			Expect(result.Output).To(ContainSubstring("ADD: X2 = X0 + X1 = 50 (0x0000000000000032)"))
		})

		It("should summarize flags in the CMP trace", func() {
			result := m.Execute("MOV X0, #1\nCMP X0, X0")

			Expect(result.Output).To(ContainSubstring("CMP: X0 vs X0 -> N=0 Z=1 C=1 V=0"))
		})

		It("should restart from a clean state on every call", func() {
			m.Execute("MOV X0, #99")
			m.Execute("NOP")

			Expect(m.RegisterState()["X0"].Value).To(Equal("0"))
			Expect(m.RegisterState()["X0"].Modified).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("should zero registers and clear flags", func() {
			m.Execute("MOV X0, #5\nSUB X1, X0, X0")
			m.Reset()

			state := m.RegisterState()
			Expect(state["X0"].Value).To(Equal("0"))
			Expect(state["X0"].Modified).To(BeFalse())
			for name, set := range m.FlagsState() {
				Expect(set).To(BeFalse(), "flag %s", name)
			}
			Expect(m.Trace()).To(BeEmpty())
			Expect(m.Halted()).To(BeFalse())
		})

		It("should apply the stack and link sentinels", func() {
			m.Reset()

			state := m.RegisterState()
			Expect(state["SP"].Hex).To(Equal("0x00007FFFFFFFF000"))
			Expect(state["X30"].Hex).To(Equal("0x00007FFFFFFFFFF0"))
			Expect(state["SP"].Modified).To(BeFalse())
		})
	})

	Describe("options", func() {
		It("should honor a stack pointer override", func() {
			m := emu.NewMachine(insts.ARM64(), emu.WithStackPointer(0x1000))

			Expect(m.RegisterState()["SP"].Value).To(Equal("4096"))

			m.Execute("NOP")
			Expect(m.RegisterState()["SP"].Value).To(Equal("4096"))
		})
	})

	Describe("Stats", func() {
		It("should count executed instructions per operation", func() {
			m.Execute("MOV X0, #1\nMOV X1, #2\nADD X2, X0, X1\nRET")

			stats := m.Stats()
			Expect(stats.Instructions).To(Equal(uint64(4)))
			Expect(stats.OpCounts[insts.OpMOV]).To(Equal(uint64(2)))
			Expect(stats.OpCounts[insts.OpADD]).To(Equal(uint64(1)))
			Expect(stats.OpCounts[insts.OpRET]).To(Equal(uint64(1)))
		})

		It("should return an independent copy of the counts", func() {
			m.Execute("NOP")

			stats := m.Stats()
			stats.OpCounts[insts.OpNOP] = 99
			Expect(m.Stats().OpCounts[insts.OpNOP]).To(Equal(uint64(1)))
		})
	})
})

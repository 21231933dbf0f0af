package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/asmlab/minisim/insts"
)

var _ = Describe("ISA", func() {
	Describe("ARM64", func() {
		var isa *insts.ISA

		BeforeEach(func() {
			isa = insts.ARM64()
		})

		It("should list X0-X30 and SP in display order", func() {
			Expect(isa.Registers).To(HaveLen(32))
			Expect(isa.Registers[0]).To(Equal("X0"))
			Expect(isa.Registers[30]).To(Equal("X30"))
			Expect(isa.Registers[31]).To(Equal("SP"))
		})

		It("should not list the zero register", func() {
			Expect(isa.Registers).NotTo(ContainElement("XZR"))
			Expect(isa.ZeroRegister).To(Equal("XZR"))
		})

		It("should resolve names case-insensitively", func() {
			canonical, ok := isa.ResolveRegister("x5")
			Expect(ok).To(BeTrue())
			Expect(canonical).To(Equal("X5"))
		})

		It("should resolve LR to X30", func() {
			canonical, ok := isa.ResolveRegister("lr")
			Expect(ok).To(BeTrue())
			Expect(canonical).To(Equal("X30"))
		})

		It("should resolve WZR to the zero register", func() {
			canonical, ok := isa.ResolveRegister("WZR")
			Expect(ok).To(BeTrue())
			Expect(canonical).To(Equal("XZR"))
		})

		It("should reject unknown names", func() {
			_, ok := isa.ResolveRegister("X31")
			Expect(ok).To(BeFalse())
		})

		It("should expose the NZCV flags in order", func() {
			names := make([]string, 0, len(isa.Flags))
			for _, spec := range isa.Flags {
				names = append(names, spec.Name)
			}
			Expect(names).To(Equal([]string{"N", "Z", "C", "V"}))
		})

		It("should mark immediates with #", func() {
			Expect(isa.ImmediateMarker).To(Equal("#"))
			Expect(isa.ThreeOperand).To(BeTrue())
		})

		It("should map MOVZ onto the move operation", func() {
			Expect(isa.Opcodes["MOVZ"].Op).To(Equal(insts.OpMOV))
		})
	})

	Describe("AMD64", func() {
		var isa *insts.ISA

		BeforeEach(func() {
			isa = insts.AMD64()
		})

		It("should list the sixteen general registers", func() {
			Expect(isa.Registers).To(HaveLen(16))
			Expect(isa.Registers[0]).To(Equal("RAX"))
			Expect(isa.Registers[15]).To(Equal("R15"))
		})

		It("should have no zero register", func() {
			Expect(isa.ZeroRegister).To(BeEmpty())
		})

		It("should expose the x86 flags in order", func() {
			names := make([]string, 0, len(isa.Flags))
			for _, spec := range isa.Flags {
				names = append(names, spec.Name)
			}
			Expect(names).To(Equal([]string{"CF", "PF", "ZF", "SF", "OF"}))
		})

		It("should use bare literals and two-operand form", func() {
			Expect(isa.ImmediateMarker).To(BeEmpty())
			Expect(isa.ThreeOperand).To(BeFalse())
		})

		It("should carry INC and DEC", func() {
			Expect(isa.Opcodes["INC"].Op).To(Equal(insts.OpINC))
			Expect(isa.Opcodes["DEC"].Op).To(Equal(insts.OpDEC))
			Expect(isa.Opcodes["INC"].MinTokens).To(Equal(2))
		})
	})

	Describe("Lookup", func() {
		It("should accept canonical and alias spellings", func() {
			for _, name := range []string{"arm64", "aarch64", "ARM64"} {
				isa, err := insts.Lookup(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(isa.Name).To(Equal("arm64"))
			}
			for _, name := range []string{"x86-64", "x86_64", "amd64", "x86"} {
				isa, err := insts.Lookup(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(isa.Name).To(Equal("x86-64"))
			}
		})

		It("should reject unknown architectures", func() {
			_, err := insts.Lookup("riscv")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Op", func() {
		It("should print canonical tag names", func() {
			Expect(insts.OpADD.String()).To(Equal("ADD"))
			Expect(insts.OpEOR.String()).To(Equal("EOR"))
			Expect(insts.OpUnknown.String()).To(Equal("UNKNOWN"))
		})
	})
})

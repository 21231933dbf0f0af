package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/asmlab/minisim/emu"
	"github.com/asmlab/minisim/insts"
)

// newReplCmd builds the repl subcommand.
func newReplCmd() *cobra.Command {
	var arch string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Execute instructions interactively",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			isa, err := insts.Lookup(arch)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if err := runRepl(isa); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&arch, "arch", "arm64", "Architecture to simulate (arm64 or x86-64)")
	return cmd
}

// runRepl drives the interactive loop over a readline editor with
// arrow-key and command-history support.
func runRepl(isa *insts.ISA) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "minisim> ",
		HistoryFile: filepath.Join(os.TempDir(), "minisim_history.txt"),
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	session := newReplSession(isa, os.Stdout)
	fmt.Printf("minisim %s session. Type .help for commands, exit to quit.\n", isa.Name)

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		if session.handleLine(line) {
			break
		}
	}
	return nil
}

// replSession holds one interactive machine plus its line counter.
// Dot-commands inspect or reset the machine; every other line executes
// as an instruction.
type replSession struct {
	machine *emu.Machine
	out     io.Writer
	lineNo  int
}

func newReplSession(isa *insts.ISA, out io.Writer) *replSession {
	return &replSession{
		machine: emu.NewMachine(isa),
		out:     out,
	}
}

// handleLine processes one REPL line and reports whether to quit.
func (s *replSession) handleLine(line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case line == "exit" || line == "quit":
		return true
	case strings.HasPrefix(line, "."):
		s.handleCommand(line)
		return false
	}

	if s.machine.Halted() {
		fmt.Fprintln(s.out, "machine halted; use .reset to start over")
		return false
	}

	s.lineNo++
	before := len(s.machine.Trace())

	// Errors surface through the trace, which prints either way.
	_, _ = s.machine.ExecuteLine(line, s.lineNo)

	for _, entry := range s.machine.Trace()[before:] {
		fmt.Fprintf(s.out, "  %s\n", entry)
	}
	return false
}

// handleCommand runs one dot-command.
func (s *replSession) handleCommand(line string) {
	fields := strings.Fields(line)

	switch fields[0] {
	case ".regs":
		all := len(fields) > 1 && fields[1] == "all"
		printRegisters(s.out, s.machine, all)

	case ".flags":
		printFlags(s.out, s.machine)

	case ".trace":
		for _, entry := range s.machine.Trace() {
			fmt.Fprintf(s.out, "  %s\n", entry)
		}

	case ".reset":
		s.machine.Reset()
		s.lineNo = 0
		fmt.Fprintln(s.out, "machine reset")

	case ".arch":
		if len(fields) < 2 {
			fmt.Fprintf(s.out, "usage: .arch <%s>\n", strings.Join(insts.Names(), "|"))
			return
		}
		isa, err := insts.Lookup(fields[1])
		if err != nil {
			fmt.Fprintf(s.out, "%v\n", err)
			return
		}
		s.machine = emu.NewMachine(isa)
		s.lineNo = 0
		fmt.Fprintf(s.out, "switched to %s\n", isa.Name)

	case ".help":
		s.printHelp()

	default:
		fmt.Fprintf(s.out, "unknown command %s (try .help)\n", fields[0])
	}
}

// printHelp lists the dot-commands.
func (s *replSession) printHelp() {
	fmt.Fprintln(s.out, "Enter instructions to execute them against the live machine.")
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  .regs [all]   show modified (or all) registers")
	fmt.Fprintln(s.out, "  .flags        show the condition flags")
	fmt.Fprintln(s.out, "  .trace        show the trace so far")
	fmt.Fprintln(s.out, "  .reset        reset registers, flags, and trace")
	fmt.Fprintln(s.out, "  .arch <name>  switch architecture (resets the machine)")
	fmt.Fprintln(s.out, "  .help         show this help")
	fmt.Fprintln(s.out, "  exit          leave the session")
}

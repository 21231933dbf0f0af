package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asmlab/minisim/emu"
	"github.com/asmlab/minisim/examples"
	"github.com/asmlab/minisim/insts"
	"github.com/asmlab/minisim/loader"
	"github.com/asmlab/minisim/timing"
)

// newRunCmd builds the run subcommand.
func newRunCmd() *cobra.Command {
	var (
		arch         string
		exampleName  string
		allRegisters bool
		showTiming   bool
		timingConfig string
	)

	cmd := &cobra.Command{
		Use:   "run [program.s]",
		Short: "Run an assembly program and print the trace",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			source, archName, err := resolveProgram(cmd, args, arch, exampleName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			isa, err := insts.Lookup(archName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			machine := emu.NewMachine(isa)
			result := machine.Execute(source)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Output)
			fmt.Fprintln(out)
			printRegisters(out, machine, allRegisters)
			printFlags(out, machine)

			if showTiming {
				table, err := loadTable(timingConfig)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
					os.Exit(1)
				}
				printTiming(out, machine, table)
			}

			if !result.Success {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&arch, "arch", "arm64", "Architecture to simulate (arm64 or x86-64)")
	cmd.Flags().StringVar(&exampleName, "example", "", "Run an embedded example instead of a file")
	cmd.Flags().BoolVar(&allRegisters, "all-registers", false, "Show unmodified registers too")
	cmd.Flags().BoolVar(&showTiming, "timing", false, "Print an estimated cycle report")
	cmd.Flags().StringVar(&timingConfig, "timing-config", "", "Path to timing configuration JSON file")

	return cmd
}

// resolveProgram returns the program source and the architecture to run
// it under. An explicit --arch wins over a program's arch directive.
func resolveProgram(cmd *cobra.Command, args []string, arch, exampleName string) (string, string, error) {
	if exampleName != "" {
		prog, err := examples.Find(arch, exampleName)
		if err != nil {
			return "", "", err
		}
		return prog.Source, prog.Arch, nil
	}

	if len(args) == 0 {
		return "", "", fmt.Errorf("no program given: pass a file or --example (see 'minisim examples')")
	}

	prog, err := loader.Load(args[0])
	if err != nil {
		return "", "", err
	}

	archName := arch
	if prog.ArchHint != "" && !cmd.Flags().Changed("arch") {
		archName = prog.ArchHint
	}
	return prog.Source, archName, nil
}

// loadTable builds the cost table, from a config file when one is given.
func loadTable(path string) (*timing.Table, error) {
	if path == "" {
		return timing.NewTable(), nil
	}

	config, err := timing.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return timing.NewTableWithConfig(config), nil
}

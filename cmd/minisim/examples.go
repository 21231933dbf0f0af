package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asmlab/minisim/examples"
)

// newExamplesCmd builds the examples subcommand.
func newExamplesCmd() *cobra.Command {
	var arch string

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List the embedded example programs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			progs := examples.All()
			if arch != "" {
				progs = examples.ForArch(arch)
			}

			out := cmd.OutOrStdout()
			for _, p := range progs {
				fmt.Fprintf(out, "%-8s %-10s %s\n", p.Arch, p.Name, p.Description)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run one with: minisim run --arch <arch> --example <name>")
		},
	}

	cmd.Flags().StringVar(&arch, "arch", "", "Only list examples for one architecture")
	return cmd
}

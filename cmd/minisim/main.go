// Package main provides the minisim command-line interface.
// minisim is a line-oriented instruction simulator for a reduced
// ARM64-like and a reduced x86-64-like instruction set.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minisim",
		Short: "Line-oriented instruction simulator for toy ARM64 and x86-64",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newExamplesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

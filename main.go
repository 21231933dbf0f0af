// Package main provides the entry point for minisim.
// minisim is a line-oriented instruction simulator for a reduced
// ARM64-like and a reduced x86-64-like instruction set.
//
// For the full CLI, use: go run ./cmd/minisim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("minisim - Toy ARM64 / x86-64 Instruction Simulator")
	fmt.Println("")
	fmt.Println("Usage: minisim <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run       Run an assembly program and print the trace")
	fmt.Println("  repl      Execute instructions interactively")
	fmt.Println("  examples  List the embedded example programs")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/minisim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/minisim' instead.")
	}
}

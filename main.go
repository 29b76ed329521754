// Package main provides a pointer to the tomasulo simulator's real entry
// point. tomasulo is a cycle-accurate Tomasulo out-of-order execution
// simulator.
//
// For the full CLI, use: go run ./cmd/tomasulo
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("tomasulo - Tomasulo out-of-order execution simulator")
	fmt.Println("")
	fmt.Println("Usage: tomasulo [options] <program.asm>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -mem       Path to a JSON {address: value} initial memory map")
	fmt.Println("  -cycles    Stop after this many cycles (0 = run to completion)")
	fmt.Println("  -trace     Print a one-line summary after every cycle")
	fmt.Println("  -v         Print final registers, memory, and instruction timing")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/tomasulo' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/tomasulo' instead.")
	}
}

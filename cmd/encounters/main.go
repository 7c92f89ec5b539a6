// This is the entry point for the encounters CLI.
// Build with: go build -o bin/encounters ./cmd/encounters
// Usage: encounters [--file path] <command> [options]
package main

import (
	"fmt"
	"os"
)

func main() {
	cli := NewCLI()
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command jsvm is the command-line front end for the engine: run a
// script file, drop into an interactive REPL, or run a tests
// directory (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/go-jsvm/jsvm/cmd/jsvm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

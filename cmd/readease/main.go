// Package main is the entry point for the readease CLI.
package main

import (
	"os"

	"github.com/jmylchreest/readease/cmd/readease/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

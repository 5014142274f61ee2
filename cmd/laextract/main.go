// Package main is the entry point for the laextract CLI.
package main

import (
	"os"

	"github.com/radlab-hd/laextract/cmd/laextract/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

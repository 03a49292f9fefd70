// Package main is the entry point for the formkit CLI.
package main

import (
	"os"

	"github.com/goliatone/go-formkit/cmd/formkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

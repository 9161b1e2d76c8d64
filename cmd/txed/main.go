// Package main is the entry point for the txed CLI.
package main

import (
	"os"

	"github.com/thoreinstein/txed/cmd/txed/commands"
	"github.com/thoreinstein/txed/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(errors.ExitCode(err))
	}
}

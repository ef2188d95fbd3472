// Package main is the entry point for the genai-triage CLI.
package main

import (
	"os"

	"github.com/b45t3rr/genai-triage/internal/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the rsorg CLI.
//
// The binary reorganizes a three-level Rust exercise tree into a
// snake_case module tree. All functionality lives in the internal/cli
// package, which defines the cobra commands.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process and default to development values.
package main

import (
	"github.com/mmr-tortoise/rsorg/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}

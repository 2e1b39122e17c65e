// Package main is the entry point for the convargs demo tool.
//
// The binary resolves the source and target paths of a conversion and
// reports them; it delegates all functionality to the internal/cli
// package, which defines the cobra command.
//
// Build-time variables (version, commit, date) are injected via ldflags
// during the release process. During development, they default to "dev",
// "none", and "unknown" respectively.
package main

import (
	"github.com/shinji-kodama/convargs/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
// They feed the -version output of the built-in configuration.
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

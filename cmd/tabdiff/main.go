// Package main provides the entry point for the tabdiff CLI tool.
package main

import (
	"github.com/reconlab/tabdiff/cmd/tabdiff/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}

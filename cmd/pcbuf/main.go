// Package main is the entry point for the pcbuf CLI.
//
// Usage:
//
//	pcbuf [flags] <command> [subcommand] [args]
//
// Commands:
//
//	run        - Run producers and consumers over bounded buffers
//	profile    - Manage named run profiles
//	version    - Show version information
package main

import (
	"os"

	"github.com/haivivi/pcbuf/cmd/pcbuf/commands"
	"github.com/haivivi/pcbuf/pkg/cli"
)

func main() {
	if err := commands.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}

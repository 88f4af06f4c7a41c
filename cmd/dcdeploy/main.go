// Package main is the entry point for the dcdeploy CLI.
//
// dcdeploy provisions data-center zones (physical networks, pods, clusters,
// hosts and storage) against a management server from a declarative topology
// file, records every created resource in a ledger, and removes them again
// from that ledger.
//
// Commands: deploy, remove, version.
//
// For detailed usage information, run:
//
//	dcdeploy --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/dcdeploy/cmd/dcdeploy/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package main is the entry point for the waypoint demo application.
package main

import (
	"fmt"
	"os"

	"github.com/zjrosen/waypoint/cmd"
	"github.com/zjrosen/waypoint/internal/demo"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	demo.Version = version
	demo.Commit = commit

	versionString := fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	cmd.SetVersion(versionString)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

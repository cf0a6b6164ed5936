// Package main provides the entry point for the stepline CLI.
package main

import (
	"context"
	"os"

	"github.com/stepline/stepline/internal/cli"
)

// Build information set via ldflags.
var (
	version string //nolint:gochecknoglobals // Set at build time
	commit  string //nolint:gochecknoglobals // Set at build time
	date    string //nolint:gochecknoglobals // Set at build time
)

func main() {
	ctx := context.Background()
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(ctx, info); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}

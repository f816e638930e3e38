package main

import (
	"os"

	"github.com/savoirfairelinux/test-report-pdf/cli"
)

// Version information, set by goreleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	c := cli.New()
	c.SetVersion(version, commit, date)
	// Errors are logged by the commands themselves
	if err := c.Run(os.Args); err != nil {
		os.Exit(cli.ExitCodeOf(err))
	}
}

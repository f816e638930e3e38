package cli

// This file contains the list command for displaying the test suites found
// in the include directory.

import (
	"fmt"

	"github.com/savoirfairelinux/test-report-pdf/collect"
	"github.com/savoirfairelinux/test-report-pdf/model"
	"github.com/urfave/cli/v2"
)

func (a *App) list(ctx *cli.Context) error {
	onlyFailed := ctx.Bool("failed")

	inputs, err := collect.Find(a.logger, stringFlag(ctx, "include-dir"))
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to find result files")
		return exitWith(ExitFatal, err)
	}

	entries, err := collect.LoadEntries(a.logger, inputs)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to load result files")
		return exitWith(ExitFatal, err)
	}

	total := 0
	for _, entry := range entries {
		total += len(entry.Suites)
	}

	fmt.Fprintf(a.out, "\n=== Suites (%d total in %d file(s)) ===\n\n", total, len(entries))

	shown := 0
	for _, entry := range entries {
		for _, suite := range entry.Suites {
			if onlyFailed && suite.Failures == 0 {
				continue
			}
			a.printSuite(suite, entry.FullPath)
			shown++
		}
	}

	if shown == 0 && onlyFailed {
		fmt.Fprintln(a.out, "No suites with failures found")
	}

	if len(inputs.Documents) > 0 {
		fmt.Fprintf(a.out, "Additional documents:\n")
		for _, doc := range inputs.Documents {
			fmt.Fprintf(a.out, "   %s\n", doc)
		}
		fmt.Fprintln(a.out)
	}

	return nil
}

func (a *App) printSuite(suite model.Suite, path string) {
	// Determine status indicator
	status := "✓"
	if suite.Failures > 0 {
		status = "✗"
	}

	fmt.Fprintf(a.out, "%s  %s  [%d tests, %d passed, %d failed, %d skipped]\n",
		status, suite.Name, suite.Tests, suite.Passed(), suite.Failures, suite.Skipped)
	if machine := suite.Machine(); machine != "" {
		fmt.Fprintf(a.out, "   Machine: %s\n", machine)
	}
	fmt.Fprintf(a.out, "   %s\n", path)
	fmt.Fprintln(a.out)
}

package cli

// This file contains the check command for printing compliance matrices
// to the terminal.

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/savoirfairelinux/test-report-pdf/report"
	"github.com/urfave/cli/v2"
)

func verdictColor(v report.Verdict) *color.Color {
	switch v {
	case report.VerdictPass:
		return color.New(color.FgGreen)
	case report.VerdictFail:
		return color.New(color.FgRed)
	case report.VerdictSkipped:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgMagenta)
}

func (a *App) check(ctx *cli.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("Invalid configuration")
		return exitWith(ExitFatal, err)
	}
	if len(cfg.Matrices) == 0 {
		err := fmt.Errorf("no compliance matrix specified (use --compliance-matrix)")
		a.logger.Error().Err(err).Msg("Nothing to check")
		return exitWith(ExitFatal, err)
	}

	_, doc, err := a.buildDocument(cfg)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to build compliance matrices")
		return exitWith(ExitFatal, err)
	}

	for _, m := range doc.Matrices {
		a.printMatrix(m)
	}

	if doc.Incomplete {
		err := incompleteError(doc)
		a.logger.Error().Err(err).Msg("Compliance check failed")
		return exitWith(ExitIncomplete, err)
	}
	return nil
}

func (a *App) printMatrix(m report.Matrix) {
	fmt.Fprintf(a.out, "\n=== %s ===\n\n", m.Title)

	for _, row := range m.Rows {
		if row.Span > 0 {
			fmt.Fprintf(a.out, "%s\n", row.Requirement)
		}
		fmt.Fprintf(a.out, "   %-20s %s\n", row.TestID, verdictColor(row.Verdict).Sprint(row.Verdict.Label()))
	}

	counts := m.Counts()
	fmt.Fprintf(a.out, "\n%d mapping(s): %d pass, %d fail, %d skipped, %d absent\n",
		len(m.Rows),
		counts[report.VerdictPass],
		counts[report.VerdictFail],
		counts[report.VerdictSkipped],
		counts[report.VerdictAbsent])
}

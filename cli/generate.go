package cli

// This file contains the generate command: assembling the report document
// from the include directory and rendering it.

import (
	"errors"
	"fmt"

	"github.com/savoirfairelinux/test-report-pdf/collect"
	"github.com/savoirfairelinux/test-report-pdf/config"
	"github.com/savoirfairelinux/test-report-pdf/report"
	"github.com/savoirfairelinux/test-report-pdf/requirements"
	"github.com/urfave/cli/v2"
)

func (a *App) loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()

	if dir := stringFlag(ctx, "include-dir"); dir != "" {
		cfg.IncludeDir = dir
	}
	cfg.SplitTestID = boolFlag(ctx, "split-test-id")
	cfg.MachineName = boolFlag(ctx, "machine-name")
	cfg.AllowAbsent = boolFlag(ctx, "allow-absent")
	cfg.Matrices = stringSliceFlag(ctx, "compliance-matrix")

	// Metadata precedence: defaults, then config file, then flags
	if path := stringFlag(ctx, "config"); path != "" {
		fileMeta, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Metadata = cfg.Metadata.Merge(fileMeta)
		a.logger.Debug().Str("path", path).Msg("Loaded config file")
	}
	cfg.Metadata = cfg.Metadata.Merge(config.Metadata{
		Title:     stringFlag(ctx, "title"),
		Author:    stringFlag(ctx, "author"),
		Project:   stringFlag(ctx, "project"),
		Contact:   stringFlag(ctx, "contact"),
		Theme:     stringFlag(ctx, "theme"),
		ThemesDir: stringFlag(ctx, "themes-dir"),
		Output:    stringFlag(ctx, "output"),
		Renderer:  stringFlag(ctx, "renderer"),
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildDocument reads every input and computes the document. Nothing is
// written when an error is returned.
func (a *App) buildDocument(cfg config.Config) (*report.Assembler, *report.Document, error) {
	inputs, err := collect.Find(a.logger, cfg.IncludeDir)
	if err != nil {
		return nil, nil, err
	}

	entries, err := collect.LoadEntries(a.logger, inputs)
	if err != nil {
		return nil, nil, err
	}
	suites := collect.Suites(entries)

	lists := make([]requirements.List, 0, len(cfg.Matrices))
	for _, path := range cfg.Matrices {
		list, err := requirements.Load(path)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Debug().
			Str("path", path).
			Int("entries", len(list.Entries)).
			Msg("Loaded requirement list")
		lists = append(lists, list)
	}

	a.logger.Info().
		Int("files", len(inputs.ResultFiles)).
		Int("suites", len(suites)).
		Int("documents", len(inputs.Documents)).
		Int("matrices", len(lists)).
		Msg("Inputs loaded")

	asm := report.NewAssembler(a.logger, cfg.ReportOptions(inputs.Documents))
	doc, err := asm.Build(suites, lists)
	if err != nil {
		return nil, nil, err
	}
	return asm, doc, nil
}

func (a *App) generate(ctx *cli.Context) error {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		a.logger.Error().Err(err).Msg("Invalid configuration")
		return exitWith(ExitFatal, err)
	}

	asm, doc, err := a.buildDocument(cfg)
	if err != nil {
		a.logger.Error().Err(err).Msg("Failed to build report")
		return exitWith(ExitFatal, err)
	}

	renderer := a.newRenderer(a.logger, cfg.RenderOptions())
	if err := asm.Generate(ctx.Context, doc, "", renderer); err != nil {
		a.logger.Error().Err(err).Msg("Failed to generate report")
		if errors.Is(err, report.ErrRender) {
			return exitWith(ExitRender, err)
		}
		return exitWith(ExitFatal, err)
	}

	if doc.Incomplete {
		err := incompleteError(doc)
		a.logger.Error().Err(err).Str("output", cfg.Metadata.Output).Msg("Test report generated with an incomplete compliance proof")
		return exitWith(ExitIncomplete, err)
	}

	a.logger.Info().Str("output", cfg.Metadata.Output).Msg("Test report generated")
	return nil
}

func incompleteError(doc *report.Document) error {
	return fmt.Errorf("compliance proof is incomplete: %d requirement mapping(s) reference tests that never ran (use --allow-absent to accept)", doc.Absent())
}

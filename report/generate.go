package report

// This file contains the final step of report generation: writing the
// intermediate document and handing it to the external renderer.

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrRender is returned when the external renderer fails.
var ErrRender = errors.New("renderer failed")

// Renderer converts an AsciiDoc file into the final report.
type Renderer interface {
	Render(ctx context.Context, input string) error
}

// Generate writes doc to a temporary AsciiDoc file in dir (the default
// temporary directory when empty), renders it and removes the file on every
// path.
func (a *Assembler) Generate(ctx context.Context, doc *Document, dir string, renderer Renderer) error {
	f, err := os.CreateTemp(dir, "test-report-*.adoc")
	if err != nil {
		return fmt.Errorf("failed to create intermediate document: %w", err)
	}
	path := f.Name()

	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			a.logger.Warn().Err(rmErr).Str("path", path).Msg("Failed to remove intermediate document")
		} else {
			a.logger.Debug().Str("path", path).Msg("Intermediate document removed")
		}
	}()

	_, writeErr := doc.WriteTo(f)
	if closeErr := f.Close(); writeErr == nil && closeErr != nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write intermediate document: %w", writeErr)
	}

	a.logger.Debug().Str("path", path).Msg("Intermediate document written")

	if err := renderer.Render(ctx, path); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	return nil
}

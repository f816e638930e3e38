package render

// asciidoctor.go contains utilities for building and running the
// asciidoctor-pdf command that turns the AsciiDoc report into a PDF.

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
)

// DefaultBinary is the renderer executable used when none is configured.
const DefaultBinary = "asciidoctor-pdf"

// Options contains options for the asciidoctor-pdf command.
type Options struct {
	Binary     string            // Renderer executable
	Output     string            // Output file (-o)
	Theme      string            // PDF theme name
	ThemesDir  string            // Directory holding PDF themes
	Attributes map[string]string // Document attributes passed verbatim (author, project, ...)
}

// BuildArgs builds asciidoctor-pdf command arguments for the given input.
func BuildArgs(opts Options, input string) []string {
	var args []string

	if opts.Theme != "" {
		args = append(args, "-a", "pdf-theme="+opts.Theme)
	}
	if opts.ThemesDir != "" {
		args = append(args, "-a", "pdf-themesdir="+opts.ThemesDir)
	}

	// Sorted for a stable command line
	names := make([]string, 0, len(opts.Attributes))
	for name := range opts.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := opts.Attributes[name]
		if value == "" {
			continue
		}
		args = append(args, "-a", name+"="+value)
	}

	if opts.Output != "" {
		args = append(args, "-o", opts.Output)
	}

	args = append(args, input)
	return args
}

// BuildCommand builds the command string for display.
// It reuses BuildArgs and joins the arguments with proper shell escaping.
func BuildCommand(opts Options, input string) string {
	args := BuildArgs(opts, input)

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellescape.Quote(binary(opts)))

	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}

	return strings.Join(parts, " ")
}

func binary(opts Options) string {
	if opts.Binary == "" {
		return DefaultBinary
	}
	return opts.Binary
}

// Asciidoctor renders documents by running asciidoctor-pdf.
type Asciidoctor struct {
	logger zerolog.Logger
	opts   Options
}

// New creates a renderer with the given options.
func New(logger zerolog.Logger, opts Options) *Asciidoctor {
	return &Asciidoctor{
		logger: logger,
		opts:   opts,
	}
}

// Render runs the renderer on input and waits for it to complete. A
// non-zero exit status is returned as an error.
func (a *Asciidoctor) Render(ctx context.Context, input string) error {
	cmd := exec.CommandContext(ctx, binary(a.opts), BuildArgs(a.opts, input)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.logger.Info().
		Str("command", BuildCommand(a.opts, input)).
		Msg("Rendering report")

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s exited with code %d: %s", binary(a.opts), exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("failed to run %s: %w", binary(a.opts), err)
	}

	// asciidoctor-pdf reports problems as warnings on stderr
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		a.logger.Warn().Str("output", msg).Msg("Renderer reported warnings")
	}
	if msg := strings.TrimSpace(stdout.String()); msg != "" {
		a.logger.Debug().Str("output", msg).Msg("Renderer output")
	}

	a.logger.Info().Str("output", a.opts.Output).Msg("Report rendered")
	return nil
}

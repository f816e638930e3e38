package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/savoirfairelinux/test-report-pdf/config"
	"github.com/savoirfairelinux/test-report-pdf/render"
	"github.com/savoirfairelinux/test-report-pdf/report"
	"github.com/urfave/cli/v2"
)

const AppName = "test-report-pdf"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
	out    io.Writer

	// newRenderer creates the external renderer for generate
	newRenderer func(logger zerolog.Logger, opts render.Options) report.Renderer
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		out:    os.Stdout,
		newRenderer: func(logger zerolog.Logger, opts render.Options) report.Renderer {
			return render.New(logger, opts)
		},
	}

	app.cli = &cli.App{
		Name:  AppName,
		Usage: "Generate a PDF test report and compliance matrix from JUnit results",
		Description: `All .xml files found in the include directory are integrated in the
test report. One table is created for each test suite, with every test one
after another. Additional .adoc files found in the include directory are
included before the test results.

A machine name can be shown in the table titles using the test classname
(--machine-name). Compliance matrices link requirements to the tests
validating them; the test id comes either from the test name formatted as
"ID - test name" (--split-test-id) or from the cukinia.id property.`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
		}, generateFlags()...),
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		// Exit codes are handled by main
		ExitErrHandler: func(*cli.Context, error) {},
		// Default action when no command is specified
		Action: app.generate,
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "generate",
		Usage:  "Generate the PDF test report (default)",
		Action: app.generate,
		Flags:  generateFlags(),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "check",
		Usage:  "Print the compliance matrices without generating a report",
		Action: app.check,
		Flags:  inputFlags(),
		Description: `Check computes the compliance matrices exactly like generate and prints
them. It exits with the same code generate would for a complete or
incomplete compliance proof, without writing or rendering any document.`,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List the test suites found in the include directory",
		Action: app.list,
		Flags: []cli.Flag{
			includeDirFlag(),
			&cli.BoolFlag{
				Name:  "failed",
				Usage: "Only list suites with failures",
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		short := commit
		if len(short) > 8 {
			short = short[:8]
		}
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, short, date)
	}
}

func includeDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "include-dir",
		Aliases: []string{"i"},
		Usage:   "Source directory for .xml result files and additional .adoc files",
		Value:   config.DefaultIncludeDir,
	}
}

// inputFlags returns the flags selecting and interpreting the inputs.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		includeDirFlag(),
		&cli.BoolFlag{
			Name:    "split-test-id",
			Aliases: []string{"s"},
			Usage:   `Split test name and ID. Test names must be formatted as "ID - test name"`,
		},
		&cli.BoolFlag{
			Name:    "machine-name",
			Aliases: []string{"m"},
			Usage:   "Show the machine name in table titles and build one compliance matrix per machine",
		},
		&cli.BoolFlag{
			Name:  "allow-absent",
			Usage: "Do not fail when a compliance matrix references a test that never ran",
		},
		&cli.StringSliceFlag{
			Name:    "compliance-matrix",
			Aliases: []string{"c"},
			Usage:   "Add the compliance matrix specified in the CSV file (can be specified multiple times)",
		},
	}
}

// generateFlags returns the input flags plus the rendering metadata flags.
func generateFlags() []cli.Flag {
	return append(inputFlags(),
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML file holding the report metadata (title, author, project, contact, theme, ...)",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Report title",
		},
		&cli.StringFlag{
			Name:  "author",
			Usage: "Report author",
		},
		&cli.StringFlag{
			Name:  "project",
			Usage: "Project name",
		},
		&cli.StringFlag{
			Name:  "contact",
			Usage: "Contact shown in the report",
		},
		&cli.StringFlag{
			Name:  "theme",
			Usage: "PDF theme name",
		},
		&cli.StringFlag{
			Name:  "themes-dir",
			Usage: "Directory holding PDF themes",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output PDF file (default: " + config.DefaultOutput + ")",
		},
		&cli.StringFlag{
			Name:  "renderer",
			Usage: "Renderer executable (default: " + render.DefaultBinary + ")",
		},
	)
}

// flagContext returns the innermost context where name was given on the
// command line. Input flags are accepted both before and after the command
// name, and a flag set on the command wins over the same flag set globally.
// When name was given nowhere, ctx is returned so the command's default
// applies.
func flagContext(ctx *cli.Context, name string) *cli.Context {
	for _, c := range ctx.Lineage() {
		if c.Command != nil && c.IsSet(name) {
			return c
		}
	}
	return ctx
}

func stringFlag(ctx *cli.Context, name string) string {
	return flagContext(ctx, name).String(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	return flagContext(ctx, name).Bool(name)
}

// stringSliceFlag collects the values of a repeatable flag from every level,
// global values first.
func stringSliceFlag(ctx *cli.Context, name string) []string {
	lineage := ctx.Lineage()
	var values []string
	for i := len(lineage) - 1; i >= 0; i-- {
		c := lineage[i]
		if c.Command != nil && c.IsSet(name) {
			values = append(values, c.StringSlice(name)...)
		}
	}
	return values
}

// Package config holds the configuration of a report run. Rendering metadata
// may come from a YAML file; command-line flags take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/savoirfairelinux/test-report-pdf/render"
	"github.com/savoirfairelinux/test-report-pdf/report"
	"gopkg.in/yaml.v3"
)

// Constants for default values.
const (
	DefaultIncludeDir = "example"
	DefaultOutput     = "test-report.pdf"
)

// Metadata is passed to the renderer and never interpreted.
type Metadata struct {
	Title     string `yaml:"title,omitempty"`
	Author    string `yaml:"author,omitempty"`
	Project   string `yaml:"project,omitempty"`
	Contact   string `yaml:"contact,omitempty"`
	Theme     string `yaml:"theme,omitempty"`
	ThemesDir string `yaml:"themes_dir,omitempty"`
	Output    string `yaml:"output,omitempty"`
	Renderer  string `yaml:"renderer,omitempty"`
}

// Merge returns m with every non-empty field of over applied on top.
func (m Metadata) Merge(over Metadata) Metadata {
	pick := func(base, override string) string {
		if override != "" {
			return override
		}
		return base
	}
	return Metadata{
		Title:     pick(m.Title, over.Title),
		Author:    pick(m.Author, over.Author),
		Project:   pick(m.Project, over.Project),
		Contact:   pick(m.Contact, over.Contact),
		Theme:     pick(m.Theme, over.Theme),
		ThemesDir: pick(m.ThemesDir, over.ThemesDir),
		Output:    pick(m.Output, over.Output),
		Renderer:  pick(m.Renderer, over.Renderer),
	}
}

// LoadFile reads metadata from a YAML file. Unknown keys are rejected and an
// empty file yields empty metadata.
func LoadFile(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var m Metadata
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Metadata{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return m, nil
}

// Config is the configuration of one report run.
type Config struct {
	// Directory holding result files and additional documents
	IncludeDir string
	// Split test names formatted as "ID - name"
	SplitTestID bool
	// Show machine names and build one matrix per machine
	MachineName bool
	// Do not fail on tests referenced by a matrix that never ran
	AllowAbsent bool
	// Requirement list files, one compliance matrix each
	Matrices []string
	// Rendering metadata
	Metadata Metadata
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		IncludeDir: DefaultIncludeDir,
		Metadata: Metadata{
			Title:    report.DefaultTitle,
			Output:   DefaultOutput,
			Renderer: render.DefaultBinary,
		},
	}
}

// Validate checks the configuration before any input is read.
func (c Config) Validate() error {
	if c.IncludeDir == "" {
		return fmt.Errorf("no include directory specified")
	}
	if c.Metadata.Output == "" {
		return fmt.Errorf("no output file specified")
	}
	for _, path := range c.Matrices {
		if path == "" {
			return fmt.Errorf("empty compliance matrix path")
		}
	}
	return nil
}

// ReportOptions derives the document assembly options.
func (c Config) ReportOptions(includes []string) report.Options {
	mode := report.IDFromProperty
	if c.SplitTestID {
		mode = report.IDFromName
	}
	return report.Options{
		IDMode:      mode,
		ShowMachine: c.MachineName,
		AllowAbsent: c.AllowAbsent,
		Title:       c.Metadata.Title,
		Includes:    includes,
	}
}

// RenderOptions derives the renderer options.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		Binary:    c.Metadata.Renderer,
		Output:    c.Metadata.Output,
		Theme:     c.Metadata.Theme,
		ThemesDir: c.Metadata.ThemesDir,
		Attributes: map[string]string{
			"author":  c.Metadata.Author,
			"project": c.Metadata.Project,
			"contact": c.Metadata.Contact,
		},
	}
}

package collect

// This file contains input discovery for locating result files and
// additional documents in the include directory and loading their suites.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/savoirfairelinux/test-report-pdf/junit"
	"github.com/savoirfairelinux/test-report-pdf/model"
)

const (
	resultPattern   = "**/*.xml"
	documentPattern = "**/*.adoc"
)

// ErrNoResultFiles is returned when the include directory holds no result file.
var ErrNoResultFiles = errors.New("no result files found")

// Inputs lists the files found in an include directory.
type Inputs struct {
	// Absolute path of the include directory
	Dir string
	// Absolute paths of the JUnit result files, sorted
	ResultFiles []string
	// Absolute paths of additional AsciiDoc documents, sorted
	Documents []string
}

// Entry holds the suites parsed from one result file.
type Entry struct {
	Suites   []model.Suite
	FullPath string
}

// Find locates result files and additional documents under dir.
func Find(logger zerolog.Logger, dir string) (Inputs, error) {
	if dir == "" {
		return Inputs{}, fmt.Errorf("no include directory specified")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Inputs{}, fmt.Errorf("failed to resolve include directory: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return Inputs{}, fmt.Errorf("include directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return Inputs{}, fmt.Errorf("include directory %s is not a directory", dir)
	}

	fsys := os.DirFS(absDir)

	results, err := glob(fsys, absDir, resultPattern)
	if err != nil {
		return Inputs{}, err
	}
	if len(results) == 0 {
		return Inputs{}, fmt.Errorf("%w in %s", ErrNoResultFiles, dir)
	}

	documents, err := glob(fsys, absDir, documentPattern)
	if err != nil {
		return Inputs{}, err
	}

	logger.Debug().
		Str("dir", absDir).
		Int("results", len(results)).
		Int("documents", len(documents)).
		Msg("Found input files")

	return Inputs{
		Dir:         absDir,
		ResultFiles: results,
		Documents:   documents,
	}, nil
}

func glob(fsys fs.FS, dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for %s: %w", dir, pattern, err)
	}

	sort.Strings(matches)

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return paths, nil
}

// LoadEntries parses every result file, in order.
func LoadEntries(logger zerolog.Logger, inputs Inputs) ([]Entry, error) {
	parser := junit.New()

	entries := make([]Entry, 0, len(inputs.ResultFiles))
	for _, path := range inputs.ResultFiles {
		suites, err := parser.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse result file: %w", err)
		}

		if len(suites) == 0 {
			logger.Warn().Str("path", path).Msg("Result file contains no test case")
		}

		entries = append(entries, Entry{
			Suites:   suites,
			FullPath: path,
		})
	}

	return entries, nil
}

// Suites flattens entries into a single ordered list of suites.
func Suites(entries []Entry) []model.Suite {
	var suites []model.Suite
	for _, e := range entries {
		suites = append(suites, e.Suites...)
	}
	return suites
}

package report

// This file contains document assembly: resolving test names, building the
// suite tables and the compliance matrices in a fixed order.

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/savoirfairelinux/test-report-pdf/model"
	"github.com/savoirfairelinux/test-report-pdf/requirements"
)

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "Test report"

// Options controls document assembly.
type Options struct {
	// Where test ids come from
	IDMode IDMode
	// Show machine names in table titles and partition matrices per machine
	ShowMachine bool
	// Do not fail when a requirement's test never ran
	AllowAbsent bool
	// Document title
	Title string
	// Additional AsciiDoc documents included before the results
	Includes []string
}

// Document is a fully computed report, ready to be written.
type Document struct {
	Title    string
	Includes []string
	Tables   []Table
	Matrices []Matrix
	// Incomplete is set when a matrix lists an absent test and absence is
	// not allowed
	Incomplete bool
}

// Absent returns the total number of absent rows over all matrices.
func (d *Document) Absent() int {
	n := 0
	for _, m := range d.Matrices {
		n += m.Absent()
	}
	return n
}

// WriteTo writes the document as AsciiDoc.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "document", d); err != nil {
		return 0, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.WriteTo(w)
}

// Assembler builds documents from suites and requirement lists.
type Assembler struct {
	logger zerolog.Logger
	opts   Options
}

// NewAssembler creates an assembler with the given options.
func NewAssembler(logger zerolog.Logger, opts Options) *Assembler {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	return &Assembler{
		logger: logger,
		opts:   opts,
	}
}

// Build computes the tables of every suite, in input order, then one matrix
// per requirement list (and per machine when machine names are shown). No
// output is produced when an error is returned.
func (a *Assembler) Build(suites []model.Suite, lists []requirements.List) (*Document, error) {
	resolved, err := ResolveSuites(suites, a.opts.IDMode)
	if err != nil {
		return nil, err
	}

	if len(lists) > 0 && !anyID(resolved) {
		return nil, fmt.Errorf("compliance matrix requested: %w (use \"ID - name\" test names or the %s property)", ErrNoIDs, IDProperty)
	}

	doc := &Document{
		Title:    a.opts.Title,
		Includes: a.opts.Includes,
	}

	anchors := NewAnchorRegistry(a.opts.ShowMachine)

	for _, s := range resolved {
		opts := TableOptions{
			ShowID:      a.opts.IDMode == IDFromName || s.HasIDs(),
			ShowMachine: a.opts.ShowMachine,
		}
		doc.Tables = append(doc.Tables, BuildTable(s, opts, anchors))
	}

	a.logger.Debug().
		Int("tables", len(doc.Tables)).
		Int("anchors", anchors.Len()).
		Msg("Built suite tables")

	var machines []string
	if a.opts.ShowMachine {
		machines = Machines(resolved)
	}

	for _, list := range lists {
		if len(machines) == 0 {
			doc.Matrices = append(doc.Matrices, BuildMatrix(list.Name, list.Entries, resolved, MatrixScope{}, anchors))
			continue
		}
		for _, machine := range machines {
			scope := MatrixScope{Machine: machine, Partitioned: true}
			title := fmt.Sprintf("%s for %s", list.Name, machine)
			doc.Matrices = append(doc.Matrices, BuildMatrix(title, list.Entries, resolved, scope, anchors))
		}
	}

	for _, m := range doc.Matrices {
		absent := m.Absent()
		if absent == 0 {
			continue
		}
		a.logger.Warn().
			Str("matrix", m.Title).
			Int("absent", absent).
			Bool("allowed", a.opts.AllowAbsent).
			Msg("Compliance matrix references tests that never ran")
		if !a.opts.AllowAbsent {
			doc.Incomplete = true
		}
	}

	return doc, nil
}

func anyID(suites []ResolvedSuite) bool {
	for _, s := range suites {
		if s.HasIDs() {
			return true
		}
	}
	return false
}

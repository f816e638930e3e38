package report

import "strings"

// TableOptions controls the columns of a suite table.
type TableOptions struct {
	// ShowID adds a test id column holding the cross-reference anchors
	ShowID bool
	// ShowMachine appends the machine name to the table title
	ShowMachine bool
}

// Row is one test of a suite table.
type Row struct {
	// Anchor defined by this row, empty when already defined elsewhere
	Anchor string
	// Test id, empty when the test has none
	ID string
	// Display name
	Name    string
	Verdict Verdict
}

// Table is the display table of one suite.
type Table struct {
	Title   string
	Machine string
	ShowID  bool
	Rows    []Row
	// Totals restated in the table footer
	Tests    int
	Failures int
	Skipped  int
}

// Columns returns the column headers of the table.
func (t Table) Columns() []string {
	if t.ShowID {
		return []string{"ID", "Test", "Result"}
	}
	return []string{"Test", "Result"}
}

// ColumnSpec returns the relative column widths.
func (t Table) ColumnSpec() string {
	if t.ShowID {
		return "2,6,1"
	}
	return "6,1"
}

// BuildTable turns a suite into its display table. Anchors for the id column
// are taken from anchors, so each key is defined only once per document.
func BuildTable(suite ResolvedSuite, opts TableOptions, anchors *AnchorRegistry) Table {
	table := Table{
		Title:    suite.Name,
		ShowID:   opts.ShowID,
		Rows:     make([]Row, 0, len(suite.Records)),
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Skipped:  suite.Skipped,
	}

	if opts.ShowMachine {
		table.Machine = suite.Machine()
		if table.Machine != "" {
			table.Title += " for " + table.Machine
		}
	}

	for _, r := range suite.Records {
		row := Row{
			Name:    r.Resolved.Text(),
			Verdict: VerdictOf(r.Status),
		}
		if opts.ShowID {
			if id, ok := r.ID(); ok {
				row.ID = id
				if anchor, first := anchors.AnchorFor(r.Classname, id); first {
					row.Anchor = anchor
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// EscapeCell escapes the table cell delimiter, the only character that
// cannot appear verbatim in a cell.
func EscapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

package report

import "github.com/savoirfairelinux/test-report-pdf/model"

// MatrixRow is one requirement/test id pair of a compliance matrix.
type MatrixRow struct {
	// Requirement text, set on the first row of a span only
	Requirement string
	// Number of rows spanned by the requirement cell; zero on the rows
	// covered by a previous span
	Span   int
	TestID string
	// Anchor of the table row defining the test, empty when not defined
	Anchor  string
	Verdict Verdict
}

// Matrix is one compliance matrix.
type Matrix struct {
	Title string
	// Machine the verdicts are restricted to, empty when not partitioned
	Machine string
	Rows    []MatrixRow
}

// Absent returns the number of rows whose test never ran.
func (m Matrix) Absent() int {
	n := 0
	for _, r := range m.Rows {
		if r.Verdict == VerdictAbsent {
			n++
		}
	}
	return n
}

// Counts returns the number of rows per verdict.
func (m Matrix) Counts() map[Verdict]int {
	counts := make(map[Verdict]int)
	for _, r := range m.Rows {
		counts[r.Verdict]++
	}
	return counts
}

// MatrixScope restricts which records a matrix looks at.
type MatrixScope struct {
	// Restrict verdicts to records of this machine
	Machine string
	// Partitioned is true when Machine applies
	Partitioned bool
}

// BuildMatrix joins sorted requirement entries against the resolved suites.
// Consecutive entries sharing a requirement are grouped under one spanning
// cell.
func BuildMatrix(title string, entries []model.RequirementEntry, suites []ResolvedSuite, scope MatrixScope, anchors *AnchorRegistry) Matrix {
	matrix := Matrix{
		Title: title,
		Rows:  make([]MatrixRow, 0, len(entries)),
	}
	if scope.Partitioned {
		matrix.Machine = scope.Machine
	}

	index := indexVerdicts(suites, scope)

	for i := 0; i < len(entries); {
		span := 1
		for i+span < len(entries) && entries[i+span].Requirement == entries[i].Requirement {
			span++
		}

		for j := i; j < i+span; j++ {
			entry := entries[j]
			row := MatrixRow{
				TestID:  entry.TestID,
				Verdict: index.verdict(entry.TestID),
			}
			if j == i {
				row.Requirement = entry.Requirement
				row.Span = span
			}
			if anchor, ok := anchors.Lookup(scope.Machine, entry.TestID); ok {
				row.Anchor = anchor
			}
			matrix.Rows = append(matrix.Rows, row)
		}

		i += span
	}

	return matrix
}

// verdictFold accumulates the records sharing a test id. Once failed, a test
// stays failed; skipped only holds when nothing failed.
type verdictFold struct {
	failed  bool
	skipped bool
}

func (f *verdictFold) add(s model.Status) {
	switch s {
	case model.StatusFailed:
		f.failed = true
	case model.StatusSkipped:
		f.skipped = true
	}
}

func (f *verdictFold) verdict() Verdict {
	switch {
	case f.failed:
		return VerdictFail
	case f.skipped:
		return VerdictSkipped
	}
	return VerdictPass
}

type verdictIndex map[string]*verdictFold

func indexVerdicts(suites []ResolvedSuite, scope MatrixScope) verdictIndex {
	index := make(verdictIndex)
	for _, s := range suites {
		for _, r := range s.Records {
			if scope.Partitioned && r.Classname != scope.Machine {
				continue
			}
			id, ok := r.ID()
			if !ok {
				continue
			}
			fold, ok := index[id]
			if !ok {
				fold = &verdictFold{}
				index[id] = fold
			}
			fold.add(r.Status)
		}
	}
	return index
}

func (idx verdictIndex) verdict(testID string) Verdict {
	fold, ok := idx[testID]
	if !ok {
		return VerdictAbsent
	}
	return fold.verdict()
}

// Classify returns the verdict of a test id over the given suites.
func Classify(suites []ResolvedSuite, testID string, scope MatrixScope) Verdict {
	return indexVerdicts(suites, scope).verdict(testID)
}

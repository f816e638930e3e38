package model

// Status is the outcome of a single executed check.
type Status uint8

const (
	StatusPassed Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// TestRecord represents one executed check as reported in a result file.
type TestRecord struct {
	// Display name, e.g. "REQ1 - check power" or "check power"
	Name string
	// Reporting machine or origin of the check
	Classname string
	// Outcome of the check
	Status Status
	// Properties attached to the check (e.g. "cukinia.id")
	Properties map[string]string
}

// Property returns the value of a named property, if present.
func (r TestRecord) Property(name string) (string, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Suite is a named, ordered group of test records.
type Suite struct {
	// Suite name as reported by the test runner
	Name string
	// Records in reporting order
	Records []TestRecord
	// Aggregate counters, always derived from Records
	Tests    int
	Failures int
	Skipped  int
}

// NewSuite creates a suite and computes its counters from the records.
func NewSuite(name string, records []TestRecord) Suite {
	s := Suite{
		Name:    name,
		Records: records,
		Tests:   len(records),
	}
	for _, r := range records {
		switch r.Status {
		case StatusFailed:
			s.Failures++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// Passed returns the number of records that passed.
func (s Suite) Passed() int {
	return s.Tests - s.Failures - s.Skipped
}

// Machine returns the classname of the first record. Suites mixing several
// machines are labelled after their first record only.
func (s Suite) Machine() string {
	if len(s.Records) == 0 {
		return ""
	}
	return s.Records[0].Classname
}

// RequirementEntry links a requirement to the id of a test validating it.
type RequirementEntry struct {
	Requirement string
	TestID      string
}

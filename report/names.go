package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/savoirfairelinux/test-report-pdf/model"
)

// IDProperty is the test case property carrying the test id.
const IDProperty = "cukinia.id"

const nameSeparator = " - "

var (
	// ErrMissingSeparator is returned when a test name cannot be split into
	// an id and a description.
	ErrMissingSeparator = errors.New("test name is not formatted as \"ID - description\"")
	// ErrNoIDs is returned when a compliance matrix is requested but no test
	// carries an id.
	ErrNoIDs = errors.New("no test id found in any result")
)

// IDMode selects where the test id of a record comes from.
type IDMode uint8

const (
	// IDFromProperty reads the id from the cukinia.id property, if any.
	IDFromProperty IDMode = iota
	// IDFromName splits names formatted as "ID - description".
	IDFromName
)

func (m IDMode) String() string {
	switch m {
	case IDFromProperty:
		return "property"
	case IDFromName:
		return "split-name"
	}
	return "unknown"
}

// Name is the resolved display name of a record: either WithID or Bare.
type Name interface {
	// Text is the human readable part of the name.
	Text() string
	isName()
}

// WithID is a name linked to a test id.
type WithID struct {
	ID          string
	Description string
}

func (n WithID) Text() string { return n.Description }
func (WithID) isName()        {}

// Bare is a name without any test id.
type Bare struct {
	Description string
}

func (n Bare) Text() string { return n.Description }
func (Bare) isName()        {}

// IDOf returns the test id carried by n, if any.
func IDOf(n Name) (string, bool) {
	if w, ok := n.(WithID); ok {
		return w.ID, true
	}
	return "", false
}

// ResolveName resolves the display name and test id of a record.
func ResolveName(r model.TestRecord, mode IDMode) (Name, error) {
	switch mode {
	case IDFromName:
		idx := strings.Index(r.Name, nameSeparator)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingSeparator, r.Name)
		}
		id := strings.TrimSpace(r.Name[:idx])
		if id == "" {
			return nil, fmt.Errorf("%w: %q has an empty id", ErrMissingSeparator, r.Name)
		}
		return WithID{
			ID:          id,
			Description: strings.TrimSpace(r.Name[idx+len(nameSeparator):]),
		}, nil
	case IDFromProperty:
		if id, ok := r.Property(IDProperty); ok && strings.TrimSpace(id) != "" {
			return WithID{ID: strings.TrimSpace(id), Description: r.Name}, nil
		}
		return Bare{Description: r.Name}, nil
	}
	return nil, fmt.Errorf("unknown id mode %d", mode)
}

// Record is a test record with its resolved name.
type Record struct {
	model.TestRecord
	Resolved Name
}

// ID returns the test id of the record, if any.
func (r Record) ID() (string, bool) {
	return IDOf(r.Resolved)
}

// ResolvedSuite is a suite whose records have resolved names.
type ResolvedSuite struct {
	model.Suite
	Records []Record
}

// HasIDs reports whether at least one record of the suite has a test id.
func (s ResolvedSuite) HasIDs() bool {
	for _, r := range s.Records {
		if _, ok := r.ID(); ok {
			return true
		}
	}
	return false
}

// ResolveSuites resolves every record of every suite. It fails on the first
// record that cannot be resolved.
func ResolveSuites(suites []model.Suite, mode IDMode) ([]ResolvedSuite, error) {
	resolved := make([]ResolvedSuite, 0, len(suites))
	for _, s := range suites {
		rs := ResolvedSuite{
			Suite:   s,
			Records: make([]Record, 0, len(s.Records)),
		}
		for _, r := range s.Records {
			name, err := ResolveName(r, mode)
			if err != nil {
				return nil, fmt.Errorf("suite %q: %w", s.Name, err)
			}
			rs.Records = append(rs.Records, Record{TestRecord: r, Resolved: name})
		}
		resolved = append(resolved, rs)
	}
	return resolved, nil
}

// Machines returns the distinct non-empty classnames of all records, in
// first-seen order.
func Machines(suites []ResolvedSuite) []string {
	seen := make(map[string]struct{})
	var machines []string
	for _, s := range suites {
		for _, r := range s.Records {
			if r.Classname == "" {
				continue
			}
			if _, ok := seen[r.Classname]; ok {
				continue
			}
			seen[r.Classname] = struct{}{}
			machines = append(machines, r.Classname)
		}
	}
	return machines
}

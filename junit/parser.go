// Package junit reads JUnit XML result files (as produced by cukinia and
// most test runners) into model suites.
package junit

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/savoirfairelinux/test-report-pdf/model"
)

type xmlProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlOutcome struct {
	Message string `xml:"message,attr"`
}

type xmlTestCase struct {
	Name       string        `xml:"name,attr"`
	Classname  string        `xml:"classname,attr"`
	Failure    *xmlOutcome   `xml:"failure"`
	Error      *xmlOutcome   `xml:"error"`
	Skipped    *xmlOutcome   `xml:"skipped"`
	Properties []xmlProperty `xml:"properties>property"`
}

type xmlTestSuite struct {
	Name      string         `xml:"name,attr"`
	TestCases []xmlTestCase  `xml:"testcase"`
	Suites    []xmlTestSuite `xml:"testsuite"`
}

type xmlTestSuites struct {
	Suites []xmlTestSuite `xml:"testsuite"`
}

// Parser parses JUnit XML documents
type Parser struct {
	// Suites without any test case are dropped unless set
	KeepEmpty bool
}

// New creates a new parser instance
func New() *Parser {
	return &Parser{}
}

// ParseFile parses the JUnit XML file at path.
func (p *Parser) ParseFile(path string) ([]model.Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	suites, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return suites, nil
}

// Parse parses a JUnit XML document from an io.Reader. Both a <testsuites>
// root and a bare <testsuite> root are accepted.
func (p *Parser) Parse(reader io.Reader) ([]model.Suite, error) {
	decoder := xml.NewDecoder(reader)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("no testsuite element found")
		}
		if err != nil {
			return nil, fmt.Errorf("invalid XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "testsuites":
			var root xmlTestSuites
			if err := decoder.DecodeElement(&root, &start); err != nil {
				return nil, fmt.Errorf("invalid testsuites element: %w", err)
			}
			return p.convert(root.Suites), nil
		case "testsuite":
			var suite xmlTestSuite
			if err := decoder.DecodeElement(&suite, &start); err != nil {
				return nil, fmt.Errorf("invalid testsuite element: %w", err)
			}
			return p.convert([]xmlTestSuite{suite}), nil
		default:
			return nil, fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
	}
}

func (p *Parser) convert(in []xmlTestSuite) []model.Suite {
	var suites []model.Suite
	for _, s := range in {
		if len(s.TestCases) > 0 || p.KeepEmpty {
			records := make([]model.TestRecord, 0, len(s.TestCases))
			for _, tc := range s.TestCases {
				records = append(records, convertTestCase(tc))
			}
			suites = append(suites, model.NewSuite(strings.TrimSpace(s.Name), records))
		}

		// Nested suites follow their parent in document order
		suites = append(suites, p.convert(s.Suites)...)
	}
	return suites
}

func convertTestCase(tc xmlTestCase) model.TestRecord {
	record := model.TestRecord{
		Name:      tc.Name,
		Classname: strings.TrimSpace(tc.Classname),
		Status:    model.StatusPassed,
	}

	// An error is reported as a failure; a failed check is never downgraded
	// to skipped
	switch {
	case tc.Failure != nil || tc.Error != nil:
		record.Status = model.StatusFailed
	case tc.Skipped != nil:
		record.Status = model.StatusSkipped
	}

	if len(tc.Properties) > 0 {
		record.Properties = make(map[string]string, len(tc.Properties))
		for _, prop := range tc.Properties {
			record.Properties[prop.Name] = prop.Value
		}
	}

	return record
}

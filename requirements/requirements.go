// Package requirements reads requirement lists: two-column CSV files mapping
// a requirement to the id of a test validating it.
package requirements

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/savoirfairelinux/test-report-pdf/model"
)

// List is a named, sorted requirement list.
type List struct {
	// Name derived from the file name (without extension)
	Name string
	// Path of the file the list was read from
	Path string
	// Entries sorted by requirement then test id
	Entries []model.RequirementEntry
}

// Load reads and sorts the requirement list at path. The path must refer to
// an existing regular file.
func Load(path string) (List, error) {
	info, err := os.Stat(path)
	if err != nil {
		return List{}, fmt.Errorf("requirement file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return List{}, fmt.Errorf("requirement file %s is not a regular file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return List{}, fmt.Errorf("failed to open requirement file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return List{}, fmt.Errorf("requirement file %s: %w", path, err)
	}

	base := filepath.Base(path)
	return List{
		Name:    strings.TrimSuffix(base, filepath.Ext(base)),
		Path:    path,
		Entries: entries,
	}, nil
}

// Parse reads requirement entries from r and returns them sorted. Blank lines
// and lines starting with '#' are ignored, as is a leading
// "requirement,test_id" header row.
func Parse(r io.Reader) ([]model.RequirementEntry, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []model.RequirementEntry
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid requirement list: %w", err)
		}

		if row == 0 && isHeader(record) {
			continue
		}

		if len(record) < 2 {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected \"requirement,test_id\", got %d field(s)", line, len(record))
		}

		entry := model.RequirementEntry{
			Requirement: strings.TrimSpace(record[0]),
			TestID:      strings.TrimSpace(record[1]),
		}
		if entry.Requirement == "" || entry.TestID == "" {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: empty requirement or test id", line)
		}
		entries = append(entries, entry)
	}

	Sort(entries)
	return entries, nil
}

// Sort orders entries by requirement then test id, so that entries sharing a
// requirement are contiguous.
func Sort(entries []model.RequirementEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Requirement != entries[j].Requirement {
			return entries[i].Requirement < entries[j].Requirement
		}
		return entries[i].TestID < entries[j].TestID
	})
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	second := strings.ToLower(strings.TrimSpace(record[1]))
	return first == "requirement" && (second == "test_id" || second == "test id" || second == "test")
}

package requirements

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/savoirfairelinux/test-report-pdf/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []model.RequirementEntry
	}{
		{
			name:  "sorted by requirement then id",
			input: "Power supply,REQ1\nDoor sensor,REQ3\nDoor sensor,REQ2\n",
			want: []model.RequirementEntry{
				{Requirement: "Door sensor", TestID: "REQ2"},
				{Requirement: "Door sensor", TestID: "REQ3"},
				{Requirement: "Power supply", TestID: "REQ1"},
			},
		},
		{
			name:  "header, comments and blank lines",
			input: "requirement,test_id\n# comment\n\nPower supply, REQ1\n",
			want: []model.RequirementEntry{
				{Requirement: "Power supply", TestID: "REQ1"},
			},
		},
		{
			name:  "quoted fields and extra columns",
			input: "\"Door, front\",REQ2,ignored\n",
			want: []model.RequirementEntry{
				{Requirement: "Door, front", TestID: "REQ2"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("Power supply,REQ1\nlonely\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")

	_, err = Parse(strings.NewReader("Power supply, \n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty requirement or test id")
}

func TestSort_KeepsRequirementsContiguous(t *testing.T) {
	entries := []model.RequirementEntry{
		{Requirement: "B", TestID: "2"},
		{Requirement: "A", TestID: "9"},
		{Requirement: "B", TestID: "1"},
		{Requirement: "A", TestID: "3"},
	}
	Sort(entries)

	require.Equal(t, []model.RequirementEntry{
		{Requirement: "A", TestID: "3"},
		{Requirement: "A", TestID: "9"},
		{Requirement: "B", TestID: "1"},
		{Requirement: "B", TestID: "2"},
	}, entries)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matrix.csv")
	require.NoError(t, os.WriteFile(path, []byte("Power supply,REQ1\n"), 0644))

	list, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "matrix", list.Name)
	require.Equal(t, path, list.Path)
	require.Len(t, list.Entries, 1)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	_, err = Load(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a regular file")
}

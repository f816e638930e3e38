package report

import (
	"errors"
	"testing"

	"github.com/savoirfairelinux/test-report-pdf/model"
	"github.com/stretchr/testify/require"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name    string
		record  model.TestRecord
		mode    IDMode
		want    Name
		wantErr error
	}{
		{
			name:   "split name",
			record: model.TestRecord{Name: "REQ1 - check power"},
			mode:   IDFromName,
			want:   WithID{ID: "REQ1", Description: "check power"},
		},
		{
			name:   "split on first separator only",
			record: model.TestRecord{Name: "REQ1 - check - power"},
			mode:   IDFromName,
			want:   WithID{ID: "REQ1", Description: "check - power"},
		},
		{
			name:    "split name without separator",
			record:  model.TestRecord{Name: "door-open"},
			mode:    IDFromName,
			wantErr: ErrMissingSeparator,
		},
		{
			name:    "split name with empty id",
			record:  model.TestRecord{Name: " - door open"},
			mode:    IDFromName,
			wantErr: ErrMissingSeparator,
		},
		{
			name: "property",
			record: model.TestRecord{
				Name:       "check power",
				Properties: map[string]string{IDProperty: "REQ1"},
			},
			mode: IDFromProperty,
			want: WithID{ID: "REQ1", Description: "check power"},
		},
		{
			name:   "property missing",
			record: model.TestRecord{Name: "REQ1 - check power"},
			mode:   IDFromProperty,
			want:   Bare{Description: "REQ1 - check power"},
		},
		{
			name: "property blank",
			record: model.TestRecord{
				Name:       "check power",
				Properties: map[string]string{IDProperty: "  "},
			},
			mode: IDFromProperty,
			want: Bare{Description: "check power"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveName(tt.record, tt.mode)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestIDOf(t *testing.T) {
	id, ok := IDOf(WithID{ID: "REQ1", Description: "x"})
	require.True(t, ok)
	require.Equal(t, "REQ1", id)

	_, ok = IDOf(Bare{Description: "x"})
	require.False(t, ok)
}

func TestResolveSuites_FailsOnAnyRecord(t *testing.T) {
	suites := []model.Suite{
		model.NewSuite("ok", []model.TestRecord{{Name: "REQ1 - fine"}}),
		model.NewSuite("bad", []model.TestRecord{{Name: "REQ2 - fine"}, {Name: "door-open"}}),
	}

	_, err := ResolveSuites(suites, IDFromName)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingSeparator))
	require.Contains(t, err.Error(), `"bad"`)
	require.Contains(t, err.Error(), `"door-open"`)
}

func TestMachines_FirstSeenOrder(t *testing.T) {
	suites, err := ResolveSuites([]model.Suite{
		model.NewSuite("a", []model.TestRecord{
			{Name: "x", Classname: "board-2"},
			{Name: "y", Classname: ""},
			{Name: "z", Classname: "board-1"},
		}),
		model.NewSuite("b", []model.TestRecord{
			{Name: "x", Classname: "board-1"},
			{Name: "y", Classname: "board-3"},
		}),
	}, IDFromProperty)
	require.NoError(t, err)

	require.Equal(t, []string{"board-2", "board-1", "board-3"}, Machines(suites))
}

package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnchorRegistry_FirstUseOnly(t *testing.T) {
	r := NewAnchorRegistry(false)

	anchor, first := r.AnchorFor("board-1", "REQ1")
	require.True(t, first)
	require.Equal(t, "REQ1", anchor)

	// Machine is ignored when machine names are not shown
	anchor, first = r.AnchorFor("board-2", "REQ1")
	require.False(t, first)
	require.Equal(t, "REQ1", anchor)

	_, first = r.AnchorFor("", "REQ2")
	require.True(t, first)
	require.Equal(t, 2, r.Len())
}

func TestAnchorRegistry_WithMachine(t *testing.T) {
	r := NewAnchorRegistry(true)

	anchor, first := r.AnchorFor("board 1", "REQ 1")
	require.True(t, first)
	require.Equal(t, "board_1REQ_1", anchor)

	anchor, first = r.AnchorFor("board 2", "REQ 1")
	require.True(t, first)
	require.Equal(t, "board_2REQ_1", anchor)

	_, first = r.AnchorFor("board 1", "REQ 1")
	require.False(t, first)
}

func TestAnchorRegistry_Lookup(t *testing.T) {
	r := NewAnchorRegistry(true)

	anchor, ok := r.Lookup("board-1", "REQ1")
	require.False(t, ok)
	require.Equal(t, "board-1REQ1", anchor)
	require.Equal(t, 0, r.Len())

	r.AnchorFor("board-1", "REQ1")
	anchor, ok = r.Lookup("board-1", "REQ1")
	require.True(t, ok)
	require.Equal(t, "board-1REQ1", anchor)

	// Lookups always give the same anchor
	again, _ := r.Lookup("board-1", "REQ1")
	require.Equal(t, anchor, again)
}

func TestAnchorText(t *testing.T) {
	tests := []struct {
		name string
		key  AnchorKey
		want string
	}{
		{name: "plain id", key: AnchorKey{TestID: "REQ1"}, want: "REQ1"},
		{name: "whitespace", key: AnchorKey{TestID: "a b\tc\n d"}, want: "a_b_c__d"},
		{name: "cell delimiter", key: AnchorKey{TestID: "A|B"}, want: "A_B"},
		{name: "punctuation", key: AnchorKey{TestID: "REQ[1],<2>#3"}, want: "REQ_1___2__3"},
		{name: "allowed punctuation", key: AnchorKey{TestID: "sys:REQ-1.2_a"}, want: "sys:REQ-1.2_a"},
		{name: "leading digit", key: AnchorKey{TestID: "42"}, want: "_42"},
		{name: "leading dash", key: AnchorKey{TestID: "-x"}, want: "_-x"},
		{name: "machine prefix", key: AnchorKey{Machine: "board 1", TestID: "REQ|1"}, want: "board_1REQ_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, anchorText(tt.key))
		})
	}
}

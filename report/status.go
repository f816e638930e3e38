package report

import "github.com/savoirfairelinux/test-report-pdf/model"

// Verdict is the displayed result of a test or requirement mapping.
type Verdict uint8

const (
	VerdictPass Verdict = iota
	VerdictFail
	VerdictSkipped
	VerdictAbsent
)

// VerdictOf maps a record status to its verdict.
func VerdictOf(s model.Status) Verdict {
	switch s {
	case model.StatusFailed:
		return VerdictFail
	case model.StatusSkipped:
		return VerdictSkipped
	}
	return VerdictPass
}

// Label is the text shown in the result cell.
func (v Verdict) Label() string {
	switch v {
	case VerdictPass:
		return "PASS"
	case VerdictFail:
		return "FAIL"
	case VerdictSkipped:
		return "SKIPPED"
	case VerdictAbsent:
		return "ABSENT"
	}
	return "UNKNOWN"
}

func (v Verdict) String() string {
	return v.Label()
}

// Color is the name of the result cell background color.
func (v Verdict) Color() string {
	switch v {
	case VerdictPass:
		return "green"
	case VerdictFail:
		return "red"
	case VerdictSkipped:
		return "yellow"
	case VerdictAbsent:
		return "orange"
	}
	return "white"
}

var colorHex = map[string]string{
	"green":  "#90ee90",
	"red":    "#ff7f7f",
	"yellow": "#ffe97f",
	"orange": "#ffb347",
	"white":  "#ffffff",
}

// HexColor is the background color of the result cell.
func (v Verdict) HexColor() string {
	return colorHex[v.Color()]
}

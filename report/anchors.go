package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AnchorKey identifies a cross-reference target.
type AnchorKey struct {
	Machine string
	TestID  string
}

// AnchorRegistry hands out cross-reference anchors and remembers which ones
// were already defined. A registry lives for one document: the table pass
// defines anchors and the matrix pass links to them.
type AnchorRegistry struct {
	withMachine bool
	defined     map[AnchorKey]struct{}
}

// NewAnchorRegistry creates an empty registry. When withMachine is false the
// machine name is left out of keys and anchors.
func NewAnchorRegistry(withMachine bool) *AnchorRegistry {
	return &AnchorRegistry{
		withMachine: withMachine,
		defined:     make(map[AnchorKey]struct{}),
	}
}

// Key returns the registry key for a machine and test id.
func (r *AnchorRegistry) Key(machine, testID string) AnchorKey {
	if !r.withMachine {
		machine = ""
	}
	return AnchorKey{Machine: machine, TestID: testID}
}

// AnchorFor returns the anchor for a machine and test id, and whether this is
// the first use of the key. The key is recorded as defined.
func (r *AnchorRegistry) AnchorFor(machine, testID string) (string, bool) {
	key := r.Key(machine, testID)
	_, seen := r.defined[key]
	if !seen {
		r.defined[key] = struct{}{}
	}
	return anchorText(key), !seen
}

// Lookup returns the anchor for a machine and test id, and whether it has
// been defined. It never records the key.
func (r *AnchorRegistry) Lookup(machine, testID string) (string, bool) {
	key := r.Key(machine, testID)
	_, ok := r.defined[key]
	return anchorText(key), ok
}

// Len returns the number of defined anchors.
func (r *AnchorRegistry) Len() int {
	return len(r.defined)
}

// anchorText turns a key into an AsciiDoc id. Characters not allowed in an
// id become '_', and an id not starting with a letter, '_' or ':' is
// prefixed with '_'.
func anchorText(key AnchorKey) string {
	text := strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) || unicode.IsDigit(c) || strings.ContainsRune("_:.-", c) {
			return c
		}
		return '_'
	}, key.Machine+key.TestID)

	if first, _ := utf8.DecodeRuneInString(text); text != "" && !unicode.IsLetter(first) && first != '_' && first != ':' {
		text = "_" + text
	}
	return text
}

// Package verify checks that a stego document means the same thing as
// its cover document. Both are parsed by real HTML and CSS parsers and
// compared after the differences the embedding methods are allowed to
// introduce have been normalized away: whitespace runs, quote
// characters, attribute and property order and, optionally, the numeric
// suffixes added to id attributes.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/grammar"
)

// ErrNotEquivalent is wrapped by every MismatchError.
var ErrNotEquivalent = errors.New("documents are not equivalent")

// Options controls which differences are tolerated.
type Options struct {
	// IgnoreIDSuffixes tolerates a "__N" suffix on the stego side's id
	// attributes and drops id attributes the stego side gained.
	IgnoreIDSuffixes bool
}

// MismatchError describes the first point where the documents differ.
type MismatchError struct {
	// Position is the index of the differing item (rule or token).
	Position int

	Cover string
	Stego string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: item %d: %q != %q", ErrNotEquivalent, e.Position, e.Cover, e.Stego)
}

// Unwrap lets errors.Is match ErrNotEquivalent.
func (e *MismatchError) Unwrap() error {
	return ErrNotEquivalent
}

// Lines compares two documents given as lines. With grammar.Auto the
// grammar is detected from the cover.
func Lines(g grammar.Grammar, cover, stego []string, opts Options) error {
	coverText := strings.Join(cover, "\n")
	g, err := grammar.Resolve(g, "", []byte(coverText))
	if err != nil {
		return err
	}

	stegoText := strings.Join(stego, "\n")
	switch g {
	case grammar.HTML:
		return HTML(coverText, stegoText, opts)
	case grammar.CSS:
		return CSS(coverText, stegoText)
	default:
		return fmt.Errorf("%w: %q", grammar.ErrUnknownGrammar, g)
	}
}

// squash collapses every run of whitespace outside quotes to one space
// and trims the ends.
func squash(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ", "\f", " ").Replace(s)
	return strings.TrimSpace(document.Collapse(s))
}

// compare returns a MismatchError for the first differing item.
func compare(cover, stego []string) error {
	for i := range max(len(cover), len(stego)) {
		if i < len(cover) && i < len(stego) && cover[i] == stego[i] {
			continue
		}
		return mismatch(i, cover, stego)
	}
	return nil
}

// mismatch builds the error for position i; a side that has run out is
// shown as empty.
func mismatch(i int, cover, stego []string) *MismatchError {
	err := &MismatchError{Position: i}
	if i < len(cover) {
		err.Cover = cover[i]
	}
	if i < len(stego) {
		err.Stego = stego[i]
	}
	return err
}

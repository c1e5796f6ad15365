// Package parser turns the lines of a hand-formatted HTML or CSS file into
// a document tree.
//
// The recognizer is line oriented: it assumes one logical token per line
// (a tag, a selector, a declaration, a brace) the way people format these
// files by hand. It is not a general HTML or CSS parser. A document it
// cannot make sense of is rejected as a whole; no partial tree is ever
// returned.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/grammar"
)

// ErrMalformedDocument is wrapped by every ParseError.
var ErrMalformedDocument = errors.New("malformed document")

// ParseError reports where and why a document was rejected.
type ParseError struct {
	// Line is the 1-based line number the problem was found at.
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", ErrMalformedDocument, e.Line, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedDocument.
func (e *ParseError) Unwrap() error {
	return ErrMalformedDocument
}

func malformed(index int, format string, args ...any) error {
	return &ParseError{Line: index + 1, Reason: fmt.Sprintf(format, args...)}
}

// Parse builds the document tree for lines in the given grammar. With
// grammar.Auto the grammar is detected from the content.
func Parse(lines []string, g grammar.Grammar) (*document.Node, error) {
	g, err := grammar.Resolve(g, "", []byte(strings.Join(lines, "\n")))
	if err != nil {
		return nil, err
	}

	switch g {
	case grammar.HTML:
		return ParseHTML(lines)
	case grammar.CSS:
		return ParseCSS(lines)
	default:
		return nil, fmt.Errorf("%w: %q", grammar.ErrUnknownGrammar, g)
	}
}

// Package stego walks a document tree and moves the bits of a message
// frame into or out of every carrier site the active methods apply to.
//
// Both directions visit the tree in the same pre-order, depth-first
// order: a block before its children, and at each node the methods in
// the order method.Arrange gives them. Embedding never stops early.
// Extraction stops at the first node after which the recovered bits form
// a complete frame.
package stego

import (
	"errors"
	"fmt"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/method"
)

// Errors returned by the driver.
var (
	// ErrNoMessage is returned when extraction runs out of carrier sites
	// before a complete frame has been recovered.
	ErrNoMessage = errors.New("no hidden message found")

	// ErrInsufficientCapacity is returned when embedding runs out of
	// carrier sites before the whole frame has been written. The tree is
	// left partly written and must be discarded.
	ErrInsufficientCapacity = errors.New("document cannot hold the message")
)

// Stats counts what a traversal touched.
type Stats struct {
	// Nodes is the number of nodes visited.
	Nodes int

	// Sites is the number of (node, method) pairs that were written or
	// read.
	Sites int

	// Bits is the number of bits moved.
	Bits int
}

// errFrameComplete stops the extraction walk.
var errFrameComplete = errors.New("frame complete")

// Embed writes the bits of s into root. Every site the methods apply to
// is written, in traversal order, until the walk ends; sites reached
// after s runs dry follow each method's underflow policy. A node is reset
// to its canonical form right before its first write.
func Embed(root *document.Node, s *bitstream.Stream, methods ...method.Method) (Stats, error) {
	methods, err := method.Arrange(methods)
	if err != nil {
		return Stats{}, err
	}

	total := s.Len()
	var stats Stats

	//nolint:errcheck // the callback never fails
	document.Walk(root, func(n *document.Node) error {
		stats.Nodes++
		if !anyApplies(methods, s, n) {
			return nil
		}
		n.Normalize()
		for _, m := range methods {
			before := s.Len()
			if m.Embed(s, n) {
				stats.Sites++
				stats.Bits += before - s.Len()
			}
		}
		return nil
	})

	if !s.IsEmpty() {
		return stats, fmt.Errorf("%w: wrote %d of %d bits", ErrInsufficientCapacity, total-s.Len(), total)
	}
	return stats, nil
}

// anyApplies reports whether some method would write to the canonical
// form of n.
func anyApplies(methods []method.Method, s *bitstream.Stream, n *document.Node) bool {
	canonical := n.Normalized()
	for _, m := range methods {
		if method.Applies(m, s, canonical) {
			return true
		}
	}
	return false
}

// Extract reads bits out of root until they form a complete frame. The
// returned stream holds exactly the frame. When no complete frame is
// found, the bits read so far are returned with ErrNoMessage.
func Extract(root *document.Node, methods ...method.Method) (*bitstream.Stream, Stats, error) {
	methods, err := method.Arrange(methods)
	if err != nil {
		return nil, Stats{}, err
	}

	s := bitstream.New()
	var stats Stats

	err = document.Walk(root, func(n *document.Node) error {
		stats.Nodes++
		for _, m := range methods {
			if !n.Offers(m.Info().Carrier) {
				continue
			}
			before := s.Len()
			m.Extract(s, n)
			if read := s.Len() - before; read > 0 {
				stats.Sites++
				stats.Bits += read
			}
		}
		if s.IsCompleteFrame() {
			return errFrameComplete
		}
		return nil
	})
	if !errors.Is(err, errFrameComplete) {
		return s, stats, fmt.Errorf("%w: read %d bits", ErrNoMessage, s.Len())
	}

	s.TrimFrame()
	return s, stats, nil
}

// Capacity returns the number of bits root can carry with the given
// methods. It embeds into a copy of root, so sites created along the way
// (such as a synthesized id attribute that other attribute methods then
// use) are counted.
func Capacity(root *document.Node, methods ...method.Method) (int, error) {
	methods, err := method.Arrange(methods)
	if err != nil {
		return 0, err
	}

	total := 0
	//nolint:errcheck // the callback never fails
	document.Walk(document.Clone(root), func(n *document.Node) error {
		for _, m := range methods {
			if m.Capacity(n.Normalized()) > 0 {
				n.Normalize()
				break
			}
		}
		for _, m := range methods {
			c := m.Capacity(n)
			if c > 0 {
				total += c
				m.Embed(bitstream.FromBits(make([]bool, c)), n)
			}
		}
		return nil
	})
	return total, nil
}

// Hide frames text and embeds it into root.
func Hide(root *document.Node, text string, methods ...method.Method) (Stats, error) {
	s, err := bitstream.FromText(text)
	if err != nil {
		return Stats{}, err
	}
	return Embed(root, s, methods...)
}

// Reveal extracts the frame hidden in root and decodes its text.
func Reveal(root *document.Node, methods ...method.Method) (string, Stats, error) {
	s, stats, err := Extract(root, methods...)
	if err != nil {
		return "", stats, err
	}
	text, _ := s.Text()
	return text, stats, nil
}

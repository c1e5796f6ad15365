package builtin

import (
	"strings"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/document"
)

// ColonSpacing hides one bit per CSS declaration in the space after its
// colon.
type ColonSpacing struct{}

// spaceable reports whether the gap after the colon is followed by
// something. A gap at the very end of the line could be mistaken for
// trailing whitespace.
func spaceable(d document.Declaration) bool {
	return d.Terminated || strings.TrimSpace(d.Value) != ""
}

// Encode puts exactly one space after the colon iff the bit is 1.
func (ColonSpacing) Encode(s *bitstream.Stream, d document.Declaration) document.Declaration {
	if !spaceable(d) {
		return d
	}
	d.Gap = spaceIf(s.PopBits(1)[0])
	return d
}

// Decode reads 1 iff the character after the colon is a space.
func (ColonSpacing) Decode(s *bitstream.Stream, d document.Declaration) {
	if spaceable(d) {
		s.PushBit(strings.HasPrefix(d.Gap, " "))
	}
}

// Capacity is one bit per declaration with a value or a semicolon.
func (ColonSpacing) Capacity(d document.Declaration) int {
	if spaceable(d) {
		return 1
	}
	return 0
}

package builtin

import (
	"strings"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/document"
)

// TrailingSpace hides one bit per line in the presence of a trailing
// space.
type TrailingSpace struct{}

// Encode strips trailing spaces and appends one iff the next bit is 1.
func (TrailingSpace) Encode(s *bitstream.Stream, text string) string {
	text = strings.TrimRight(text, " ")
	if s.PopBits(1)[0] {
		text += " "
	}
	return text
}

// Decode reads 1 iff the last character is a space.
func (TrailingSpace) Decode(s *bitstream.Stream, text string) {
	s.PushBit(strings.HasSuffix(text, " "))
}

// Capacity is one bit for any text with content.
func (TrailingSpace) Capacity(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return 1
}

// DoubleSpace hides one bit in every single space of a line by doubling
// it or not.
type DoubleSpace struct{}

// Encode reads one bit per existing space, left to right, and doubles the
// spaces whose bit is 1. Insertions happen right to left so earlier
// offsets stay valid.
func (DoubleSpace) Encode(s *bitstream.Stream, text string) string {
	spaces := document.UnquotedSpaces(text)
	bits := s.PopBits(len(spaces))
	for i := len(spaces) - 1; i >= 0; i-- {
		if bits[i] {
			at := spaces[i]
			text = text[:at] + " " + text[at:]
		}
	}
	return text
}

// Decode scans left to right: two adjacent spaces read as 1 and the
// second is skipped; a lone space reads as 0.
func (DoubleSpace) Decode(s *bitstream.Stream, text string) {
	spaces := document.UnquotedSpaces(text)
	for i := 0; i < len(spaces); i++ {
		if i+1 < len(spaces) && spaces[i+1] == spaces[i]+1 {
			s.PushBit(true)
			i++
			continue
		}
		s.PushBit(false)
	}
}

// Capacity is the number of spaces outside quoted sections.
func (DoubleSpace) Capacity(text string) int {
	return len(document.UnquotedSpaces(text))
}

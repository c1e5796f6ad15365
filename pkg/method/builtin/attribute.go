package builtin

import (
	"strconv"
	"strings"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/document"
)

// Quotemark hides one bit per attribute in its quote character.
type Quotemark struct{}

// quotable reports whether either quote character can wrap the value.
func quotable(a document.Attribute) bool {
	return a.HasValue && !strings.ContainsAny(a.Value, `"'`)
}

// Encode quotes the value with ' for 1 and " for 0.
func (Quotemark) Encode(s *bitstream.Stream, a document.Attribute) document.Attribute {
	if !quotable(a) {
		return a
	}
	if s.PopBits(1)[0] {
		a.SetQuote('\'')
	} else {
		a.SetQuote('"')
	}
	return a
}

// Decode reads 1 iff the value is wrapped in '.
func (Quotemark) Decode(s *bitstream.Stream, a document.Attribute) {
	if quotable(a) {
		s.PushBit(a.Quote == '\'')
	}
}

// Capacity is one bit for a value free of quote characters.
func (Quotemark) Capacity(a document.Attribute) int {
	if quotable(a) {
		return 1
	}
	return 0
}

// EqualsSpacing hides two bits per valued attribute in the spaces around
// its '=' sign: the first bit before, the second after.
type EqualsSpacing struct{}

// Encode sets one space on each side of '=' whose bit is 1.
func (EqualsSpacing) Encode(s *bitstream.Stream, a document.Attribute) document.Attribute {
	if !a.HasValue {
		return a
	}
	bits := s.PopBits(2)
	a.SetSpacing(spaceIf(bits[0]), spaceIf(bits[1]))
	return a
}

// Decode reads whether there is whitespace before and after '='.
func (EqualsSpacing) Decode(s *bitstream.Stream, a document.Attribute) {
	if !a.HasValue {
		return
	}
	s.PushBit(a.Before != "")
	s.PushBit(a.After != "")
}

// Capacity is two bits for any attribute with a value.
func (EqualsSpacing) Capacity(a document.Attribute) int {
	if a.HasValue {
		return 2
	}
	return 0
}

func spaceIf(bit bool) string {
	if bit {
		return " "
	}
	return ""
}

// IDSeparator joins an element id to the number hidden in it.
const IDSeparator = "__"

// ElementID hides 16 bits per opening tag as a decimal suffix on its id
// attribute, synthesizing a leading id attribute when there is none.
type ElementID struct{}

// findID returns the index of the first attribute named id, ignoring
// case, or -1.
func findID(attrs []document.Attribute) int {
	for i, a := range attrs {
		if strings.EqualFold(a.Key, "id") {
			return i
		}
	}
	return -1
}

// Encode appends IDSeparator and the next 16-bit number to the id value.
func (ElementID) Encode(s *bitstream.Stream, attrs []document.Attribute) []document.Attribute {
	suffix := IDSeparator + strconv.FormatUint(uint64(s.PopUint16()), 10)

	out := make([]document.Attribute, 0, len(attrs)+1)
	idx := findID(attrs)
	if idx < 0 {
		out = append(out, document.NewAttribute("id", "id"+suffix))
		return append(out, attrs...)
	}

	out = append(out, attrs...)
	out[idx].SetValue(out[idx].Value + suffix)
	return out
}

// Decode parses the number after the last IDSeparator of the id value.
// A missing id, separator or unparsable number yields no bits.
func (ElementID) Decode(s *bitstream.Stream, attrs []document.Attribute) {
	idx := findID(attrs)
	if idx < 0 {
		return
	}
	value := attrs[idx].Value
	sep := strings.LastIndex(value, IDSeparator)
	if sep < 0 {
		return
	}
	n, err := strconv.ParseUint(value[sep+len(IDSeparator):], 10, 16)
	if err != nil {
		return
	}
	s.PushUint16(uint16(n))
}

// Capacity is 16 bits for every opening tag.
func (ElementID) Capacity([]document.Attribute) int {
	return 16
}

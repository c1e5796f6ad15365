package bitstream

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// headerBits is the size of the length prefix of a message frame.
const headerBits = 32

// ErrUnencodable is returned when a message holds a character that does
// not fit in a single byte.
var ErrUnencodable = errors.New("message is not single-byte encodable")

// Frame returns a stream holding payload behind a 32-bit big-endian
// length prefix counting bytes.
func Frame(payload []byte) *Stream {
	n := uint32(len(payload))
	s := &Stream{bits: make([]bool, 0, headerBits+len(payload)*8)}
	s.PushBytes([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
	s.PushBytes(payload)
	return s
}

// FromText frames text, one ISO-8859-1 byte per character.
func FromText(text string) (*Stream, error) {
	payload, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnencodable, err)
	}
	return Frame(payload), nil
}

// FrameBits returns the total number of bits of a frame carrying n bytes.
func FrameBits(n int) int {
	return headerBits + n*8
}

// declaredLength returns the frame's length prefix, if present.
func (s *Stream) declaredLength() (uint64, bool) {
	if len(s.bits) < headerBits {
		return 0, false
	}
	var n uint64
	for _, bit := range s.bits[:headerBits] {
		n <<= 1
		if bit {
			n |= 1
		}
	}
	return n, true
}

// IsCompleteFrame reports whether the stream holds a length prefix and at
// least as many payload bytes as the prefix declares. It does not modify
// the stream.
func (s *Stream) IsCompleteFrame() bool {
	n, ok := s.declaredLength()
	if !ok {
		return false
	}
	return n*8 <= uint64(len(s.bits)-headerBits)
}

// TrimFrame drops every bit past the end of a complete frame.
// It is a no-op when the frame is not complete.
func (s *Stream) TrimFrame() {
	if !s.IsCompleteFrame() {
		return
	}
	n, _ := s.declaredLength()
	s.bits = s.bits[:headerBits+int(n)*8]
}

// Payload decodes the frame's payload bytes. The byte count is the
// declared length truncated to the whole bytes actually held. ok is false
// when fewer than 32 bits are held.
func (s *Stream) Payload() ([]byte, bool) {
	n, ok := s.declaredLength()
	if !ok {
		return nil, false
	}
	held := uint64((len(s.bits) - headerBits) / 8)
	if n > held {
		n = held
	}
	return packBytes(s.bits[headerBits : headerBits+int(n)*8]), true
}

// Text decodes the frame's payload as ISO-8859-1 text. ok is false when
// fewer than 32 bits are held.
func (s *Stream) Text() (string, bool) {
	payload, ok := s.Payload()
	if !ok {
		return "", false
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(payload)
	if err != nil {
		// Every byte maps to a code point in ISO-8859-1.
		return string(payload), true
	}
	return string(text), true
}

// Package bitstream provides the ordered, mutable bit sequence used as the
// source of bits to embed and the sink of bits recovered from a document.
//
// Bytes are packed most significant bit first:
//
//	byte   0               1
//	      +---------------+---------------+-
//	      |7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|
//	      +---------------+---------------+-
//	bit    0 1 2 3 4 5 6 7 8 9 ...
package bitstream

import "errors"

// ErrUnderflow is returned by PopBit when the stream is empty.
var ErrUnderflow = errors.New("bit stream underflow")

// Filler is the bit returned in place of missing bits by PopBits.
const Filler = false

// Stream is a sequence of bits that is consumed from the front and
// extended at the back. The zero value is an empty stream ready for use.
type Stream struct {
	bits []bool
}

// New returns an empty stream.
func New() *Stream {
	return &Stream{}
}

// FromBytes returns a stream holding the bits of b, 8 per byte.
func FromBytes(b []byte) *Stream {
	s := &Stream{bits: make([]bool, 0, len(b)*8)}
	s.PushBytes(b)
	return s
}

// FromBits returns a stream holding a copy of bits.
func FromBits(bits []bool) *Stream {
	s := &Stream{}
	s.PushBits(bits)
	return s
}

// Len returns the number of bits held.
func (s *Stream) Len() int {
	return len(s.bits)
}

// IsEmpty reports whether the stream holds no bits.
func (s *Stream) IsEmpty() bool {
	return len(s.bits) == 0
}

// Bits returns a copy of the bits held, front first.
func (s *Stream) Bits() []bool {
	out := make([]bool, len(s.bits))
	copy(out, s.bits)
	return out
}

// PopBit removes and returns the front bit.
func (s *Stream) PopBit() (bool, error) {
	if len(s.bits) == 0 {
		return false, ErrUnderflow
	}
	bit := s.bits[0]
	s.bits = s.bits[1:]
	return bit, nil
}

// PopBits removes up to n bits from the front. When fewer than n bits
// remain, the result is padded with Filler and the stream ends up empty.
func (s *Stream) PopBits(n int) []bool {
	if n <= 0 {
		return nil
	}
	out := make([]bool, n)
	taken := copy(out, s.bits)
	for i := taken; i < n; i++ {
		out[i] = Filler
	}
	s.bits = s.bits[taken:]
	return out
}

// PopBytes removes n*8 bits and packs them into n bytes.
func (s *Stream) PopBytes(n int) []byte {
	return packBytes(s.PopBits(n * 8))
}

// PopUint16 removes 16 bits and returns them as a big-endian integer.
func (s *Stream) PopUint16() uint16 {
	b := s.PopBytes(2)
	return uint16(b[0])<<8 | uint16(b[1])
}

// PushBit appends bit to the back of the stream.
func (s *Stream) PushBit(bit bool) {
	s.bits = append(s.bits, bit)
}

// PushBits appends bits to the back of the stream.
func (s *Stream) PushBits(bits []bool) {
	s.bits = append(s.bits, bits...)
}

// PushBytes appends 8 bits per byte, most significant first.
func (s *Stream) PushBytes(b []byte) {
	for _, by := range b {
		for i := 7; i >= 0; i-- {
			s.bits = append(s.bits, (by>>uint(i))&1 == 1)
		}
	}
}

// PushUint16 appends v as 16 big-endian bits.
func (s *Stream) PushUint16(v uint16) {
	s.PushBytes([]byte{byte(v >> 8), byte(v)})
}

// String renders the bits as a string of '0' and '1'.
func (s *Stream) String() string {
	buf := make([]byte, len(s.bits))
	for i, bit := range s.bits {
		if bit {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// packBytes packs bits into bytes, most significant bit first.
// A trailing partial byte is dropped.
func packBytes(bits []bool) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		var by byte
		for _, bit := range bits[i*8 : i*8+8] {
			by <<= 1
			if bit {
				by |= 1
			}
		}
		out[i] = by
	}
	return out
}

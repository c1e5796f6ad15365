package bitstream_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/bitstream"
)

func TestPopBit(t *testing.T) {
	t.Parallel()

	s := bitstream.FromBits([]bool{true, false})

	bit, err := s.PopBit()
	require.NoError(t, err)
	assert.True(t, bit)

	bit, err = s.PopBit()
	require.NoError(t, err)
	assert.False(t, bit)

	_, err = s.PopBit()
	require.ErrorIs(t, err, bitstream.ErrUnderflow)
	assert.True(t, s.IsEmpty())
}

func TestPopBits_PadsWithFiller(t *testing.T) {
	t.Parallel()

	s := bitstream.FromBits([]bool{true, true})
	got := s.PopBits(5)

	want := []bool{true, true, false, false, false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PopBits mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.PopBits(0))
}

func TestBytes_MostSignificantBitFirst(t *testing.T) {
	t.Parallel()

	s := bitstream.FromBytes([]byte{0xa9})
	assert.Equal(t, "10101001", s.String())

	got := s.PopBytes(1)
	assert.Equal(t, []byte{0xa9}, got)
}

func TestUint16(t *testing.T) {
	t.Parallel()

	for _, v := range []uint16{0, 1, 0x00ff, 0x1234, 0xffff} {
		s := bitstream.New()
		s.PushUint16(v)
		require.Equal(t, 16, s.Len())
		assert.Equal(t, v, s.PopUint16())
		assert.True(t, s.IsEmpty())
	}
}

func TestPopUint16_Underflow(t *testing.T) {
	t.Parallel()

	// 0b1 followed by 15 filler bits.
	s := bitstream.FromBits([]bool{true})
	assert.Equal(t, uint16(0x8000), s.PopUint16())
	assert.True(t, s.IsEmpty())
}

func TestPushBits_CopiesInput(t *testing.T) {
	t.Parallel()

	in := []bool{true, false}
	s := bitstream.FromBits(in)
	in[0] = false

	assert.Equal(t, "10", s.String())

	out := s.Bits()
	out[1] = true
	assert.Equal(t, "10", s.String())
}

package bitstream_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/bitstream"
)

func TestFromText_Header(t *testing.T) {
	t.Parallel()

	s, err := bitstream.FromText("hi")
	require.NoError(t, err)
	require.Equal(t, 48, s.Len())

	want := "00000000000000000000000000000010" + "01101000" + "01101001"
	assert.Equal(t, want, s.String())
}

func TestFromText_Unencodable(t *testing.T) {
	t.Parallel()

	_, err := bitstream.FromText("snow ☃")
	require.ErrorIs(t, err, bitstream.ErrUnencodable)
}

func TestFrameRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"a",
		"hi",
		"Hello, World!",
		"café ÿ",
		"~!@#$%^&*()_+{}|:\"<>?",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()

			framed, err := bitstream.FromText(text)
			require.NoError(t, err)

			total := framed.Len()
			require.Equal(t, bitstream.FrameBits(len([]rune(text))), total)

			// Feed the bits one at a time into a fresh stream.
			sink := bitstream.New()
			for i, bit := range framed.Bits() {
				assert.False(t, sink.IsCompleteFrame(), "complete after %d of %d bits", i, total)
				sink.PushBit(bit)
			}
			assert.True(t, sink.IsCompleteFrame())

			got, ok := sink.Text()
			require.True(t, ok)
			assert.Equal(t, text, got)

			// Extra bits keep the frame complete and do not change the text.
			sink.PushBits([]bool{true, true, true, true, true, true, true, true, true})
			assert.True(t, sink.IsCompleteFrame())
			got, ok = sink.Text()
			require.True(t, ok)
			assert.Equal(t, text, got)
		})
	}
}

func TestText_ShortStream(t *testing.T) {
	t.Parallel()

	s := bitstream.FromBits(make([]bool, 31))
	_, ok := s.Text()
	assert.False(t, ok)
	assert.False(t, s.IsCompleteFrame())
}

func TestText_TruncatesToHeldBytes(t *testing.T) {
	t.Parallel()

	framed, err := bitstream.FromText("hello")
	require.NoError(t, err)

	// Keep the header, two whole bytes and half of the third.
	bits := framed.Bits()[:32+8*2+4]
	s := bitstream.FromBits(bits)

	assert.False(t, s.IsCompleteFrame())
	got, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "he", got)
}

func TestIsCompleteFrame_DoesNotMutate(t *testing.T) {
	t.Parallel()

	framed, err := bitstream.FromText("x")
	require.NoError(t, err)
	before := framed.String()

	assert.True(t, framed.IsCompleteFrame())
	assert.Equal(t, before, framed.String())
}

func TestTrimFrame(t *testing.T) {
	t.Parallel()

	framed, err := bitstream.FromText("ok")
	require.NoError(t, err)
	want := framed.String()

	framed.PushBits([]bool{true, false, true})
	framed.TrimFrame()
	assert.Equal(t, want, framed.String())

	partial := bitstream.FromBits([]bool{true})
	partial.TrimFrame()
	assert.Equal(t, 1, partial.Len())
}

func FuzzFrame(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hi"))
	f.Add([]byte{0x00, 0xff, 0x80, 0x01})

	f.Fuzz(func(t *testing.T, payload []byte) {
		s := bitstream.Frame(payload)
		if s.Len() != bitstream.FrameBits(len(payload)) {
			t.Fatalf("Len() = %d, want %d", s.Len(), bitstream.FrameBits(len(payload)))
		}
		if !s.IsCompleteFrame() {
			t.Fatal("frame is not complete")
		}
		got, ok := s.Payload()
		if !ok || !bytes.Equal(got, payload) {
			t.Fatalf("Payload() = %v, %v; want %v", got, ok, payload)
		}
	})
}

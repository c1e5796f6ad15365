package builtin

import (
	"slices"

	"github.com/yaklabco/webstego/pkg/bitstream"
)

// Sorting hides n-1 bits in the order of a set of n distinct keys.
//
// Starting from the keys in sorted order, each bit flags one position
// after the first; the first position is always flagged. The keys at the
// flagged positions are rotated left by one. Every flagged position then
// holds a key other than its sorted one and every other position keeps
// its sorted key, so the bits are read back by comparing the order
// against the sorted order.
//
// A set with repeated keys has no single sorted order and carries no
// bits.
type Sorting struct{}

// Encode returns the keys in the order that carries the next n-1 bits.
func (c Sorting) Encode(s *bitstream.Stream, keys []string) []string {
	if c.Capacity(keys) == 0 {
		return keys
	}

	sorted := slices.Sorted(slices.Values(keys))
	flagged := []int{0}
	for i, bit := range s.PopBits(len(keys) - 1) {
		if bit {
			flagged = append(flagged, i+1)
		}
	}

	out := slices.Clone(sorted)
	for j, pos := range flagged {
		out[pos] = sorted[flagged[(j+1)%len(flagged)]]
	}
	return out
}

// Decode emits, for every position after the first, 1 iff the key there
// differs from the sorted key.
func (c Sorting) Decode(s *bitstream.Stream, keys []string) {
	if c.Capacity(keys) == 0 {
		return
	}
	sorted := slices.Sorted(slices.Values(keys))
	for i := 1; i < len(keys); i++ {
		s.PushBit(keys[i] != sorted[i])
	}
}

// Capacity is n-1 bits for n distinct keys, n >= 2.
func (Sorting) Capacity(keys []string) int {
	if len(keys) < 2 {
		return 0
	}
	sorted := slices.Sorted(slices.Values(keys))
	if len(slices.Compact(sorted)) != len(keys) {
		return 0
	}
	return len(keys) - 1
}

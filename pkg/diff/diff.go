// Package diff renders the difference between a cover document and its
// stego version as a unified diff.
//
// Embedding rewrites lines in place and never adds or removes any, so
// when both sides have the same number of lines they are compared line
// by line. Otherwise a longest common subsequence is used.
package diff

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between two versions of a document.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	Hunks []Hunk

	// Changed is the number of cover lines that differ.
	Changed int
}

// Hunk is one block of changes with its surrounding context.
type Hunk struct {
	// CoverStart and StegoStart are 1-based line numbers.
	CoverStart int
	CoverCount int
	StegoStart int
	StegoCount int

	Lines []Line
}

// Line is a single line of a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged line.
	LineContext LineKind = iota

	// LineAdd is a line of the stego version.
	LineAdd

	// LineRemove is a line of the cover.
	LineRemove
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Lines computes the diff between cover and stego. It returns nil when
// they are identical.
func Lines(path string, cover, stego []string) *Diff {
	var ops []op
	if len(cover) == len(stego) {
		ops = alignedOps(cover, stego)
	} else {
		ops = lcsOps(cover, stego)
	}

	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, o := range ops {
		if o.kind == LineRemove {
			d.Changed++
		}
	}
	return d
}

// HasChanges reports whether the diff holds any change.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	return d.render(func(s string) string { return s })
}

// Visible is String with every space shown as '·' and every tab as '→',
// so whitespace-only changes can be read.
func (d *Diff) Visible() string {
	r := strings.NewReplacer(" ", "·", "\t", "→")
	return d.render(r.Replace)
}

func (d *Diff) render(show func(string) string) string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.CoverStart, hunk.CoverCount,
			hunk.StegoStart, hunk.StegoCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				fmt.Fprintf(&builder, " %s\n", show(line.Content))
			case LineAdd:
				fmt.Fprintf(&builder, "+%s\n", show(line.Content))
			case LineRemove:
				fmt.Fprintf(&builder, "-%s\n", show(line.Content))
			}
		}
	}

	return builder.String()
}

type op struct {
	kind    LineKind
	content string
}

// alignedOps compares line i with line i. A run of changed lines is
// emitted as all its removals followed by all its additions.
func alignedOps(cover, stego []string) []op {
	var ops []op
	for i := 0; i < len(cover); {
		if cover[i] == stego[i] {
			ops = append(ops, op{LineContext, cover[i]})
			i++
			continue
		}
		end := i
		for end < len(cover) && cover[end] != stego[end] {
			end++
		}
		for _, line := range cover[i:end] {
			ops = append(ops, op{LineRemove, line})
		}
		for _, line := range stego[i:end] {
			ops = append(ops, op{LineAdd, line})
		}
		i = end
	}
	return ops
}

// lcsOps walks both sides along their longest common subsequence.
func lcsOps(cover, stego []string) []op {
	lcs := longestCommonSubsequence(cover, stego)

	var ops []op
	ci, si, li := 0, 0, 0
	for ci < len(cover) || si < len(stego) {
		if li < len(lcs) && ci < len(cover) && si < len(stego) &&
			cover[ci] == lcs[li] && stego[si] == lcs[li] {
			ops = append(ops, op{LineContext, cover[ci]})
			ci++
			si++
			li++
			continue
		}
		for ci < len(cover) && (li >= len(lcs) || cover[ci] != lcs[li]) {
			ops = append(ops, op{LineRemove, cover[ci]})
			ci++
		}
		for si < len(stego) && (li >= len(lcs) || stego[si] != lcs[li]) {
			ops = append(ops, op{LineAdd, stego[si]})
			si++
		}
	}
	return ops
}

func longestCommonSubsequence(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for row := 1; row <= len(a); row++ {
		for col := 1; col <= len(b); col++ {
			if a[row-1] == b[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcs := make([]string, dp[len(a)][len(b)])
	row, col, idx := len(a), len(b), len(lcs)-1
	for row > 0 && col > 0 {
		switch {
		case a[row-1] == b[col-1]:
			lcs[idx] = a[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}
	return lcs
}

// groupIntoHunks merges change runs that are at most 2*contextLines
// apart and surrounds each group with context.
func groupIntoHunks(ops []op) []Hunk {
	type changeRange struct{ start, end int }

	var ranges []changeRange
	for i := 0; i < len(ops); {
		if ops[i].kind == LineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != LineContext {
			i++
		}
		ranges = append(ranges, changeRange{start, i})
	}

	var hunks []Hunk
	for ri := 0; ri < len(ranges); {
		merge := ri + 1
		for merge < len(ranges) && ranges[merge].start-ranges[merge-1].end <= contextLines*2 {
			merge++
		}
		hunks = append(hunks, buildHunk(ops, ranges[ri].start, ranges[merge-1].end))
		ri = merge
	}
	return hunks
}

func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{CoverStart: 1, StegoStart: 1}
	for _, o := range ops[:start] {
		if o.kind != LineAdd {
			hunk.CoverStart++
		}
		if o.kind != LineRemove {
			hunk.StegoStart++
		}
	}

	for _, o := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Content: o.content})
		switch o.kind {
		case LineContext:
			hunk.CoverCount++
			hunk.StegoCount++
		case LineRemove:
			hunk.CoverCount++
		case LineAdd:
			hunk.StegoCount++
		}
	}
	return hunk
}

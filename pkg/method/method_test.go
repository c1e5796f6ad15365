package method_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/method"
	"github.com/yaklabco/webstego/pkg/method/builtin"
)

func get(t *testing.T, name string) method.Method {
	t.Helper()
	m, ok := method.DefaultRegistry.Get(name)
	require.True(t, ok, name)
	return m
}

func TestMethods_RoundTripOneBit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		kind   document.NodeKind
		line   string
	}{
		{builtin.NameTrailingSpace, document.NodeText, "some text"},
		{builtin.NameDoubleSpace, document.NodeText, "some"},
		{builtin.NameDoubleSpace, document.NodeText, "two words"},
		{builtin.NameQuotemark, document.NodeHTMLOpenTag, `<p class="x">`},
		{builtin.NameColonSpacing, document.NodeCSSProperty, "color: red;"},
	}

	for _, tt := range tests {
		m := get(t, tt.method)
		for _, bit := range []bool{false, true} {
			n := document.NewLine(tt.kind, 0, tt.line)
			capacity := m.Capacity(n)

			s := bitstream.FromBits([]bool{bit})
			if capacity == 0 {
				assert.False(t, m.Embed(s, n), tt.line)
				continue
			}
			require.Equal(t, 1, capacity, tt.line)
			require.True(t, m.Embed(s, n), tt.line)

			out := bitstream.New()
			m.Extract(out, n)
			assert.Equal(t, []bool{bit}, out.Bits(), "%s on %q", tt.method, tt.line)
		}
	}
}

func TestMethod_IgnoresNodesWithoutCarrier(t *testing.T) {
	t.Parallel()

	colon := get(t, builtin.NameColonSpacing)
	blank := document.NewLine(document.NodeText, 0, "   ")
	text := document.NewLine(document.NodeText, 0, "color: red;")

	for _, n := range []*document.Node{blank, text} {
		assert.Equal(t, 0, colon.Capacity(n))
		s := bitstream.FromBits([]bool{true})
		assert.False(t, colon.Embed(s, n))
		assert.Equal(t, 1, s.Len())

		out := bitstream.New()
		colon.Extract(out, n)
		assert.True(t, out.IsEmpty())
	}

	trailing := get(t, builtin.NameTrailingSpace)
	assert.Equal(t, 0, trailing.Capacity(blank))
	assert.False(t, trailing.Embed(bitstream.FromBits([]bool{true}), blank))
	assert.Equal(t, "   ", blank.Raw())
}

func TestMethod_CapacityDoesNotModify(t *testing.T) {
	t.Parallel()

	double := get(t, builtin.NameDoubleSpace)
	n := document.NewLine(document.NodeText, 0, "a    b   c   ")

	assert.Equal(t, 10, double.Capacity(n))
	assert.Equal(t, 2, double.Capacity(n.Normalized()))
	assert.Equal(t, "a    b   c   ", n.Raw())
}

func TestMethod_UnderflowPolicy(t *testing.T) {
	t.Parallel()

	tag := func() *document.Node {
		return document.NewLine(document.NodeHTMLOpenTag, 0, `<p class="x">`)
	}

	elementID := get(t, builtin.NameElementID)
	assert.Equal(t, method.Skip, elementID.Info().Underflow)
	n := tag()
	assert.False(t, elementID.Embed(bitstream.New(), n))
	assert.Equal(t, `<p class="x">`, n.Raw())

	quote := get(t, builtin.NameQuotemark)
	assert.Equal(t, method.Pad, quote.Info().Underflow)
	n = tag()
	assert.True(t, quote.Embed(bitstream.New(), n))
	assert.Equal(t, `<p class="x">`, n.Raw())
}

func TestKeySetMethod_RuleBlock(t *testing.T) {
	t.Parallel()

	sorting := get(t, builtin.NameSorting)
	rule := document.NewBlock(document.NodeCSSRule, 0,
		document.NewLine(document.NodeCSSSelector, 0, "p {"),
		document.NewLine(document.NodeCSSProperty, 1, "  b: 1;"),
		document.NewLine(document.NodeCSSProperty, 2, "  a: 2;"),
		document.NewLine(document.NodeCSSProperty, 3, "  c: 3;"),
		document.NewLine(document.NodeCSSClosingBrace, 4, "}"),
	)
	require.Equal(t, 2, sorting.Capacity(rule))

	require.True(t, sorting.Embed(bitstream.FromBits([]bool{false, true}), rule))
	assert.Equal(t, []string{"p {", "  c: 3;", "  b: 1;", "  a: 2;", "}"}, rule.Lines())

	out := bitstream.New()
	sorting.Extract(out, rule)
	assert.Equal(t, "01", out.String())
}

func TestAttributeMethod_EachAttribute(t *testing.T) {
	t.Parallel()

	equals := get(t, builtin.NameEqualsSpacing)
	n := document.NewLine(document.NodeHTMLOpenTag, 0, `<img src="a.png" hidden alt="x">`)
	require.Equal(t, 4, equals.Capacity(n))

	s := bitstream.FromBits([]bool{true, false, false, true})
	require.True(t, equals.Embed(s, n))
	assert.Equal(t, `<img src ="a.png" hidden alt= "x">`, n.Raw())

	out := bitstream.New()
	equals.Extract(out, n)
	assert.Equal(t, "1001", out.String())
}

func TestUnderflow_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pad", method.Pad.String())
	assert.Equal(t, "skip", method.Skip.String())
}

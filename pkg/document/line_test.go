package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/webstego/pkg/document"
)

func TestCollapse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trailing", "color: red;   \t", "color: red;"},
		{"runs", "a   b  c", "a b c"},
		{"quoted kept", `<p title="a   b">x  y</p>`, `<p title="a   b">x y</p>`},
		{"single quotes", `content: 'x  y';  `, `content: 'x  y';`},
		{"unterminated quote", `don't  stop  `, `don't  stop`},
		{"tabs kept", "a\t\tb", "a\t\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := document.Collapse(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, document.Collapse(got), "collapse must be idempotent")
		})
	}
}

func TestUnquotedSpaces(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{2, 13}, document.UnquotedSpaces(`<a href="x y" b>`))
	assert.Nil(t, document.UnquotedSpaces("abc"))
	assert.Equal(t, []int{1, 2}, document.UnquotedSpaces("a  b"))
}

func TestNewLine(t *testing.T) {
	t.Parallel()

	n := document.NewLine(document.NodeText, 3, "\t  hello   world  ")

	assert.Equal(t, "\t  ", n.Indent())
	assert.Equal(t, "hello   world  ", n.Text())
	assert.Equal(t, "hello world", n.Canonical())
	assert.Equal(t, "\t  hello   world  ", n.Raw())
	assert.Equal(t, 3, n.Index)
	assert.False(t, n.IsBlank())

	c := n.Normalized()
	assert.Equal(t, "\t  hello world", c.Raw())
	assert.Equal(t, "\t  hello   world  ", n.Raw(), "Normalized must not modify the node")

	n.Normalize()
	assert.Equal(t, "\t  hello world", n.Raw())
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, document.NewLine(document.NodeText, 0, "").IsBlank())
	assert.True(t, document.NewLine(document.NodeText, 0, "   \t ").IsBlank())
	assert.False(t, document.NewLine(document.NodeText, 0, " x").IsBlank())
	assert.False(t, document.NewBlock(document.NodeDocument, 0).IsBlank())
}

func TestLines_RoundTrip(t *testing.T) {
	t.Parallel()

	rule := document.NewBlock(document.NodeCSSRule, 1,
		document.NewLine(document.NodeCSSSelector, 1, "a,  "),
		document.NewLine(document.NodeCSSSelector, 2, "b {"),
		document.NewLine(document.NodeCSSProperty, 3, "  color:   red;  "),
		document.NewLine(document.NodeCSSClosingBrace, 4, "}"),
	)
	root := document.NewBlock(document.NodeDocument, 0,
		document.NewLine(document.NodeText, 0, "/* x */"),
		rule,
		document.NewLine(document.NodeText, 5, ""),
	)

	want := []string{"/* x */", "a,  ", "b {", "  color:   red;  ", "}", ""}
	assert.Equal(t, want, root.Lines())
	assert.Equal(t, 6, root.LineCount())
	assert.Equal(t, 4, rule.LineCount())
}

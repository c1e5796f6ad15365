package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/document"
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/parser"
)

const sampleHTML = `<!DOCTYPE html>
<html lang="en">
  <head>
    <title>Sample   page</title>
  </head>
  <body class="main">
    <h1 id="top">Hello</h1>
    <p>
      Some text with   spaces.  
    </p>
    <a href="/next"  class='link'>next</a>
  </body>
</html>`

const sampleCSS = `/* site styles */
@import url("base.css");

body,
html {
  margin: 0;
  padding:   0;
}

@media screen and (max-width: 600px) {
  p {
    font-size: 12px;
    /* small */
    color: #333;
  }
}

@font-face {
  font-family: "Web Font";
  src: url(font.woff2);
}
`

func lines(s string) []string {
	return strings.Split(s, "\n")
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		grammar grammar.Grammar
	}{
		{"html", sampleHTML, grammar.HTML},
		{"css", sampleCSS, grammar.CSS},
		{"html auto", sampleHTML, grammar.Auto},
		{"css auto", sampleCSS, grammar.Auto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := lines(tt.content)
			root, err := parser.Parse(in, tt.grammar)
			require.NoError(t, err)
			assert.Equal(t, in, root.Lines())
		})
	}
}

func TestParse_CollapseIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, content := range []string{sampleHTML, sampleCSS} {
		root, err := parser.Parse(lines(content), grammar.Auto)
		require.NoError(t, err)

		//nolint:errcheck // the callback never fails
		document.Walk(root, func(n *document.Node) error {
			if n.IsLine() {
				assert.Equal(t, n.Canonical(), document.Collapse(n.Canonical()))
			}
			return nil
		})
	}
}

func TestParseHTML_BodyBlock(t *testing.T) {
	t.Parallel()

	root, err := parser.ParseHTML(lines(sampleHTML))
	require.NoError(t, err)

	// 5 lines before <body>, the body block, </html>.
	require.Len(t, root.Children, 7)

	body := root.Children[5]
	assert.Equal(t, document.NodeHTMLBody, body.Kind)
	assert.Equal(t, 5, body.Index)
	require.Len(t, body.Children, 7)
	assert.Equal(t, document.NodeHTMLOpenTag, body.Children[0].Kind)
	assert.Equal(t, document.NodeHTMLCloseTag, body.Children[6].Kind)

	assert.Equal(t, document.NodeHTMLOpenTag, root.Children[0].Kind)
	assert.Equal(t, document.NodeHTMLCloseTag, root.Children[6].Kind)

	text := body.Children[3]
	assert.Equal(t, document.NodeText, text.Kind)
	assert.Equal(t, "Some text with spaces.", text.Canonical())

	link := body.Children[5]
	attrs := link.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, byte('\''), attrs[1].Quote)
}

func TestParseHTML_NoBody(t *testing.T) {
	t.Parallel()

	root, err := parser.ParseHTML([]string{"<div>", "text", "</div>"})
	require.NoError(t, err)
	assert.Empty(t, document.FindByKind(root, document.NodeHTMLBody))
	assert.Len(t, root.Children, 3)
}

func TestParseCSS_Structure(t *testing.T) {
	t.Parallel()

	root, err := parser.ParseCSS(lines(sampleCSS))
	require.NoError(t, err)

	kinds := make([]document.NodeKind, 0, len(root.Children))
	for _, child := range root.Children {
		kinds = append(kinds, child.Kind)
	}
	assert.Equal(t, []document.NodeKind{
		document.NodeText,      // comment
		document.NodeCSSAtRule, // @import
		document.NodeText,      // blank
		document.NodeCSSRule,   // body, html
		document.NodeText,      // blank
		document.NodeCSSMedia,  // @media
		document.NodeText,      // blank
		document.NodeCSSRule,   // @font-face
		document.NodeText,      // trailing empty line
	}, kinds)

	rule := root.Children[3]
	assert.Equal(t, []string{"margin", "padding"}, rule.Keys())
	assert.Equal(t, document.NodeCSSSelector, rule.Children[0].Kind)
	assert.Equal(t, document.NodeCSSSelector, rule.Children[1].Kind)
	assert.Equal(t, "padding: 0;", rule.Children[3].Canonical())

	media := root.Children[5]
	require.Len(t, media.Children, 3)
	assert.Equal(t, document.NodeCSSAtRule, media.Children[0].Kind)
	inner := media.Children[1]
	assert.Equal(t, document.NodeCSSRule, inner.Kind)
	assert.Equal(t, []string{"font-size", "color"}, inner.Keys())
	assert.Equal(t, document.NodeCSSClosingBrace, media.Children[2].Kind)

	fontFace := root.Children[7]
	assert.Equal(t, document.NodeCSSAtRule, fontFace.Children[0].Kind)
	assert.Equal(t, []string{"font-family", "src"}, fontFace.Keys())
}

func TestParseCSS_MultiLineComment(t *testing.T) {
	t.Parallel()

	in := []string{
		"/*",
		" * a, b,",
		" * c {",
		" */",
		"a {",
		"  /* x: y,",
		"     z { */",
		"  color: red;",
		"}",
	}
	root, err := parser.ParseCSS(in)
	require.NoError(t, err)
	assert.Equal(t, in, root.Lines())

	rule := root.Children[4]
	require.Equal(t, document.NodeCSSRule, rule.Kind)
	assert.Equal(t, []string{"color"}, rule.Keys())
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		grammar grammar.Grammar
		lines   []string
		line    int
	}{
		{"short tag", grammar.HTML, []string{"<html>", "  <", "</html>"}, 2},
		{"unterminated quote", grammar.HTML, []string{`<a href="x>`}, 1},
		{"unclosed body", grammar.HTML, []string{"<html>", "<body>", "text", "</html>"}, 2},
		{"stray body close", grammar.HTML, []string{"<html>", "</body>"}, 2},
		{"two bodies", grammar.HTML, []string{"<body>", "<body>", "</body>"}, 2},
		{"missing brace", grammar.CSS, []string{"p {", "  color: red;"}, 1},
		{"stray brace", grammar.CSS, []string{"p {", "}", "}"}, 3},
		{"dangling selector", grammar.CSS, []string{"a,", "b"}, 2},
		{"unclosed media", grammar.CSS, []string{"@media print {", "p {", "}"}, 1},
		{"nested rule", grammar.CSS, []string{"p {", "  a {", "  }", "}"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := parser.Parse(tt.lines, tt.grammar)
			require.Error(t, err)
			assert.Nil(t, root)
			require.ErrorIs(t, err, parser.ErrMalformedDocument)

			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParse_UnknownGrammar(t *testing.T) {
	t.Parallel()

	_, err := parser.Parse([]string{""}, grammar.Auto)
	require.ErrorIs(t, err, grammar.ErrUnknownGrammar)
}

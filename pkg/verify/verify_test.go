package verify_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/grammar"
	"github.com/yaklabco/webstego/pkg/method"
	_ "github.com/yaklabco/webstego/pkg/method/builtin" // Register built-in methods
	"github.com/yaklabco/webstego/pkg/parser"
	"github.com/yaklabco/webstego/pkg/stego"
	"github.com/yaklabco/webstego/pkg/verify"
)

const coverCSS = `body {
  color: red;
  margin: 0 auto;
}

@media screen and (max-width: 600px) {
  p {
    font-size: 12px !important;
  }
}`

func TestCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stego    string
		wantPos  int
		mismatch bool
	}{
		{
			name:  "identical",
			stego: coverCSS,
		},
		{
			name: "whitespace and order",
			stego: `body  { 
  margin:0  auto; 
  color:red;
}

@media  screen and (max-width:  600px) {
  p {
    font-size:  12px !important;
  }
}`,
		},
		{
			name:     "changed value",
			stego:    strings.Replace(coverCSS, "red", "blue", 1),
			mismatch: true,
			wantPos:  0,
		},
		{
			name:     "dropped important",
			stego:    strings.Replace(coverCSS, " !important", "", 1),
			mismatch: true,
			wantPos:  2,
		},
		{
			name:     "extra rule",
			stego:    coverCSS + "\n\na {\n  color: red;\n}",
			mismatch: true,
			wantPos:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := verify.CSS(coverCSS, tt.stego)
			if !tt.mismatch {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, verify.ErrNotEquivalent)
			var mismatch *verify.MismatchError
			require.True(t, errors.As(err, &mismatch))
			assert.Equal(t, tt.wantPos, mismatch.Position)
		})
	}
}

const coverHTML = `<!DOCTYPE html>
<html lang="en">
  <body>
    <div id="main" class="wrap">
      <p class="lead" title="Intro">Hello there</p>
      <img src="a.png" alt="A">
    </div>
  </body>
</html>`

func TestHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stego    string
		opts     verify.Options
		mismatch bool
	}{
		{
			name:  "identical",
			stego: coverHTML,
		},
		{
			name: "quotes spacing order",
			stego: `<!DOCTYPE html> 
<html lang='en'>
  <body> 
    <div class = "wrap" id="main">
      <p  title='Intro' class="lead">Hello  there</p> 
      <img alt= "A" src ='a.png'>
    </div>
  </body>
</html> `,
		},
		{
			name:  "id suffixes tolerated",
			stego: strings.Replace(strings.Replace(coverHTML, `id="main"`, `id="main__4711"`, 1), `<img `, `<img id="id__9" `, 1),
			opts:  verify.Options{IgnoreIDSuffixes: true},
		},
		{
			name:     "id suffixes not tolerated",
			stego:    strings.Replace(coverHTML, `id="main"`, `id="main__4711"`, 1),
			mismatch: true,
		},
		{
			name:     "changed attribute",
			stego:    strings.Replace(coverHTML, `alt="A"`, `alt="B"`, 1),
			opts:     verify.Options{IgnoreIDSuffixes: true},
			mismatch: true,
		},
		{
			name:     "changed text",
			stego:    strings.Replace(coverHTML, "Hello there", "Hello world", 1),
			mismatch: true,
		},
		{
			name:     "missing tag",
			stego:    strings.Replace(coverHTML, "      <img src=\"a.png\" alt=\"A\">\n", "", 1),
			mismatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := verify.HTML(coverHTML, tt.stego, tt.opts)
			if tt.mismatch {
				require.ErrorIs(t, err, verify.ErrNotEquivalent)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLines_AfterEmbedding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cover   string
		methods []string
	}{
		{"css", coverCSS, []string{"sorting", "colon-spacing", "trailing-space"}},
		{"css double", coverCSS, []string{"double-space"}},
		{"html", coverHTML, []string{"element-id", "sorting", "quotemark", "equals-spacing", "trailing-space"}},
		{"html double", coverHTML, []string{"double-space"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cover := strings.Split(tt.cover, "\n")
			root, err := parser.Parse(cover, grammar.Auto)
			require.NoError(t, err)

			ms, err := method.DefaultRegistry.Resolve(tt.methods)
			require.NoError(t, err)

			// All ones changes every site from its canonical form.
			available, err := stego.Capacity(root, ms...)
			require.NoError(t, err)
			ones := make([]bool, available)
			for i := range ones {
				ones[i] = true
			}
			_, err = stego.Embed(root, bitstream.FromBits(ones), ms...)
			require.NoError(t, err)
			require.NotEqual(t, cover, root.Lines())

			err = verify.Lines(grammar.Auto, cover, root.Lines(), verify.Options{IgnoreIDSuffixes: true})
			require.NoError(t, err)
		})
	}
}

func TestHTML_KeepsExistingIDSuffix(t *testing.T) {
	t.Parallel()

	page := strings.Replace(coverHTML, `id="main"`, `ID="main__12"`, 1)
	opts := verify.Options{IgnoreIDSuffixes: true}

	require.NoError(t, verify.HTML(page, page, opts))
	require.NoError(t, verify.HTML(page, strings.Replace(page, `main__12"`, `main__12__300"`, 1), opts))

	err := verify.HTML(page, strings.Replace(page, `main__12"`, `main__13"`, 1), opts)
	require.ErrorIs(t, err, verify.ErrNotEquivalent)
}

func TestLines_ElementIDLeavesLaterIDs(t *testing.T) {
	t.Parallel()

	cover := []string{
		`<html>`,
		`  <body>`,
		`    <p class="a">`,
		`      one`,
		`    </p>`,
		`    <p class="b">`,
		`      two`,
		`    </p>`,
		`    <div ID="x__12" class="a b">`,
		`      three`,
		`    </div>`,
		`  </body>`,
		`</html>`,
	}
	root, err := parser.Parse(cover, grammar.HTML)
	require.NoError(t, err)

	ms, err := method.DefaultRegistry.Resolve([]string{"element-id"})
	require.NoError(t, err)

	// 40 bits fill the first three tags; the div is never written.
	_, err = stego.Hide(root, "Z", ms...)
	require.NoError(t, err)
	stegoLines := root.Lines()
	require.Equal(t, cover[8], stegoLines[8])

	err = verify.Lines(grammar.HTML, cover, stegoLines, verify.Options{IgnoreIDSuffixes: true})
	require.NoError(t, err)
}

func TestLines_UnknownGrammar(t *testing.T) {
	t.Parallel()

	err := verify.Lines(grammar.Grammar("xml"), []string{"x"}, []string{"x"}, verify.Options{})
	require.ErrorIs(t, err, grammar.ErrUnknownGrammar)
}

package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/document"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tag, err := document.ParseTag(`<a href="/x" class = 'big'  hidden data-n=3>link</a>`)
	require.NoError(t, err)

	assert.Equal(t, "a", tag.Name)
	require.Len(t, tag.Attributes, 4)

	href := tag.Attributes[0]
	assert.Equal(t, " ", href.Lead)
	assert.Equal(t, "href", href.Key)
	assert.Equal(t, "/x", href.Value)
	assert.Equal(t, byte('"'), href.Quote)
	assert.Equal(t, `href="/x"`, href.Raw)

	class := tag.Attributes[1]
	assert.Equal(t, "big", class.Value)
	assert.Equal(t, byte('\''), class.Quote)
	assert.Equal(t, " ", class.Before)
	assert.Equal(t, " ", class.After)
	assert.Equal(t, `class = 'big'`, class.Raw)

	hidden := tag.Attributes[2]
	assert.Equal(t, "  ", hidden.Lead)
	assert.False(t, hidden.HasValue)
	assert.Equal(t, "hidden", hidden.Raw)

	n := tag.Attributes[3]
	assert.Equal(t, "3", n.Value)
	assert.Equal(t, byte(0), n.Quote)

	assert.Equal(t, ">link</a>", tag.Tail)
}

func TestParseTag_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<html>`,
		`<br/>`,
		`<br />`,
		`<img src="a.png" alt='x "y"'/>`,
		`<input type=checkbox checked>`,
		`<div`,
		`<div class="x"`,
		`<p  id="a"   class="b" >text`,
		`<!DOCTYPE html>`,
		`<!-- a comment -->`,
		`<?xml version="1.0"?>`,
	}

	for _, in := range inputs {
		tag, err := document.ParseTag(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, tag.String(), in)
	}
}

func TestParseTag_Special(t *testing.T) {
	t.Parallel()

	tag, err := document.ParseTag(`<!DOCTYPE html>`)
	require.NoError(t, err)
	assert.True(t, tag.IsSpecial())
	assert.Empty(t, tag.Attributes)
}

func TestParseTag_Errors(t *testing.T) {
	t.Parallel()

	_, err := document.ParseTag(`<`)
	require.ErrorIs(t, err, document.ErrNotATag)

	_, err = document.ParseTag(`< p>`)
	require.ErrorIs(t, err, document.ErrNotATag)

	_, err = document.ParseTag(`<a href="x>`)
	require.ErrorIs(t, err, document.ErrUnterminatedQuote)
}

func TestAttributeSetters(t *testing.T) {
	t.Parallel()

	a := document.NewAttribute("id", "main")
	assert.Equal(t, `id="main"`, a.Raw)

	a.SetQuote('\'')
	assert.Equal(t, `id='main'`, a.Raw)

	a.SetSpacing(" ", "")
	assert.Equal(t, `id ='main'`, a.Raw)

	a.SetValue("main__7")
	assert.Equal(t, `id ='main__7'`, a.Raw)

	bare := document.Attribute{Lead: " ", Key: "id", Raw: "id"}
	bare.SetValue("__1")
	assert.Equal(t, `id="__1"`, bare.Raw)
}

func TestNode_SetAttributes(t *testing.T) {
	t.Parallel()

	n := document.NewLine(document.NodeHTMLOpenTag, 0, `  <p class="a" id="b">hi`)
	attrs := n.Attributes()
	require.Len(t, attrs, 2)

	attrs[0], attrs[1] = attrs[1], attrs[0]
	attrs[0].SetQuote('\'')
	n.SetAttributes(attrs)

	assert.Equal(t, `  <p id='b' class="a">hi`, n.Raw())
}

func TestNode_SpecialTagHasNoAttributes(t *testing.T) {
	t.Parallel()

	n := document.NewLine(document.NodeHTMLOpenTag, 0, `<!DOCTYPE html>`)
	assert.Nil(t, n.Attributes())
	assert.True(t, n.Offers(document.CarrierText))
	assert.False(t, n.Offers(document.CarrierAttributeList))

	n.SetAttributes([]document.Attribute{document.NewAttribute("x", "y")})
	assert.Equal(t, `<!DOCTYPE html>`, n.Raw())
}

package verify

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// idSuffix matches the number element-id appends to an id value.
var idSuffix = regexp.MustCompile(`__\d{1,5}$`)

// token is the comparable content of one HTML token.
type token struct {
	kind  html.TokenType
	data  string
	attrs map[string]string
}

func (t token) String() string {
	if t.attrs == nil {
		return fmt.Sprintf("%s %q", t.kind, t.data)
	}
	keys := slices.Sorted(maps.Keys(t.attrs))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, t.attrs[k])
	}
	return fmt.Sprintf("%s %s [%s]", t.kind, t.data, strings.Join(parts, " "))
}

// HTML reports whether two pages tokenize to the same tags, attribute
// sets and text. Whitespace-only text is ignored and other text is
// compared with whitespace squashed.
func HTML(cover, stego string, opts Options) error {
	coverTokens, err := htmlTokens(cover)
	if err != nil {
		return fmt.Errorf("tokenizing cover: %w", err)
	}
	stegoTokens, err := htmlTokens(stego)
	if err != nil {
		return fmt.Errorf("tokenizing stego: %w", err)
	}

	for i := range max(len(coverTokens), len(stegoTokens)) {
		if i >= len(coverTokens) || i >= len(stegoTokens) {
			return mismatch(i, describe(coverTokens), describe(stegoTokens))
		}

		c, s := coverTokens[i], stegoTokens[i]
		if opts.IgnoreIDSuffixes {
			s = stripID(c, s)
		}
		if c.kind != s.kind || c.data != s.data || !maps.Equal(c.attrs, s.attrs) {
			return &MismatchError{Position: i, Cover: c.String(), Stego: s.String()}
		}
	}
	return nil
}

func describe(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}

// stripID removes one id suffix from s and drops an id attribute that
// c does not have. An id equal to the cover's was not written and is
// kept as is.
func stripID(c, s token) token {
	id, ok := s.attrs["id"]
	if !ok {
		return s
	}
	if coverID, had := c.attrs["id"]; had && coverID == id {
		return s
	}
	attrs := maps.Clone(s.attrs)
	attrs["id"] = idSuffix.ReplaceAllString(id, "")
	if _, had := c.attrs["id"]; !had && attrs["id"] == "id" {
		delete(attrs, "id")
	}
	s.attrs = attrs
	return s
}

func htmlTokens(text string) ([]token, error) {
	z := html.NewTokenizer(strings.NewReader(text))

	var tokens []token
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return tokens, nil
			}
			return nil, z.Err()
		}

		tok := z.Token()
		switch tt {
		case html.TextToken:
			data := squash(tok.Data)
			if data == "" {
				continue
			}
			tokens = append(tokens, token{kind: tt, data: data})
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			attrs := make(map[string]string, len(tok.Attr))
			for _, a := range tok.Attr {
				attrs[a.Key] = a.Val
			}
			tokens = append(tokens, token{kind: tt, data: tok.Data, attrs: attrs})
		default:
			tokens = append(tokens, token{kind: tt, data: squash(tok.Data)})
		}
	}
}

package document

import (
	"errors"
	"strings"
)

// Errors returned by ParseTag.
var (
	ErrNotATag           = errors.New("not an opening tag")
	ErrUnterminatedQuote = errors.New("unterminated attribute quote")
)

// Attribute is one attribute of an opening tag.
type Attribute struct {
	// Lead is the whitespace in front of the attribute.
	Lead string

	Key      string
	Value    string
	HasValue bool

	// Quote is the quote character around Value: '"', '\'' or 0 when
	// the value is unquoted.
	Quote byte

	// Before and After are the whitespace around the '=' sign.
	Before string
	After  string

	// Raw is the exact text of the attribute, without Lead. It is kept
	// in sync by the setters.
	Raw string
}

// SetQuote changes the quote character around the value.
func (a *Attribute) SetQuote(quote byte) {
	a.Quote = quote
	a.Raw = a.render()
}

// SetSpacing changes the whitespace around the '=' sign.
func (a *Attribute) SetSpacing(before, after string) {
	a.Before = before
	a.After = after
	a.Raw = a.render()
}

// SetValue replaces the value. A bare attribute gains a double-quoted
// value.
func (a *Attribute) SetValue(value string) {
	if !a.HasValue {
		a.HasValue = true
		a.Quote = '"'
	}
	a.Value = value
	a.Raw = a.render()
}

func (a *Attribute) render() string {
	if !a.HasValue {
		return a.Key
	}
	var b strings.Builder
	b.WriteString(a.Key)
	b.WriteString(a.Before)
	b.WriteByte('=')
	b.WriteString(a.After)
	if a.Quote != 0 {
		b.WriteByte(a.Quote)
	}
	b.WriteString(a.Value)
	if a.Quote != 0 {
		b.WriteByte(a.Quote)
	}
	return b.String()
}

// NewAttribute returns a double-quoted attribute preceded by one space.
func NewAttribute(key, value string) Attribute {
	a := Attribute{Lead: " ", Key: key, Value: value, HasValue: true, Quote: '"'}
	a.Raw = a.render()
	return a
}

// Tag is an opening tag split into its name, attributes and whatever
// follows the last attribute on the line.
type Tag struct {
	Name       string
	Attributes []Attribute

	// Tail starts right after the last attribute and runs to the end of
	// the line: the closing '>' or "/>" plus any content after it.
	Tail string
}

// IsSpecial reports whether the tag is a doctype, comment or processing
// instruction. Special tags are not tokenized into attributes.
func (t Tag) IsSpecial() bool {
	return IsSpecialTagName(t.Name)
}

// IsSpecialTagName reports whether name starts with '!' or '?'.
func IsSpecialTagName(name string) bool {
	return name != "" && (name[0] == '!' || name[0] == '?')
}

// String renders the tag back to text. An attribute with no leading
// whitespace is separated from its predecessor by one space.
func (t Tag) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, a := range t.Attributes {
		if a.Lead == "" {
			b.WriteByte(' ')
		} else {
			b.WriteString(a.Lead)
		}
		b.WriteString(a.Raw)
	}
	b.WriteString(t.Tail)
	return b.String()
}

// ParseTag splits an opening tag line body into name and attributes.
// Attributes are read left to right; each is a bare key or a key, an '='
// sign and a value that is either quoted with ' or " (chosen per
// attribute) or unquoted. A tag without a closing '>' on the same line is
// accepted; its Tail is empty.
func ParseTag(s string) (Tag, error) {
	if len(s) < 2 || s[0] != '<' {
		return Tag{}, ErrNotATag
	}

	i := 1
	for i < len(s) && !isNameEnd(s, i) {
		i++
	}
	tag := Tag{Name: s[1:i]}
	if tag.Name == "" {
		return Tag{}, ErrNotATag
	}
	if tag.IsSpecial() {
		tag.Tail = s[i:]
		return tag, nil
	}

	for {
		j := skipBlanks(s, i)
		if j == len(s) || s[j] == '>' || isSelfClose(s, j) {
			tag.Tail = s[i:]
			return tag, nil
		}

		k := j
		for k < len(s) && !isKeyEnd(s, k) {
			k++
		}
		if k == j {
			k++
		}
		attr := Attribute{Lead: s[i:j], Key: s[j:k]}

		m := skipBlanks(s, k)
		if m < len(s) && s[m] == '=' {
			p := skipBlanks(s, m+1)
			attr.HasValue = true
			attr.Before = s[k:m]
			attr.After = s[m+1 : p]

			if p < len(s) && (s[p] == '"' || s[p] == '\'') {
				end := strings.IndexByte(s[p+1:], s[p])
				if end < 0 {
					return Tag{}, ErrUnterminatedQuote
				}
				attr.Quote = s[p]
				attr.Value = s[p+1 : p+1+end]
				k = p + end + 2
			} else {
				v := p
				for v < len(s) && s[v] != ' ' && s[v] != '\t' && s[v] != '>' {
					v++
				}
				attr.Value = s[p:v]
				k = v
			}
		}

		attr.Raw = s[j:k]
		tag.Attributes = append(tag.Attributes, attr)
		i = k
	}
}

func isNameEnd(s string, i int) bool {
	switch s[i] {
	case ' ', '\t', '>':
		return true
	case '/':
		return i > 1
	default:
		return false
	}
}

func isKeyEnd(s string, i int) bool {
	switch s[i] {
	case ' ', '\t', '=', '>':
		return true
	default:
		return isSelfClose(s, i)
	}
}

func isSelfClose(s string, i int) bool {
	return s[i] == '/' && i+1 < len(s) && s[i+1] == '>'
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// Tag parses the body of an opening tag line. ok is false for any other
// node or when the body no longer parses.
func (n *Node) Tag() (Tag, bool) {
	if n.Kind != NodeHTMLOpenTag {
		return Tag{}, false
	}
	tag, err := ParseTag(n.body)
	if err != nil {
		return Tag{}, false
	}
	return tag, true
}

// Attributes returns the attributes of an opening tag line, in order.
func (n *Node) Attributes() []Attribute {
	tag, ok := n.Tag()
	if !ok {
		return nil
	}
	return tag.Attributes
}

// SetAttributes replaces the attributes of an opening tag line and
// re-renders its body. The tag name and tail are kept.
func (n *Node) SetAttributes(attrs []Attribute) {
	tag, ok := n.Tag()
	if !ok || tag.IsSpecial() {
		return
	}
	tag.Attributes = attrs
	n.body = tag.String()
}

package document

import "strings"

// splitIndent separates leading spaces and tabs from the rest of raw.
func splitIndent(raw string) (string, string) {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	return raw[:i], raw[i:]
}

// Collapse returns s with trailing spaces and tabs removed and every run
// of spaces outside a quoted section reduced to a single space. Quoted
// sections open and close on a matching ' or " character. Collapse is
// idempotent.
func Collapse(s string) string {
	s = strings.TrimRight(s, " \t")

	var b strings.Builder
	b.Grow(len(s))
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote == 0 && c == ' ' && i > 0 && s[i-1] == ' ' {
			continue
		}
		quote = nextQuote(quote, c)
		b.WriteByte(c)
	}
	return b.String()
}

// UnquotedSpaces returns the byte offsets of every space in s that lies
// outside a quoted section, in ascending order.
func UnquotedSpaces(s string) []int {
	var out []int
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote == 0 && c == ' ' {
			out = append(out, i)
		}
		quote = nextQuote(quote, c)
	}
	return out
}

// nextQuote advances the quote state across c.
func nextQuote(quote, c byte) byte {
	switch {
	case quote == 0 && (c == '"' || c == '\''):
		return c
	case quote != 0 && c == quote:
		return 0
	default:
		return quote
	}
}

// Raw returns the line exactly as it will be serialized.
func (n *Node) Raw() string {
	return n.indent + n.body
}

// Indent returns the leading whitespace of a line.
func (n *Node) Indent() string {
	return n.indent
}

// Text returns the current body of a line, without the indent.
func (n *Node) Text() string {
	return n.body
}

// SetText replaces the body of a line. The indent is kept.
func (n *Node) SetText(text string) {
	n.body = text
}

// Canonical returns the whitespace-collapsed body computed at parse time.
func (n *Node) Canonical() string {
	return n.canonical
}

// IsBlank reports whether a line has no content besides whitespace.
// Blocks are never blank.
func (n *Node) IsBlank() bool {
	return n.IsLine() && n.canonical == ""
}

// Normalize resets a line's body to its canonical form. It is a no-op
// for blocks.
func (n *Node) Normalize() {
	if n.IsLine() {
		n.body = n.canonical
	}
}

// Normalized returns n as it would be after Normalize, without
// modifying n. Blocks are returned as is.
func (n *Node) Normalized() *Node {
	if n.IsBlock() {
		return n
	}
	c := *n
	c.body = c.canonical
	return &c
}

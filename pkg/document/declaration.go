package document

import "strings"

// Declaration is a CSS property line split at its first colon.
type Declaration struct {
	// Key is the text left of the colon, exactly as written.
	Key string

	// Gap is the whitespace right after the colon.
	Gap string

	// Value runs from the end of Gap to the terminating semicolon, or to
	// the end of the line when there is none.
	Value string

	Terminated bool

	// Trail is whatever follows the semicolon.
	Trail string
}

// Name returns the property name: the trimmed, lower-cased key.
func (d Declaration) Name() string {
	return strings.ToLower(strings.TrimSpace(d.Key))
}

// String renders the declaration back to text.
func (d Declaration) String() string {
	var b strings.Builder
	b.WriteString(d.Key)
	b.WriteByte(':')
	b.WriteString(d.Gap)
	b.WriteString(d.Value)
	if d.Terminated {
		b.WriteByte(';')
	}
	b.WriteString(d.Trail)
	return b.String()
}

// ParseDeclaration splits s at its first colon. ok is false when s has no
// colon. The terminating semicolon is the first one outside a quoted
// section.
func ParseDeclaration(s string) (Declaration, bool) {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return Declaration{}, false
	}

	d := Declaration{Key: s[:colon]}
	rest := s[colon+1:]
	gap := skipBlanks(rest, 0)
	d.Gap = rest[:gap]
	rest = rest[gap:]

	var quote byte
	for i := 0; i < len(rest); i++ {
		if quote == 0 && rest[i] == ';' {
			d.Value = rest[:i]
			d.Terminated = true
			d.Trail = rest[i+1:]
			return d, true
		}
		quote = nextQuote(quote, rest[i])
	}
	d.Value = rest
	return d, true
}

// Declaration returns the declaration of a CSS property line.
func (n *Node) Declaration() (Declaration, bool) {
	if n.Kind != NodeCSSProperty {
		return Declaration{}, false
	}
	return ParseDeclaration(n.body)
}

// SetDeclaration replaces the body of a CSS property line.
func (n *Node) SetDeclaration(d Declaration) {
	if n.Kind != NodeCSSProperty {
		return
	}
	n.body = d.String()
}

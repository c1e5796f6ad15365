// Package document holds the tree a structural parse produces from an HTML
// or CSS file, and the carrier capabilities each node offers for hiding
// bits.
//
// A tree is made of blocks and lines. Blocks own their children
// exclusively; there are no parent pointers. Lines keep the exact text
// they were parsed from so that an unmodified tree serializes back to the
// original bytes.
package document

import "fmt"

// NodeKind classifies the type of a node.
type NodeKind uint8

// Node kinds for blocks and lines.
const (
	NodeDocument NodeKind = iota

	// Blocks.
	NodeHTMLBody
	NodeCSSRule
	NodeCSSMedia

	// Lines.
	NodeText
	NodeHTMLOpenTag
	NodeHTMLCloseTag
	NodeCSSSelector
	NodeCSSProperty
	NodeCSSClosingBrace
	NodeCSSAtRule
)

var kindNames = [...]string{
	NodeDocument:        "Document",
	NodeHTMLBody:        "HTMLBody",
	NodeCSSRule:         "CSSRule",
	NodeCSSMedia:        "CSSMedia",
	NodeText:            "Text",
	NodeHTMLOpenTag:     "HTMLOpenTag",
	NodeHTMLCloseTag:    "HTMLCloseTag",
	NodeCSSSelector:     "CSSSelector",
	NodeCSSProperty:     "CSSProperty",
	NodeCSSClosingBrace: "CSSClosingBrace",
	NodeCSSAtRule:       "CSSAtRule",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// Node is a block or a line of a parsed document.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Index is the zero-based line number the node starts at. It is
	// assigned once at parse time and never renumbered.
	Index int

	// Children are the parts a block owns, in document order.
	// Always empty for lines.
	Children []*Node

	// Line state. Only set for lines.
	indent    string
	body      string
	canonical string
}

// NewBlock creates a block node owning children.
func NewBlock(kind NodeKind, index int, children ...*Node) *Node {
	return &Node{Kind: kind, Index: index, Children: children}
}

// NewLine creates a line node from raw text. The leading spaces and tabs
// are kept verbatim as the indent; the rest is the body. The canonical
// body is computed here, once.
func NewLine(kind NodeKind, index int, raw string) *Node {
	indent, body := splitIndent(raw)
	return &Node{
		Kind:      kind,
		Index:     index,
		indent:    indent,
		body:      body,
		canonical: Collapse(body),
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = Clone(child)
		}
	}
	return &c
}

// IsBlock reports whether the node is a block.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeHTMLBody, NodeCSSRule, NodeCSSMedia:
		return true
	default:
		return false
	}
}

// IsLine reports whether the node is a line.
func (n *Node) IsLine() bool {
	return !n.IsBlock()
}

// Append adds children to the end of a block.
func (n *Node) Append(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Replace swaps the children in [from, to) for a single node.
func (n *Node) Replace(from, to int, with *Node) {
	children := make([]*Node, 0, len(n.Children)-(to-from)+1)
	children = append(children, n.Children[:from]...)
	children = append(children, with)
	children = append(children, n.Children[to:]...)
	n.Children = children
}

// Lines serializes the subtree rooted at n, one entry per line.
func (n *Node) Lines() []string {
	var out []string
	//nolint:errcheck // the callback never fails
	Walk(n, func(node *Node) error {
		if node.IsLine() {
			out = append(out, node.Raw())
		}
		return nil
	})
	return out
}

// LineCount returns the number of lines in the subtree rooted at n.
func (n *Node) LineCount() int {
	if n.IsLine() {
		return 1
	}
	count := 0
	for _, child := range n.Children {
		count += child.LineCount()
	}
	return count
}

package document

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the subtree rooted at n as an indented tree, one line per
// node, for debugging a structural parse.
func Dump(n *Node) string {
	tree := treeprint.NewWithRoot(label(n))
	for _, child := range n.Children {
		dumpNode(tree, child)
	}
	return tree.String()
}

func dumpNode(tree treeprint.Tree, n *Node) {
	if n.IsLine() {
		tree.AddNode(label(n))
		return
	}
	branch := tree.AddBranch(label(n))
	for _, child := range n.Children {
		dumpNode(branch, child)
	}
}

func label(n *Node) string {
	if n.IsBlock() {
		return fmt.Sprintf("%s (line %d, %d lines)", n.Kind, n.Index+1, n.LineCount())
	}

	var carriers []string
	for _, c := range n.Carriers() {
		carriers = append(carriers, c.String())
	}
	suffix := ""
	if len(carriers) > 0 {
		suffix = " [" + strings.Join(carriers, ",") + "]"
	}
	return fmt.Sprintf("%d %s %q%s", n.Index+1, n.Kind, n.canonical, suffix)
}

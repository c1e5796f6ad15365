package document

import "strings"

// Keys returns the natural keys of a reorderable key set, in current
// order: the lower-cased attribute names of an opening tag, or the
// property names of a rule block. A rule block holding a property line
// without a terminating semicolon returns nil, since moving that line
// would change how the block parses.
func (n *Node) Keys() []string {
	switch n.Kind {
	case NodeHTMLOpenTag:
		attrs := n.Attributes()
		if len(attrs) == 0 {
			return nil
		}
		keys := make([]string, len(attrs))
		for i, a := range attrs {
			keys[i] = strings.ToLower(a.Key)
		}
		return keys

	case NodeCSSRule:
		var keys []string
		for _, child := range n.Children {
			if child.Kind != NodeCSSProperty {
				continue
			}
			d, ok := child.Declaration()
			if !ok || !d.Terminated {
				return nil
			}
			keys = append(keys, d.Name())
		}
		return keys

	default:
		return nil
	}
}

// SetKeys reorders the key set so its keys appear in the given order.
// keys must be a permutation of Keys() with no duplicates; otherwise
// SetKeys does nothing. For a rule block only the property lines move;
// every other child keeps its slot.
func (n *Node) SetKeys(keys []string) {
	current := n.Keys()
	order, ok := permutation(current, keys)
	if !ok {
		return
	}

	switch n.Kind {
	case NodeHTMLOpenTag:
		attrs := n.Attributes()
		reordered := make([]Attribute, len(attrs))
		for i, from := range order {
			reordered[i] = attrs[from]
		}
		n.SetAttributes(reordered)

	case NodeCSSRule:
		var slots []int
		for i, child := range n.Children {
			if child.Kind == NodeCSSProperty {
				slots = append(slots, i)
			}
		}
		children := make([]*Node, len(n.Children))
		copy(children, n.Children)
		for i, from := range order {
			children[slots[i]] = n.Children[slots[from]]
		}
		n.Children = children
	}
}

// permutation returns, for each position of want, the index in have that
// holds the same key.
func permutation(have, want []string) ([]int, bool) {
	if len(have) != len(want) || len(have) == 0 {
		return nil, false
	}
	index := make(map[string]int, len(have))
	for i, k := range have {
		index[k] = i
	}
	if len(index) != len(have) {
		return nil, false
	}
	order := make([]int, len(want))
	seen := make(map[int]bool, len(want))
	for i, k := range want {
		from, ok := index[k]
		if !ok || seen[from] {
			return nil, false
		}
		seen[from] = true
		order[i] = from
	}
	return order, true
}

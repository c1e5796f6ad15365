package document

// CarrierKind names a type of value a node can hide bits in.
type CarrierKind uint8

// Carrier kinds.
const (
	// CarrierText is a line's body.
	CarrierText CarrierKind = iota + 1

	// CarrierAttribute is each attribute of an opening tag, one at a time.
	CarrierAttribute

	// CarrierAttributeList is the attributes of an opening tag as a whole.
	CarrierAttributeList

	// CarrierKeySet is anything whose parts have a natural key and can be
	// reordered: the attributes of an opening tag or the property lines
	// of a rule block.
	CarrierKeySet

	// CarrierDeclaration is a CSS property line.
	CarrierDeclaration
)

func (c CarrierKind) String() string {
	switch c {
	case CarrierText:
		return "text"
	case CarrierAttribute:
		return "attribute"
	case CarrierAttributeList:
		return "attribute-list"
	case CarrierKeySet:
		return "key-set"
	case CarrierDeclaration:
		return "declaration"
	default:
		return "unknown"
	}
}

// Offers reports whether the node can carry bits in a value of the given
// kind. Blank lines offer nothing. Special tags (doctype, comments) offer
// only their text.
func (n *Node) Offers(carrier CarrierKind) bool {
	if n.IsBlank() {
		return false
	}

	switch n.Kind {
	case NodeHTMLOpenTag:
		switch carrier {
		case CarrierText:
			return true
		case CarrierAttribute, CarrierAttributeList, CarrierKeySet:
			tag, ok := n.Tag()
			return ok && !tag.IsSpecial()
		default:
			return false
		}

	case NodeCSSProperty:
		return carrier == CarrierText || carrier == CarrierDeclaration

	case NodeCSSRule:
		return carrier == CarrierKeySet

	case NodeText, NodeHTMLCloseTag, NodeCSSSelector, NodeCSSClosingBrace, NodeCSSAtRule:
		return carrier == CarrierText

	default:
		return false
	}
}

// Carriers returns every carrier kind the node offers.
func (n *Node) Carriers() []CarrierKind {
	var out []CarrierKind
	for c := CarrierText; c <= CarrierDeclaration; c++ {
		if n.Offers(c) {
			out = append(out, c)
		}
	}
	return out
}

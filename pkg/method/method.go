// Package method defines how a steganographic method plugs into a
// document: a Codec that writes bits into and reads bits out of one type
// of carrier value, bound to the nodes that offer that carrier.
package method

import (
	"github.com/yaklabco/webstego/pkg/bitstream"
	"github.com/yaklabco/webstego/pkg/document"
)

// Underflow says what a method does at a carrier site once the stream
// has run dry.
type Underflow uint8

const (
	// Pad keeps embedding, using bitstream.Filler for the missing bits.
	Pad Underflow = iota

	// Skip leaves the site untouched.
	Skip
)

func (u Underflow) String() string {
	if u == Skip {
		return "skip"
	}
	return "pad"
}

// Info describes a method.
type Info struct {
	// Name is the canonical name (e.g., "trailing-space").
	Name string

	// Aliases are alternate names accepted by the registry.
	Aliases []string

	// Description is a one-line summary of the encoding.
	Description string

	// Carrier is the carrier kind the method writes to. It is set by the
	// New*Method constructors.
	Carrier document.CarrierKind

	// Underflow is the policy once the stream is empty.
	Underflow Underflow

	// Order places the method among several active on one node; lower
	// runs first, for embedding and extraction alike.
	Order int

	// Exclusive methods cannot share a run with any other method.
	Exclusive bool
}

// Codec is a pair of pure functions over one carrier value type. Decode
// only appends to the stream; it never changes the value.
type Codec[T any] interface {
	// Encode takes bits from s and returns value with those bits written.
	Encode(s *bitstream.Stream, value T) T

	// Decode appends the bits held in value to s.
	Decode(s *bitstream.Stream, value T)

	// Capacity returns how many bits value can hold.
	Capacity(value T) int
}

// Method embeds into and extracts from the document nodes that offer its
// carrier.
type Method interface {
	Info() Info

	// Capacity returns how many bits the node can carry in its current
	// form. Nodes that do not offer the carrier have none.
	Capacity(n *document.Node) int

	// Embed writes bits taken from s into n. It reports whether the node
	// was written; a node is left alone when it has no capacity or when
	// the stream is empty and the method skips on underflow.
	Embed(s *bitstream.Stream, n *document.Node) bool

	// Extract appends the bits held in n to s.
	Extract(s *bitstream.Stream, n *document.Node)
}

// Applies reports whether m would write to n given the bits left in s.
func Applies(m Method, s *bitstream.Stream, n *document.Node) bool {
	info := m.Info()
	if !n.Offers(info.Carrier) {
		return false
	}
	if info.Underflow == Skip && s.IsEmpty() {
		return false
	}
	return m.Capacity(n) > 0
}

// binding ties a codec to the node accessors of its carrier.
type binding[T any] struct {
	info  Info
	codec Codec[T]
	get   func(*document.Node) T
	set   func(*document.Node, T)
}

func newBinding[T any](
	info Info,
	carrier document.CarrierKind,
	codec Codec[T],
	get func(*document.Node) T,
	set func(*document.Node, T),
) *binding[T] {
	info.Carrier = carrier
	return &binding[T]{info: info, codec: codec, get: get, set: set}
}

func (b *binding[T]) Info() Info {
	return b.info
}

func (b *binding[T]) Capacity(n *document.Node) int {
	if !n.Offers(b.info.Carrier) {
		return 0
	}
	return b.codec.Capacity(b.get(n))
}

func (b *binding[T]) Embed(s *bitstream.Stream, n *document.Node) bool {
	if !Applies(b, s, n) {
		return false
	}
	b.set(n, b.codec.Encode(s, b.get(n)))
	return true
}

func (b *binding[T]) Extract(s *bitstream.Stream, n *document.Node) {
	if !n.Offers(b.info.Carrier) {
		return
	}
	b.codec.Decode(s, b.get(n))
}

// NewTextMethod binds a codec to the text of every non-blank line.
func NewTextMethod(info Info, codec Codec[string]) Method {
	return newBinding(info, document.CarrierText, codec,
		(*document.Node).Text, (*document.Node).SetText)
}

// NewAttributeMethod binds a codec to each attribute of every opening
// tag, in attribute order.
func NewAttributeMethod(info Info, codec Codec[document.Attribute]) Method {
	return newBinding[[]document.Attribute](info, document.CarrierAttribute, eachAttribute{codec},
		(*document.Node).Attributes, (*document.Node).SetAttributes)
}

// NewAttributeListMethod binds a codec to the attribute list of every
// opening tag.
func NewAttributeListMethod(info Info, codec Codec[[]document.Attribute]) Method {
	return newBinding(info, document.CarrierAttributeList, codec,
		(*document.Node).Attributes, (*document.Node).SetAttributes)
}

// NewKeySetMethod binds a codec to every reorderable key set: tag
// attributes and rule block properties.
func NewKeySetMethod(info Info, codec Codec[[]string]) Method {
	return newBinding(info, document.CarrierKeySet, codec,
		(*document.Node).Keys, (*document.Node).SetKeys)
}

// NewDeclarationMethod binds a codec to every CSS property line.
func NewDeclarationMethod(info Info, codec Codec[document.Declaration]) Method {
	get := func(n *document.Node) document.Declaration {
		d, _ := n.Declaration()
		return d
	}
	return newBinding(info, document.CarrierDeclaration, codec,
		get, (*document.Node).SetDeclaration)
}

// eachAttribute applies an attribute codec to every attribute of a list.
type eachAttribute struct {
	codec Codec[document.Attribute]
}

func (e eachAttribute) Encode(s *bitstream.Stream, attrs []document.Attribute) []document.Attribute {
	out := make([]document.Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = e.codec.Encode(s, a)
	}
	return out
}

func (e eachAttribute) Decode(s *bitstream.Stream, attrs []document.Attribute) {
	for _, a := range attrs {
		e.codec.Decode(s, a)
	}
}

func (e eachAttribute) Capacity(attrs []document.Attribute) int {
	total := 0
	for _, a := range attrs {
		total += e.codec.Capacity(a)
	}
	return total
}

package doctree

import "strings"

// Kind identifies what a Node represents.
type Kind int

const (
	DocumentNode Kind = iota
	ElementNode
	TextNode
	CommentNode
	DoctypeNode
	// FragmentNode is a transparent sequence of nodes. It serializes as its
	// children and is used as a splice point inside a parent's content.
	FragmentNode
)

// Attr is a single element attribute. A true boolean attribute is present
// with an empty value; a false one is simply absent.
type Attr struct {
	Key string
	Val string
}

// Node is a mutable document tree node.
type Node struct {
	Kind  Kind
	Tag   string // Element name (empty for non-elements)
	Text  string // Text, comment or doctype payload
	Attrs []Attr // Source order is preserved

	// Content is the ordered child sequence. nil means the node carries no
	// child sequence at all.
	Content []*Node
}

// Element builds an element node. children may be empty; the node still gets
// a non-nil content sequence.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	content := make([]*Node, 0, len(children))
	content = append(content, children...)
	return &Node{Kind: ElementNode, Tag: tag, Attrs: attrs, Content: content}
}

// Void builds an element without a child sequence (input, br, img...).
func Void(tag string, attrs []Attr) *Node {
	return &Node{Kind: ElementNode, Tag: tag, Attrs: attrs}
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Kind: TextNode, Text: s}
}

// Fragment builds a transparent node sequence.
func Fragment(children ...*Node) *Node {
	content := make([]*Node, 0, len(children))
	content = append(content, children...)
	return &Node{Kind: FragmentNode, Content: content}
}

// Document wraps top-level nodes in a document root.
func Document(children ...*Node) *Node {
	content := make([]*Node, 0, len(children))
	content = append(content, children...)
	return &Node{Kind: DocumentNode, Content: content}
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == ElementNode
}

// HasContent reports whether n carries a child sequence.
func (n *Node) HasContent() bool {
	return n != nil && n.Content != nil
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute, keeping its original position.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	var buf strings.Builder
	var extract func(*Node)
	extract = func(n *Node) {
		if n == nil {
			return
		}
		if n.Kind == TextNode {
			buf.WriteString(n.Text)
		}
		for _, c := range n.Content {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if n.Content != nil {
		c.Content = CloneAll(n.Content)
	}
	return c
}

// CloneAll deep-copies a node sequence.
func CloneAll(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Clone())
	}
	return out
}

// InsertAt splices n into seq at index i. i is clamped to [0, len(seq)].
func InsertAt(seq []*Node, i int, n *Node) []*Node {
	if i < 0 {
		i = 0
	}
	if i > len(seq) {
		i = len(seq)
	}
	seq = append(seq, nil)
	copy(seq[i+1:], seq[i:])
	seq[i] = n
	return seq
}

// Append adds child at the end of n's content, creating it if absent.
func (n *Node) Append(child *Node) {
	if n.Content == nil {
		n.Content = []*Node{}
	}
	n.Content = append(n.Content, child)
}

// Prepend adds child at the start of n's content, creating it if absent.
func (n *Node) Prepend(child *Node) {
	n.Content = InsertAt(n.Content, 0, child)
}

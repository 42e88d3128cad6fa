package outline

// openList is one open nesting depth: the siblings collected so far and the
// node that will own them once the depth is rolled up. parent is nil for the
// top level.
type openList struct {
	parent *Node
	items  []*Node
}

// Builder assembles an outline from headings observed in document order.
// A Builder is not safe for concurrent use.
type Builder struct {
	stack []*openList
	prev  *Node
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Observe adds the next heading.
//
// Deeper headings open a new sibling list under the previous node, whatever
// the gap in levels. Shallower headings roll open lists up until the previous
// node is no deeper than the new one, then either join it as a sibling or
// open a new level under it.
func (b *Builder) Observe(ev HeadingEvent) {
	n := &Node{Level: ev.Level, Anchor: ev.Anchor, Label: ev.Label}

	if b.prev == nil {
		b.stack = []*openList{{}}
		b.appendSibling(n)
		return
	}

	switch {
	case n.Level > b.prev.Level:
		b.push(n)
	case n.Level < b.prev.Level:
		for b.prev.Level > n.Level && len(b.stack) > 1 {
			b.rollup()
		}
		if b.prev.Level < n.Level {
			b.push(n)
		} else {
			// Equal level, or shallower than everything still open at the
			// top: both land in the deepest open list.
			b.appendSibling(n)
		}
	default:
		b.appendSibling(n)
	}
}

// Finalize closes every open level and returns the finished forest. The
// Builder is reset and may be reused.
func (b *Builder) Finalize() []*Node {
	if len(b.stack) == 0 {
		return nil
	}
	for len(b.stack) > 1 {
		b.rollup()
	}
	forest := b.stack[0].items
	b.stack = nil
	b.prev = nil
	return forest
}

// push opens a new depth owned by prev. If prev already has children (from an
// earlier rollup) the new depth continues that list instead of replacing it.
func (b *Builder) push(n *Node) {
	owner := b.prev
	list := &openList{parent: owner, items: owner.Children}
	owner.Children = nil
	b.stack = append(b.stack, list)
	b.appendSibling(n)
}

// appendSibling adds n to the deepest open list.
func (b *Builder) appendSibling(n *Node) {
	top := b.stack[len(b.stack)-1]
	top.items = append(top.items, n)
	b.prev = n
}

// rollup closes the deepest open list, attaching its items to the owning
// node, which becomes prev. Each call shrinks the stack by one.
func (b *Builder) rollup() {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	top.parent.Children = top.items
	b.prev = top.parent
}

// Build runs a Builder over events and returns the forest.
func Build(events []HeadingEvent) []*Node {
	b := NewBuilder()
	for _, ev := range events {
		b.Observe(ev)
	}
	return b.Finalize()
}

// Package outline rebuilds a nested table of contents from a flat,
// document-order stream of headings.
package outline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/tocgraft/internal/doctree"
)

// HeadingEvent is one qualifying heading, in document order.
type HeadingEvent struct {
	Level  int
	Anchor string
	Label  []*doctree.Node
}

// Node is one entry of the finished outline.
type Node struct {
	Level    int
	Anchor   string
	Label    []*doctree.Node
	Children []*Node
}

// Title returns the plain text of the node's label.
func (n *Node) Title() string {
	var buf strings.Builder
	for _, l := range n.Label {
		buf.WriteString(l.TextContent())
	}
	return strings.TrimSpace(buf.String())
}

var headingTag = regexp.MustCompile(`^h[2-6]$`)

// HeadingFromNode turns a document node into a HeadingEvent. Only h2-h6
// elements with a non-empty id and non-empty rendered content qualify; all
// other nodes report false and are invisible to the builder.
func HeadingFromNode(n *doctree.Node) (HeadingEvent, bool) {
	if !n.IsElement() || !headingTag.MatchString(n.Tag) {
		return HeadingEvent{}, false
	}
	id, _ := n.Attr("id")
	if id == "" || !hasRenderedContent(n.Content) {
		return HeadingEvent{}, false
	}
	level, _ := strconv.Atoi(n.Tag[1:])
	return HeadingEvent{
		Level:  level,
		Anchor: id,
		Label:  doctree.CloneAll(n.Content),
	}, true
}

func hasRenderedContent(content []*doctree.Node) bool {
	for _, c := range content {
		switch c.Kind {
		case doctree.TextNode:
			if strings.TrimSpace(c.Text) != "" {
				return true
			}
		case doctree.ElementNode:
			return true
		case doctree.FragmentNode:
			if hasRenderedContent(c.Content) {
				return true
			}
		}
	}
	return false
}

// Walk visits every node of the forest pre-order (node, then its children).
func Walk(forest []*Node, fn func(n *Node, depth int)) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
}

// Count returns the number of nodes in the forest.
func Count(forest []*Node) int {
	total := 0
	Walk(forest, func(*Node, int) { total++ })
	return total
}

// Depth returns the nesting depth of the forest (0 when empty).
func Depth(forest []*Node) int {
	deepest := 0
	Walk(forest, func(_ *Node, depth int) {
		if depth+1 > deepest {
			deepest = depth + 1
		}
	})
	return deepest
}

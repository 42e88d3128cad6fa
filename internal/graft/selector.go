// Package graft locates the table-of-contents insertion point in a document
// and renders the outline into document nodes.
package graft

import (
	"fmt"
	"strings"

	"github.com/dgallion1/tocgraft/internal/doctree"
)

// SelectorKind is the matching mode chosen by a selector's first character.
type SelectorKind int

const (
	TagSelector   SelectorKind = iota // exact tag name
	ClassSelector                     // ".name": class attribute contains name
	IDSelector                        // "#name": id attribute equals name
)

func (k SelectorKind) String() string {
	switch k {
	case ClassSelector:
		return "class"
	case IDSelector:
		return "id"
	default:
		return "tag"
	}
}

// Selector picks the node next to which the table of contents goes.
type Selector struct {
	Kind SelectorKind
	Name string
}

// ParseSelector reads ".class", "#id" or a bare tag name.
func ParseSelector(s string) (Selector, error) {
	if s == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}
	var sel Selector
	switch s[0] {
	case '.':
		sel = Selector{Kind: ClassSelector, Name: s[1:]}
	case '#':
		sel = Selector{Kind: IDSelector, Name: s[1:]}
	default:
		sel = Selector{Kind: TagSelector, Name: s}
	}
	if sel.Name == "" {
		return Selector{}, fmt.Errorf("selector %q has no %s name", s, sel.Kind)
	}
	return sel, nil
}

// Match reports whether n satisfies the selector. Class matching is a plain
// substring test on the whole class attribute, so ".bc" matches "abcd".
func (s Selector) Match(n *doctree.Node) bool {
	if !n.IsElement() {
		return false
	}
	switch s.Kind {
	case ClassSelector:
		class, _ := n.Attr("class")
		return class != "" && strings.Contains(class, s.Name)
	case IDSelector:
		id, _ := n.Attr("id")
		return id != "" && id == s.Name
	default:
		return n.Tag == s.Name
	}
}

func (s Selector) String() string {
	switch s.Kind {
	case ClassSelector:
		return "." + s.Name
	case IDSelector:
		return "#" + s.Name
	default:
		return s.Name
	}
}

package graft

import (
	"fmt"

	"github.com/dgallion1/tocgraft/internal/doctree"
)

// Position says where the placeholder goes relative to the matched node.
type Position int

const (
	After Position = iota
	Before
	AfterChildren
	BeforeChildren
)

var positionNames = map[string]Position{
	"after":          After,
	"before":         Before,
	"afterChildren":  AfterChildren,
	"beforeChildren": BeforeChildren,
}

// ParsePosition maps a configuration key to a Position.
func ParsePosition(name string) (Position, error) {
	p, ok := positionNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown insert position %q (want after, before, afterChildren or beforeChildren)", name)
	}
	return p, nil
}

func (p Position) String() string {
	switch p {
	case Before:
		return "before"
	case AfterChildren:
		return "afterChildren"
	case BeforeChildren:
		return "beforeChildren"
	default:
		return "after"
	}
}

// Insert splices placeholder relative to parent.Content[i].
//
// Before lands at max(0, i-1): one slot earlier than directly in front of
// the match whenever i > 0.
func (p Position) Insert(parent *doctree.Node, i int, placeholder *doctree.Node) {
	switch p {
	case After:
		parent.Content = doctree.InsertAt(parent.Content, i+1, placeholder)
	case Before:
		parent.Content = doctree.InsertAt(parent.Content, max(0, i-1), placeholder)
	case AfterChildren:
		parent.Content[i].Append(placeholder)
	case BeforeChildren:
		parent.Content[i].Prepend(placeholder)
	}
}

// InsertionSpec is the validated insert option: where, next to what.
type InsertionSpec struct {
	Position Position
	Selector Selector
}

func (s InsertionSpec) String() string {
	return s.Position.String() + " " + s.Selector.String()
}

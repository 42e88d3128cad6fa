package graft

import "github.com/dgallion1/tocgraft/internal/doctree"

// Grafter finds the first node matching an InsertionSpec during a document
// walk and reserves a placeholder next to it. One Grafter serves one
// document.
type Grafter struct {
	spec        InsertionSpec
	placeholder *doctree.Node
	holder      *doctree.Node // node whose content holds the placeholder
	found       bool
}

// NewGrafter returns a Grafter for spec.
func NewGrafter(spec InsertionSpec) *Grafter {
	return &Grafter{spec: spec}
}

// FindInsertionPoint scans n's children left to right and, on the first
// match, splices an empty placeholder at the configured position. Once a
// match has been made every later call is a no-op returning false.
func (g *Grafter) FindInsertionPoint(n *doctree.Node) bool {
	if g.found || !n.HasContent() {
		return false
	}
	for i, child := range n.Content {
		if !g.spec.Selector.Match(child) {
			continue
		}
		g.placeholder = doctree.Fragment()
		g.spec.Position.Insert(n, i, g.placeholder)
		g.holder = n
		if g.spec.Position == AfterChildren || g.spec.Position == BeforeChildren {
			g.holder = child
		}
		g.found = true
		return true
	}
	return false
}

// Found reports whether an insertion point was reserved.
func (g *Grafter) Found() bool {
	return g.found
}

// Fill moves rendered's content into the reserved placeholder. rendered is
// typically the fragment returned by Render. It does nothing when no
// insertion point was found.
func (g *Grafter) Fill(rendered *doctree.Node) {
	if g.placeholder == nil || rendered == nil {
		return
	}
	if rendered.Kind == doctree.FragmentNode {
		g.placeholder.Content = append(g.placeholder.Content, rendered.Content...)
		return
	}
	g.placeholder.Content = append(g.placeholder.Content, rendered)
}

// Discard removes the placeholder from the document again, leaving it as it
// was before the walk.
func (g *Grafter) Discard() {
	if g.holder == nil {
		return
	}
	kept := g.holder.Content[:0]
	for _, c := range g.holder.Content {
		if c != g.placeholder {
			kept = append(kept, c)
		}
	}
	g.holder.Content = kept
	g.holder = nil
	g.placeholder = nil
}

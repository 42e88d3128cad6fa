// Package toc builds a table of contents from a document's headings and
// grafts it back into the document in a single walk.
package toc

import (
	"fmt"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/dgallion1/tocgraft/internal/graft"
	"github.com/dgallion1/tocgraft/internal/outline"
)

// Transformer holds validated, immutable settings. It is safe to share
// between goroutines; each Transform call works on its own document.
type Transformer struct {
	spec                  graft.InsertionSpec
	title                 string
	toggle                *graft.Toggle
	ignoreMissingSelector bool
	ignoreMissingHeadings bool
}

// Result is the outcome of a successful Transform.
type Result struct {
	Document *doctree.Node
	Outline  []*outline.Node
	// Inserted is false only when the selector matched nothing and
	// IgnoreMissingSelector was set; Document is then untouched.
	Inserted bool
}

// New validates cfg. Every failure is a ConfigurationError and happens
// before any document is touched.
func New(cfg Config) (*Transformer, error) {
	spec, err := insertionSpec(cfg)
	if err != nil {
		return nil, err
	}
	toggle, err := parseToggle(cfg.Toggle)
	if err != nil {
		return nil, err
	}

	title := DefaultTitle
	if cfg.Title != nil {
		title = string(*cfg.Title)
	}

	return &Transformer{
		spec:                  spec,
		title:                 title,
		toggle:                toggle,
		ignoreMissingSelector: enabled(cfg.IgnoreMissingSelector),
		ignoreMissingHeadings: enabled(cfg.IgnoreMissingHeadings),
	}, nil
}

func insertionSpec(cfg Config) (graft.InsertionSpec, error) {
	insert := cfg.Insert
	if cfg.After != "" {
		if len(insert) > 0 {
			return graft.InsertionSpec{}, configError("after", cfg.After, "cannot be combined with insert")
		}
		insert = map[string]string{"after": cfg.After}
	}
	if len(insert) != 1 {
		return graft.InsertionSpec{}, configError("insert", insert, "exactly one position is required, got %d", len(insert))
	}

	var spec graft.InsertionSpec
	for name, selector := range insert {
		pos, err := graft.ParsePosition(name)
		if err != nil {
			return graft.InsertionSpec{}, configError("insert", insert, "%v", err)
		}
		sel, err := graft.ParseSelector(selector)
		if err != nil {
			return graft.InsertionSpec{}, configError("insert", insert, "%v", err)
		}
		spec = graft.InsertionSpec{Position: pos, Selector: sel}
	}
	return spec, nil
}

func parseToggle(raw []any) (*graft.Toggle, error) {
	if raw == nil {
		return nil, nil
	}
	if len(raw) < 2 || len(raw) > 3 {
		return nil, configError("toggle", raw, "want [show, hide] or [show, hide, checked]")
	}

	labels := make([]string, 2)
	for i := range labels {
		s, ok := raw[i].(string)
		if !ok || (s != "show" && s != "hide") {
			return nil, configError("toggle", raw, "label %d must be \"show\" or \"hide\"", i)
		}
		labels[i] = s
	}

	t := &graft.Toggle{Show: labels[0], Hide: labels[1]}
	if len(raw) == 3 && raw[2] != nil {
		checked, ok := raw[2].(bool)
		if !ok {
			return nil, configError("toggle", raw, "checked must be a boolean")
		}
		t.Checked = checked
	}
	return t, nil
}

// Spec returns the validated insertion spec.
func (t *Transformer) Spec() graft.InsertionSpec {
	return t.spec
}

// Transform walks doc once, collecting headings and reserving the insertion
// point, then renders the outline into it. doc is modified in place.
//
// When the selector matches nothing the result is ErrSelectorNotFound, or
// with IgnoreMissingSelector the untouched document. When no heading
// qualifies the result is ErrNoHeadingsFound, or with IgnoreMissingHeadings
// an empty list. On error doc is left as it was.
func (t *Transformer) Transform(doc *doctree.Node) (*Result, error) {
	builder := outline.NewBuilder()
	grafter := graft.NewGrafter(t.spec)

	doc = doctree.Walk(doc, func(n *doctree.Node) *doctree.Node {
		if ev, ok := outline.HeadingFromNode(n); ok {
			builder.Observe(ev)
		}
		grafter.FindInsertionPoint(n)
		return n
	})
	forest := builder.Finalize()

	if !grafter.Found() {
		if t.ignoreMissingSelector {
			return &Result{Document: doc, Outline: forest}, nil
		}
		return nil, &Error{
			Kind: SelectorNotFoundError,
			Msg:  fmt.Sprintf("selector %q not found", t.spec.Selector.String()),
		}
	}

	if len(forest) == 0 && !t.ignoreMissingHeadings {
		grafter.Discard()
		return nil, &Error{Kind: NoHeadingsFoundError, Msg: "no headings found"}
	}

	grafter.Fill(graft.Render(forest, t.title, t.toggle))
	return &Result{Document: doc, Outline: forest, Inserted: true}, nil
}

// Headings collects the outline of doc without modifying it.
func Headings(doc *doctree.Node) []*outline.Node {
	builder := outline.NewBuilder()
	doctree.Walk(doc, func(n *doctree.Node) *doctree.Node {
		if ev, ok := outline.HeadingFromNode(n); ok {
			builder.Observe(ev)
		}
		return n
	})
	return builder.Finalize()
}

package graft

import (
	"fmt"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/dgallion1/tocgraft/internal/outline"
)

const (
	ContainerID = "toc"
	ToggleID    = "toctoggle"
)

// Toggle configures the show/hide checkbox. Show is the label displayed while
// the list is hidden, Hide the one displayed while it is visible.
type Toggle struct {
	Show    string
	Hide    string
	Checked bool
}

func (t *Toggle) style() string {
	return "#" + ToggleID + ",#" + ToggleID + ":checked~ul{display:none}" +
		fmt.Sprintf(`#%s~label:after{content:"%s"}`, ToggleID, t.Hide) +
		fmt.Sprintf(`#%s:checked~label:after{content:"%s"}`, ToggleID, t.Show) +
		"#" + ContainerID + " label{cursor:pointer}"
}

// Render builds the table of contents for forest. The result is a fragment
// holding an optional <style> block followed by the <div id="toc">
// container. title is omitted when empty, and toggle may be nil.
//
// Render does not modify forest; labels are copied into the output.
func Render(forest []*outline.Node, title string, toggle *Toggle) *doctree.Node {
	out := doctree.Fragment()
	container := doctree.Element("div", []doctree.Attr{{Key: "id", Val: ContainerID}})

	if toggle != nil {
		out.Append(doctree.Element("style", nil, doctree.Text(toggle.style())))

		attrs := []doctree.Attr{
			{Key: "type", Val: "checkbox"},
			{Key: "role", Val: "button"},
			{Key: "id", Val: ToggleID},
		}
		if toggle.Checked {
			attrs = append(attrs, doctree.Attr{Key: "checked"})
		}
		container.Append(doctree.Void("input", attrs))
	}
	if title != "" {
		container.Append(doctree.Element("h2", nil, doctree.Text(title)))
	}
	if toggle != nil {
		container.Append(doctree.Element("label", []doctree.Attr{{Key: "for", Val: ToggleID}}))
	}
	container.Append(renderList(forest))

	out.Append(container)
	return out
}

func renderList(nodes []*outline.Node) *doctree.Node {
	ul := doctree.Element("ul", nil)
	for _, n := range nodes {
		link := doctree.Element("a", []doctree.Attr{{Key: "href", Val: "#" + n.Anchor}}, doctree.CloneAll(n.Label)...)
		li := doctree.Element("li", nil, link)
		if len(n.Children) > 0 {
			li.Append(renderList(n.Children))
		}
		ul.Append(li)
	}
	return ul
}

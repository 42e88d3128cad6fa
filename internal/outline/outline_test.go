package outline

import (
	"encoding/json"
	"testing"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heading(tag, id string, children ...*doctree.Node) *doctree.Node {
	var attrs []doctree.Attr
	if id != "" {
		attrs = []doctree.Attr{{Key: "id", Val: id}}
	}
	return doctree.Element(tag, attrs, children...)
}

func TestHeadingFromNode(t *testing.T) {
	tests := []struct {
		name  string
		node  *doctree.Node
		ok    bool
		level int
	}{
		{"h2 with id and text", heading("h2", "a", doctree.Text("A")), true, 2},
		{"h6 with id and text", heading("h6", "f", doctree.Text("F")), true, 6},
		{"h1 is never a toc heading", heading("h1", "t", doctree.Text("T")), false, 0},
		{"h7 is not a heading", heading("h7", "x", doctree.Text("X")), false, 0},
		{"missing id", heading("h2", "", doctree.Text("A")), false, 0},
		{"empty content", heading("h3", "b"), false, 0},
		{"whitespace only", heading("h3", "b", doctree.Text("  \n")), false, 0},
		{"element content counts", heading("h4", "img", doctree.Void("img", nil)), true, 4},
		{"text node", doctree.Text("h2"), false, 0},
		{"header tag", heading("header", "x", doctree.Text("X")), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := HeadingFromNode(tt.node)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, ev.Level)
		})
	}
}

func TestHeadingFromNode_LabelIsCopied(t *testing.T) {
	h := heading("h2", "a", doctree.Element("em", nil, doctree.Text("A")))

	ev, ok := HeadingFromNode(h)
	require.True(t, ok)
	assert.Equal(t, "a", ev.Anchor)
	require.Len(t, ev.Label, 1)

	ev.Label[0].Content[0].Text = "changed"
	assert.Equal(t, "A", h.TextContent())
}

func TestEntries_JSON(t *testing.T) {
	forest := Build([]HeadingEvent{
		{Level: 2, Anchor: "a", Label: []*doctree.Node{doctree.Text("A ")}},
		{Level: 3, Anchor: "b", Label: []*doctree.Node{doctree.Element("code", nil, doctree.Text("B"))}},
	})

	data, err := json.Marshal(Entries(forest))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"level":2,"anchor":"a","title":"A","children":[{"level":3,"anchor":"b","title":"B"}]}]`, string(data))

	empty, err := json.Marshal(Entries(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

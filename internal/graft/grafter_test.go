package graft

import (
	"testing"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalk is a bare pre-order walker that, like doctree.Walk, re-reads the
// child sequence after every visit. It records what it saw so tests can check
// spliced placeholders are visited exactly once.
func fakeWalk(n *doctree.Node, visit func(*doctree.Node), seen *[]*doctree.Node) {
	visit(n)
	*seen = append(*seen, n)
	for i := 0; i < len(n.Content); i++ {
		fakeWalk(n.Content[i], visit, seen)
	}
}

func el(tag string, attrs ...string) *doctree.Node {
	var as []doctree.Attr
	for i := 0; i+1 < len(attrs); i += 2 {
		as = append(as, doctree.Attr{Key: attrs[i], Val: attrs[i+1]})
	}
	return doctree.Element(tag, as)
}

// tags lists the content of n, writing "@" for a placeholder fragment.
func tags(n *doctree.Node) []string {
	var out []string
	for _, c := range n.Content {
		switch c.Kind {
		case doctree.FragmentNode:
			out = append(out, "@")
		case doctree.TextNode:
			out = append(out, "'"+c.Text+"'")
		default:
			out = append(out, c.Tag)
		}
	}
	return out
}

func mustSelector(t *testing.T, s string) Selector {
	t.Helper()
	sel, err := ParseSelector(s)
	require.NoError(t, err)
	return sel
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		kind    SelectorKind
		name    string
		wantErr bool
	}{
		{in: "nav", kind: TagSelector, name: "nav"},
		{in: ".toc-here", kind: ClassSelector, name: "toc-here"},
		{in: "#main", kind: IDSelector, name: "main"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
		{in: "#", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel, err := ParseSelector(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, sel.Kind)
			assert.Equal(t, tt.name, sel.Name)
			assert.Equal(t, tt.in, sel.String())
		})
	}
}

func TestSelector_Match(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		node     *doctree.Node
		want     bool
	}{
		{"tag exact", "p", el("p"), true},
		{"tag is not prefix", "p", el("pre"), false},
		{"class token", ".p", el("div", "class", "p"), true},
		{"class substring", ".bc", el("div", "class", "abcd"), true},
		{"class across tokens", ".a b", el("div", "class", "xa by"), true},
		{"class missing", ".p", el("div"), false},
		{"class empty", ".p", el("div", "class", ""), false},
		{"id exact", "#p", el("div", "id", "p"), true},
		{"id is not substring", "#p", el("div", "id", "pp"), false},
		{"id missing", "#p", el("div"), false},
		{"text never matches", "p", doctree.Text("p"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustSelector(t, tt.selector).Match(tt.node))
		})
	}
}

func TestParsePosition(t *testing.T) {
	for _, name := range []string{"after", "before", "afterChildren", "beforeChildren"} {
		p, err := ParsePosition(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.String())
	}
	_, err := ParsePosition("inside")
	assert.Error(t, err)
}

func TestGrafter_Positions(t *testing.T) {
	tests := []struct {
		name       string
		position   Position
		matchIndex int
		wantParent []string
		wantMatch  []string
	}{
		{"after first", After, 0, []string{"p", "@", "span", "em"}, []string{"'x'"}},
		{"after last", After, 2, []string{"span", "em", "p", "@"}, []string{"'x'"}},
		{"before first", Before, 0, []string{"@", "p", "span", "em"}, []string{"'x'"}},
		{"before middle is one slot early", Before, 1, []string{"@", "span", "p", "em"}, []string{"'x'"}},
		{"before last is one slot early", Before, 2, []string{"span", "@", "em", "p"}, []string{"'x'"}},
		{"after children", AfterChildren, 1, []string{"span", "p", "em"}, []string{"'x'", "@"}},
		{"before children", BeforeChildren, 1, []string{"span", "p", "em"}, []string{"@", "'x'"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := doctree.Element("p", nil, doctree.Text("x"))
			others := []*doctree.Node{el("span"), el("em")}
			content := append([]*doctree.Node{}, others...)
			content = doctree.InsertAt(content, tt.matchIndex, match)
			parent := doctree.Element("div", nil, content...)

			g := NewGrafter(InsertionSpec{Position: tt.position, Selector: mustSelector(t, "p")})
			require.True(t, g.FindInsertionPoint(parent))

			assert.Equal(t, tt.wantParent, tags(parent))
			assert.Equal(t, tt.wantMatch, tags(match))
		})
	}
}

func TestGrafter_CreatesMissingChildSequence(t *testing.T) {
	for _, pos := range []Position{AfterChildren, BeforeChildren} {
		img := doctree.Void("img", nil)
		parent := doctree.Element("div", nil, img)

		g := NewGrafter(InsertionSpec{Position: pos, Selector: mustSelector(t, "img")})
		require.True(t, g.FindInsertionPoint(parent))
		assert.Equal(t, []string{"@"}, tags(img), pos.String())
	}
}

func TestGrafter_FirstMatchInDocumentOrderWins(t *testing.T) {
	inner := el("section")
	inner.Append(el("p", "id", "deep"))
	root := doctree.Document(
		doctree.Element("main", nil, inner, el("p", "id", "shallow-later")),
		el("p", "id", "top-level-last"),
	)

	g := NewGrafter(InsertionSpec{Position: After, Selector: mustSelector(t, "p")})
	var seen []*doctree.Node
	hits := 0
	fakeWalk(root, func(n *doctree.Node) {
		if g.FindInsertionPoint(n) {
			hits++
		}
	}, &seen)

	assert.Equal(t, 1, hits)
	assert.True(t, g.Found())
	// Pre-order reaches the document root first, whose children include
	// the last top-level <p>.
	assert.Equal(t, []string{"main", "p", "@"}, tags(root))
	assert.Equal(t, []string{"p"}, tags(inner))
}

func TestGrafter_NestedMatchWhenRootHasNone(t *testing.T) {
	inner := doctree.Element("section", nil, el("p", "id", "deep"))
	root := doctree.Document(doctree.Element("main", nil, inner, el("p")))

	g := NewGrafter(InsertionSpec{Position: After, Selector: mustSelector(t, "#deep")})
	var seen []*doctree.Node
	fakeWalk(root, func(n *doctree.Node) { g.FindInsertionPoint(n) }, &seen)

	require.True(t, g.Found())
	assert.Equal(t, []string{"p", "@"}, tags(inner))

	placeholders := 0
	for _, n := range seen {
		if n.Kind == doctree.FragmentNode {
			placeholders++
		}
	}
	assert.Equal(t, 1, placeholders, "spliced placeholder is visited exactly once")
}

func TestGrafter_NoMatch(t *testing.T) {
	root := doctree.Document(doctree.Element("main", nil, el("p")))

	g := NewGrafter(InsertionSpec{Position: After, Selector: mustSelector(t, ".missing")})
	doctree.Walk(root, func(n *doctree.Node) *doctree.Node {
		g.FindInsertionPoint(n)
		return n
	})

	assert.False(t, g.Found())
	g.Fill(doctree.Fragment(el("div")))
	assert.Equal(t, []string{"main"}, tags(root))
	assert.Equal(t, []string{"p"}, tags(root.Content[0]))
}

func TestGrafter_FillFlattensFragment(t *testing.T) {
	parent := doctree.Element("div", nil, el("nav"))
	g := NewGrafter(InsertionSpec{Position: AfterChildren, Selector: mustSelector(t, "nav")})
	require.True(t, g.FindInsertionPoint(parent))

	g.Fill(doctree.Fragment(el("style"), el("div")))

	nav := parent.Content[0]
	require.Len(t, nav.Content, 1)
	assert.Equal(t, []string{"style", "div"}, tags(nav.Content[0]))
}

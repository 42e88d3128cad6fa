package outline

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func events(levels ...int) []HeadingEvent {
	out := make([]HeadingEvent, 0, len(levels))
	for i, l := range levels {
		anchor := fmt.Sprintf("h%d", i)
		out = append(out, HeadingEvent{
			Level:  l,
			Anchor: anchor,
			Label:  []*doctree.Node{doctree.Text(anchor)},
		})
	}
	return out
}

func preorder(forest []*Node) []string {
	var out []string
	Walk(forest, func(n *Node, _ int) { out = append(out, n.Anchor) })
	return out
}

// shape renders the forest as nested anchors, e.g. "h0(h1(h2)) h3".
func shape(forest []*Node) string {
	s := ""
	for i, n := range forest {
		if i > 0 {
			s += " "
		}
		s += n.Anchor
		if len(n.Children) > 0 {
			s += "(" + shape(n.Children) + ")"
		}
	}
	return s
}

func TestBuild_Empty(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, NewBuilder().Finalize())
}

func TestBuild_MonotonicLevelsFormChain(t *testing.T) {
	forest := Build(events(1, 2, 3, 4, 5))

	require.Len(t, forest, 1)
	assert.Equal(t, "h0(h1(h2(h3(h4))))", shape(forest))
	assert.Equal(t, 5, Depth(forest))
}

func TestBuild_CombOfSiblings(t *testing.T) {
	forest := Build(events(2, 2, 2, 2, 2))

	require.Len(t, forest, 5)
	for _, n := range forest {
		assert.Empty(t, n.Children)
	}
}

func TestBuild_RollupClosesIntermediateLevels(t *testing.T) {
	forest := Build(events(2, 3, 4, 2))

	require.Len(t, forest, 2)
	require.Len(t, forest[0].Children, 1)
	require.Len(t, forest[0].Children[0].Children, 1)
	assert.Empty(t, forest[1].Children)
	assert.Equal(t, "h0(h1(h2)) h3", shape(forest))
}

func TestBuild_LevelSkipNestsDirectly(t *testing.T) {
	forest := Build(events(2, 5))

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, 5, forest[0].Children[0].Level)
	assert.Empty(t, forest[0].Children[0].Children)
}

func TestBuild_Shapes(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   string
	}{
		{"siblings under parent", []int{2, 3, 3, 3}, "h0(h1 h2 h3)"},
		{"return to middle level", []int{2, 3, 4, 3}, "h0(h1(h2) h3)"},
		{"shallower after skip joins skipped parent", []int{2, 4, 3}, "h0(h1 h2)"},
		{"skip then deeper", []int{2, 4, 3, 4}, "h0(h1 h2(h3))"},
		{"first heading deepest", []int{3, 2, 3}, "h0 h1(h2)"},
		{"two trees", []int{2, 3, 2, 3}, "h0(h1) h2(h3)"},
		{"deep unwind", []int{2, 3, 4, 5, 6, 3}, "h0(h1(h2(h3(h4))) h5)"},
		{"single", []int{4}, "h0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := Build(events(tt.levels...))
			assert.Equal(t, tt.want, shape(forest))
		})
	}
}

func TestBuild_PreorderMatchesInput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 200; round++ {
		levels := make([]int, 1+r.Intn(30))
		for i := range levels {
			levels[i] = 2 + r.Intn(5)
		}
		evs := events(levels...)

		forest := Build(evs)

		want := make([]string, 0, len(evs))
		for _, ev := range evs {
			want = append(want, ev.Anchor)
		}
		require.Equal(t, want, preorder(forest), "levels=%v", levels)
		require.Equal(t, len(evs), Count(forest))
	}
}

func TestBuild_ChildrenAreDeeperThanParent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		levels := make([]int, 1+r.Intn(30))
		for i := range levels {
			levels[i] = 2 + r.Intn(5)
		}

		var check func(parent *Node, nodes []*Node)
		check = func(parent *Node, nodes []*Node) {
			for _, n := range nodes {
				if parent != nil {
					require.Greater(t, n.Level, parent.Level, "levels=%v", levels)
				}
				check(n, n.Children)
			}
		}
		check(nil, Build(events(levels...)))
	}
}

func TestBuilder_ReusableAfterFinalize(t *testing.T) {
	b := NewBuilder()
	for _, ev := range events(2, 3) {
		b.Observe(ev)
	}
	first := b.Finalize()
	require.Len(t, first, 1)

	for _, ev := range events(4, 4) {
		b.Observe(ev)
	}
	second := b.Finalize()
	assert.Len(t, second, 2)
	assert.Len(t, first[0].Children, 1, "earlier forest is untouched")
}

package outline

// Entry is the serializable view of an outline node.
type Entry struct {
	Level    int     `json:"level" yaml:"level"`
	Anchor   string  `json:"anchor" yaml:"anchor"`
	Title    string  `json:"title" yaml:"title"`
	Children []Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

// Entries converts a forest into its serializable form. An empty forest
// yields an empty, non-nil slice so it encodes as [].
func Entries(forest []*Node) []Entry {
	out := make([]Entry, 0, len(forest))
	for _, n := range forest {
		e := Entry{Level: n.Level, Anchor: n.Anchor, Title: n.Title()}
		if len(n.Children) > 0 {
			e.Children = Entries(n.Children)
		}
		out = append(out, e)
	}
	return out
}

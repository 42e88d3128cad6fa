package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/tocgraft/internal/outline"
)

type treeStyles struct {
	branch func(...string) string
	title  func(...string) string
	anchor func(...string) string
	level  func(...string) string
}

// newTreeStyles returns coloured styles for a terminal and plain text
// otherwise.
func newTreeStyles(color bool) treeStyles {
	if !color {
		plain := func(s ...string) string { return strings.Join(s, " ") }
		return treeStyles{branch: plain, title: plain, anchor: plain, level: plain}
	}
	return treeStyles{
		branch: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render,
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Render,
		anchor: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Render,
		level:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render,
	}
}

// printTree draws entries with box-drawing branches:
//
//	├── h2 Install  #install
//	│   └── h3 Linux  #linux
//	└── h2 Usage  #usage
func printTree(w io.Writer, entries []outline.Entry, st treeStyles) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "(no headings)")
		return err
	}
	var b strings.Builder
	writeTree(&b, entries, "", st)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, entries []outline.Entry, prefix string, st treeStyles) {
	for i, e := range entries {
		last := i == len(entries)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(b, "%s%s %s  %s\n",
			st.branch(prefix+branch),
			st.level(fmt.Sprintf("h%d", e.Level)),
			st.title(e.Title),
			st.anchor("#"+e.Anchor),
		)
		writeTree(b, e.Children, prefix+indent, st)
	}
}

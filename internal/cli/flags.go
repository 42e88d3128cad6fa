package cli

import (
	"fmt"
	"strings"

	"github.com/dgallion1/tocgraft/internal/toc"
	"github.com/spf13/pflag"
)

// tocFlags are the command line spellings of toc.Config.
type tocFlags struct {
	configFile            string
	insert                []string
	after                 string
	title                 string
	noTitle               bool
	toggle                string
	ignoreMissingSelector bool
	ignoreMissingHeadings bool
}

func (f *tocFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configFile, "config", "", "YAML or JSON file with toc options")
	fs.StringArrayVar(&f.insert, "insert", nil, "Insertion point as position=selector (after, before, afterChildren, beforeChildren)")
	fs.StringVar(&f.after, "after", "", "Shorthand for --insert after=SELECTOR")
	fs.StringVar(&f.title, "title", "", "Title above the list (default \"Content\")")
	fs.BoolVar(&f.noTitle, "no-title", false, "Omit the title")
	fs.StringVar(&f.toggle, "toggle", "", "Add a show/hide toggle: SHOW,HIDE[,CHECKED], e.g. show,hide,true")
	fs.BoolVar(&f.ignoreMissingSelector, "ignore-missing-selector", false, "Leave the document unchanged when the selector matches nothing")
	fs.BoolVar(&f.ignoreMissingHeadings, "ignore-missing-headings", false, "Insert an empty list when no heading qualifies")
}

// config loads the --config file, if any, and applies the other flags on
// top. Only flags the user set override the file.
func (f *tocFlags) config(changed func(name string) bool) (toc.Config, error) {
	var base toc.Config
	if f.configFile != "" {
		cfg, err := toc.LoadConfig(f.configFile)
		if err != nil {
			return toc.Config{}, err
		}
		base = cfg
	}

	var over toc.Config
	if len(f.insert) > 0 {
		over.Insert = make(map[string]string, len(f.insert))
		for _, spec := range f.insert {
			pos, sel, ok := strings.Cut(spec, "=")
			if !ok {
				return toc.Config{}, fmt.Errorf("--insert %q: want position=selector", spec)
			}
			pos = strings.TrimSpace(pos)
			if _, dup := over.Insert[pos]; dup {
				return toc.Config{}, fmt.Errorf("--insert: position %q given more than once", pos)
			}
			over.Insert[pos] = strings.TrimSpace(sel)
		}
	}
	over.After = f.after

	switch {
	case f.noTitle:
		over.Title = toc.NewTitle("")
	case changed("title"):
		over.Title = toc.NewTitle(f.title)
	}

	if changed("toggle") {
		over.Toggle = parseToggleFlag(f.toggle)
	}
	if changed("ignore-missing-selector") {
		over.IgnoreMissingSelector = toc.Bool(f.ignoreMissingSelector)
	}
	if changed("ignore-missing-headings") {
		over.IgnoreMissingHeadings = toc.Bool(f.ignoreMissingHeadings)
	}

	return base.Merge(over), nil
}

// parseToggleFlag splits "show,hide,true" into the list form toc.New
// validates. A third element that is not a boolean is passed through as a
// string so validation reports it.
func parseToggleFlag(s string) []any {
	parts := strings.Split(s, ",")
	out := make([]any, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 2 {
			switch p {
			case "true":
				out = append(out, true)
				continue
			case "false":
				out = append(out, false)
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

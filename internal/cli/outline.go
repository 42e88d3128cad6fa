package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/tocgraft/internal/outline"
	"github.com/dgallion1/tocgraft/internal/toc"
	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for the outline command.
const (
	formatTree = "tree"
	formatJSON = "json"
	formatYAML = "yaml"
)

func (a *app) newOutlineCommand() *cobra.Command {
	var format, query string

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Print the heading outline of a document",
		Example: `  tocgraft outline guide.md
  tocgraft outline --format yaml page.html
  tocgraft outline --query '.[].title' page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query != "" {
				format = formatJSON
			}

			doc, _, err := a.readDocument(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			entries := outline.Entries(toc.Headings(doc))

			w := cmd.OutOrStdout()
			switch format {
			case formatTree:
				return printTree(w, entries, newTreeStyles(isTerminal(w)))
			case formatJSON:
				return printJSON(w, entries, query)
			case formatYAML:
				return printYAML(w, entries)
			default:
				return fmt.Errorf("unsupported format %q (want tree, json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTree, "Output format (tree|json|yaml)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "jq expression to filter JSON output")
	return cmd
}

// printJSON writes entries as indented JSON, or each result of query.
func printJSON(w io.Writer, entries []outline.Entry, query string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if query == "" {
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	parsed, err := gojq.Parse(query)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return fmt.Errorf("invalid --query: %w", err)
	}

	// gojq only walks plain maps and slices.
	data, err := toPlain(entries)
	if err != nil {
		return err
	}

	iter := code.Run(data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return fmt.Errorf("query error: %w", err)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func toPlain(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func printYAML(w io.Writer, entries []outline.Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return err
	}
	return enc.Close()
}

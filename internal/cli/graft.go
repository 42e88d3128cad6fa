package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/dgallion1/tocgraft/internal/outline"
	"github.com/dgallion1/tocgraft/internal/toc"
	"github.com/spf13/cobra"
)

func (a *app) newGraftCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "graft [file]",
		Short: "Insert a table of contents and print the resulting HTML",
		Example: `  tocgraft graft --insert afterChildren=nav page.html
  tocgraft graft --after h1 --toggle show,hide README.md -o README.html
  cat page.html | tocgraft graft --config toc.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.flags.config(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			tr, err := toc.New(cfg)
			if err != nil {
				return err
			}

			doc, name, err := a.readDocument(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := tr.Transform(doc)
			if err != nil {
				return err
			}
			if !res.Inserted {
				a.log.Warn("selector not found, document left unchanged", "selector", tr.Spec().String())
			}
			a.log.Debug("grafted", "file", name, "insert", tr.Spec().String(), "headings", outline.Count(res.Outline))

			if output == "" {
				return writeHTML(cmd.OutOrStdout(), res.Document)
			}
			return writeHTMLFile(output, res.Document)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to this file instead of stdout")
	return cmd
}

func writeHTML(w io.Writer, doc *doctree.Node) error {
	if err := doctree.Render(w, doc); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeHTMLFile(path string, doc *doctree.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeHTML(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

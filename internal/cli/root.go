// Package cli implements the tocgraft command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time.
var Version = "dev"

// app holds state shared by every subcommand of one invocation.
type app struct {
	flags tocFlags
	debug bool
	log   *slog.Logger
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "tocgraft",
		Short: "Build a table of contents from document headings and graft it into the document",
		Long: `tocgraft collects the h2-h6 headings of a document that carry an id,
nests them into an outline and inserts the rendered list next to the first
element matching a selector.

Input may be HTML, Markdown, plain text, CSV, PDF or DOCX. Without a file
argument, HTML is read from stdin.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.debug {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.SetVersionTemplate("tocgraft {{.Version}}\n")

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging on stderr")
	a.flags.register(root.PersistentFlags())

	root.AddCommand(a.newGraftCommand(), a.newOutlineCommand())
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

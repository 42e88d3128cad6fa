package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/tocgraft/internal/doctree"
	"github.com/dgallion1/tocgraft/internal/parser"
)

// stdinName is the file name assumed for input read from stdin.
const stdinName = "stdin.html"

// readDocument parses the file named by args, or HTML from stdin when args
// is empty or "-".
func (a *app) readDocument(args []string, stdin io.Reader) (*doctree.Node, string, error) {
	name := stdinName
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		name = args[0]
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}

	p, err := parser.ForFile(name, parser.Options{PDFFallbackPdftotext: true})
	if err != nil {
		return nil, "", err
	}
	doc, err := p.Parse(bytes.NewReader(data), filepath.Base(name))
	if err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", name, err)
	}
	a.log.Debug("parsed input", "file", name, "bytes", len(data))
	return doc, name, nil
}

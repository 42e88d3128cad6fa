package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/tocgraft/internal/doctree"
)

// TextParser handles plain text files. Each blank-line separated paragraph
// becomes a <p>; plain text has no headings of its own.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := doctree.Document()
	for _, para := range paragraphs {
		doc.Append(doctree.Element("p", nil, doctree.Text(para)))
	}
	return doc, nil
}

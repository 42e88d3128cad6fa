package parser

import (
	"bytes"
	"io"

	"github.com/dgallion1/tocgraft/internal/doctree"
)

// HTMLParser handles HTML files. Complete documents keep their doctype and
// html/head/body structure; anything else is treated as a body fragment.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if doctree.LooksLikeDocument(src) {
		return doctree.ParseHTML(bytes.NewReader(src))
	}
	return doctree.ParseFragment(bytes.NewReader(src))
}

package doctree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses a complete HTML document (doctype, html, head, body).
func ParseHTML(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return FromHTML(doc), nil
}

// ParseFragment parses HTML as the content of a <body> element, without
// synthesizing the html/head/body wrappers.
func ParseFragment(r io.Reader) (*Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	root := Document()
	for _, n := range nodes {
		if c := FromHTML(n); c != nil {
			root.Content = append(root.Content, c)
		}
	}
	return root, nil
}

// FromHTML converts an x/net/html tree into a document tree.
func FromHTML(n *html.Node) *Node {
	var out *Node
	switch n.Type {
	case html.DocumentNode:
		out = &Node{Kind: DocumentNode}
	case html.ElementNode:
		out = &Node{Kind: ElementNode, Tag: n.Data}
	case html.TextNode:
		return &Node{Kind: TextNode, Text: n.Data}
	case html.CommentNode:
		return &Node{Kind: CommentNode, Text: n.Data}
	case html.DoctypeNode:
		return &Node{Kind: DoctypeNode, Text: n.Data, Attrs: fromHTMLAttrs(n.Attr)}
	default:
		return nil
	}
	out.Attrs = fromHTMLAttrs(n.Attr)

	// Void elements come back from the parser without children; keep them
	// without a child sequence so they never look like containers.
	if n.FirstChild != nil || !isVoid(n) {
		out.Content = []*Node{}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := FromHTML(c); child != nil {
			out.Content = append(out.Content, child)
		}
	}
	return out
}

func fromHTMLAttrs(attrs []html.Attribute) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		out = append(out, Attr{Key: key, Val: a.Val})
	}
	return out
}

func isVoid(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
		atom.Input, atom.Keygen, atom.Link, atom.Meta, atom.Param, atom.Source,
		atom.Track, atom.Wbr:
		return true
	}
	return false
}

// ToHTML converts the tree back into x/net/html nodes. Fragments are
// flattened into their parent, and the content of a void element follows
// it, so the result may hold several siblings.
func ToHTML(n *Node) []*html.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case FragmentNode:
		var out []*html.Node
		for _, c := range n.Content {
			out = append(out, ToHTML(c)...)
		}
		return out
	case TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	case CommentNode:
		return []*html.Node{{Type: html.CommentNode, Data: n.Text}}
	case DoctypeNode:
		return []*html.Node{{Type: html.DoctypeNode, Data: n.Text, Attr: toHTMLAttrs(n.Attrs)}}
	}

	var hn *html.Node
	if n.Kind == DocumentNode {
		hn = &html.Node{Type: html.DocumentNode}
	} else {
		hn = &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
			Attr:     toHTMLAttrs(n.Attrs),
		}
	}
	// A void element cannot hold children; content spliced into one is
	// written after it instead.
	out := []*html.Node{hn}
	void := isVoid(hn)
	for _, c := range n.Content {
		for _, hc := range ToHTML(c) {
			if void {
				out = append(out, hc)
				continue
			}
			hn.AppendChild(hc)
		}
	}
	return out
}

func toHTMLAttrs(attrs []Attr) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, html.Attribute{Key: a.Key, Val: a.Val})
	}
	return out
}

// Render serializes n as HTML.
func Render(w io.Writer, n *Node) error {
	for _, hn := range ToHTML(n) {
		if err := html.Render(w, hn); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
	}
	return nil
}

// RenderString serializes n as an HTML string.
func RenderString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LooksLikeDocument reports whether src is a full HTML document rather than a
// body fragment.
func LooksLikeDocument(src []byte) bool {
	head := src
	if len(head) > 1024 {
		head = head[:1024]
	}
	lower := strings.ToLower(string(head))
	return strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html")
}

// Package render — HTML renderer.
// Builds an x/net/html node tree per block and serialises it, so escaping
// is handled by the html package rather than by string formatting.
package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gaurav-prasanna/pygmalion/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTMLRenderer renders a Document as an HTML fragment, or as a full page
// when Standalone is set.
type HTMLRenderer struct {
	Standalone bool
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(standalone bool) *HTMLRenderer {
	return &HTMLRenderer{Standalone: standalone}
}

// Render converts the Document into HTML.
func (r *HTMLRenderer) Render(doc *core.Document) ([]byte, error) {
	doc = orEmpty(doc)
	if err := checkDocument("html", doc); err != nil {
		return nil, err
	}
	nodes := make([]*html.Node, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		n, err := r.block(i, b)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	var buf bytes.Buffer
	if r.Standalone {
		if err := renderPage(&buf, doc.Title(), nodes); err != nil {
			return nil, fmt.Errorf("rendering html: %w", err)
		}
		return buf.Bytes(), nil
	}
	for i, n := range nodes {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if err := html.Render(&buf, n); err != nil {
			return nil, fmt.Errorf("rendering html: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func renderPage(buf *bytes.Buffer, title string, nodes []*html.Node) error {
	if err := html.Render(buf, &html.Node{Type: html.DoctypeNode, Data: "html"}); err != nil {
		return err
	}
	buf.WriteByte('\n')

	root := element(atom.Html)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	if title != "" {
		t := element(atom.Title)
		t.AppendChild(textNode(title))
		head.AppendChild(t)
	}
	body := element(atom.Body)
	for _, n := range nodes {
		body.AppendChild(textNode("\n"))
		body.AppendChild(n)
	}
	body.AppendChild(textNode("\n"))
	root.AppendChild(head)
	root.AppendChild(body)

	if err := html.Render(buf, root); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return nil
}

func (r *HTMLRenderer) block(i int, b core.Block) (*html.Node, error) {
	switch n := b.(type) {
	case *core.Paragraph:
		return withInlines(element(atom.P), i, b, n.Inlines)

	case *core.Heading:
		level := n.Level
		if level < 1 || level > len(headingAtoms) {
			return nil, core.UnsupportedBlock("html", i, b)
		}
		return withInlines(element(headingAtoms[level-1]), i, b, n.Inlines)

	case *core.CodeBlock:
		code := element(atom.Code)
		if n.Info != "" {
			code.Attr = append(code.Attr, html.Attribute{Key: "class", Val: "language-" + n.Info})
		}
		code.AppendChild(textNode(n.Text))
		pre := element(atom.Pre)
		pre.AppendChild(code)
		return pre, nil

	case *core.List:
		list := element(atom.Ul)
		if n.Ordered {
			list = element(atom.Ol)
			if n.Start != 1 {
				list.Attr = append(list.Attr, html.Attribute{Key: "start", Val: strconv.Itoa(n.Start)})
			}
		}
		for _, it := range n.Items {
			li, err := withInlines(element(atom.Li), i, b, it.Inlines)
			if err != nil {
				return nil, err
			}
			list.AppendChild(li)
		}
		return list, nil

	case *core.Quote:
		p, err := withInlines(element(atom.P), i, b, n.Inlines)
		if err != nil {
			return nil, err
		}
		q := element(atom.Blockquote)
		q.AppendChild(p)
		return q, nil

	case *core.Rule:
		return element(atom.Hr), nil
	}
	return nil, core.UnsupportedBlock("html", i, b)
}

// withInlines appends the inline nodes to parent.
func withInlines(parent *html.Node, i int, b core.Block, inlines []core.Inline) (*html.Node, error) {
	for _, in := range inlines {
		var child *html.Node
		switch n := in.(type) {
		case *core.Text:
			child = textNode(n.Value)
		case *core.Code:
			child = element(atom.Code)
			child.AppendChild(textNode(n.Value))
		case *core.Emphasis:
			child = element(atom.Em)
			if _, err := withInlines(child, i, b, n.Children); err != nil {
				return nil, err
			}
		case *core.Strong:
			child = element(atom.Strong)
			if _, err := withInlines(child, i, b, n.Children); err != nil {
				return nil, err
			}
		case *core.Link:
			child = element(atom.A, html.Attribute{Key: "href", Val: n.URL})
			if _, err := withInlines(child, i, b, n.Children); err != nil {
				return nil, err
			}
		default:
			return nil, core.UnsupportedInline("html", i, b, in)
		}
		parent.AppendChild(child)
	}
	return parent, nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

package render

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/docxmd/model"
)

// HTMLRenderer writes a standalone HTML5 page. The document title, when
// known, goes into <title>.
type HTMLRenderer struct{}

// Extension implements Renderer.
func (hr *HTMLRenderer) Extension() string { return ".html" }

// Render implements Renderer.
func (hr *HTMLRenderer) Render(w io.Writer, doc *model.Document) error {
	page := &html.Node{Type: html.DocumentNode}
	page.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	page.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	if doc != nil && doc.Metadata.Title != "" {
		title := element(atom.Title)
		title.AppendChild(text(doc.Metadata.Title))
		head.AppendChild(title)
	}

	body := element(atom.Body)
	root.AppendChild(body)
	for _, n := range rootOf(doc).Children {
		if hn := HTMLNode(n); hn != nil {
			body.AppendChild(hn)
		}
	}

	if err := html.Render(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// HTMLNode converts a semantic node to an HTML node tree. It returns nil
// for node types with no HTML form.
func HTMLNode(n model.Node) *html.Node {
	switch v := n.(type) {
	case *model.Heading:
		depth := v.Depth
		if depth < 1 {
			depth = 1
		}
		if depth > len(headingAtoms) {
			depth = len(headingAtoms)
		}
		return withInlines(element(headingAtoms[depth-1]), v.Children)
	case *model.Paragraph:
		return withInlines(element(atom.P), v.Children)
	case *model.List:
		ul := element(atom.Ul)
		for _, item := range v.Children {
			ul.AppendChild(HTMLNode(item))
		}
		return ul
	case *model.ListItem:
		li := element(atom.Li)
		for _, c := range v.Children {
			// A single paragraph renders tight, without a <p>.
			if p, ok := c.(*model.Paragraph); ok && len(v.Children) == 1 {
				return withInlines(li, p.Children)
			}
			if hn := HTMLNode(c); hn != nil {
				li.AppendChild(hn)
			}
		}
		return li
	case *model.Text:
		return text(v.Value)
	case *model.Strong:
		return withInlines(element(atom.Strong), v.Children)
	case *model.Link:
		a := element(atom.A)
		a.Attr = []html.Attribute{{Key: "href", Val: v.URL}}
		return withInlines(a, v.Children)
	}
	return nil
}

func withInlines(parent *html.Node, children []model.Inline) *html.Node {
	for _, c := range children {
		if hn := HTMLNode(c); hn != nil {
			parent.AppendChild(hn)
		}
	}
	return parent
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

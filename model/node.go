package model

import "strings"

// NodeType represents the type of a semantic tree node
type NodeType int

const (
	NodeTypeUnknown NodeType = iota
	NodeTypeRoot
	NodeTypeParagraph
	NodeTypeHeading
	NodeTypeList
	NodeTypeListItem
	NodeTypeText
	NodeTypeLink
	NodeTypeStrong
)

// String returns the mdast name of the node type
func (nt NodeType) String() string {
	switch nt {
	case NodeTypeRoot:
		return "root"
	case NodeTypeParagraph:
		return "paragraph"
	case NodeTypeHeading:
		return "heading"
	case NodeTypeList:
		return "list"
	case NodeTypeListItem:
		return "listItem"
	case NodeTypeText:
		return "text"
	case NodeTypeLink:
		return "link"
	case NodeTypeStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// Node is implemented by every block-level node of the semantic tree.
type Node interface {
	Type() NodeType
}

// Inline is implemented by phrasing content: text, links and strong spans.
type Inline interface {
	Node
	inline()
}

// Root is the document root. Its children are the final pipeline output.
type Root struct {
	Children []Node
}

func (r *Root) Type() NodeType { return NodeTypeRoot }

// Paragraph is a run of phrasing content. Signature is nil when the source
// paragraph carried no explicit paragraph-level run properties.
type Paragraph struct {
	Children  []Inline
	Signature *ParagraphSignature
	Props     ParagraphProps
}

func (p *Paragraph) Type() NodeType { return NodeTypeParagraph }

// StyleName returns the internal paragraph style name, or "".
func (p *Paragraph) StyleName() string { return p.Props.StyleName }

// Heading is a promoted paragraph. Depth is 1-6.
type Heading struct {
	Depth    int
	Children []Inline
}

func (h *Heading) Type() NodeType { return NodeTypeHeading }

// NewHeading promotes a paragraph to a heading of the given depth, clamped
// to 1-6. The paragraph's children move to the heading.
func NewHeading(p *Paragraph, depth int) *Heading {
	if depth < 1 {
		depth = 1
	}
	if depth > 6 {
		depth = 6
	}
	return &Heading{Depth: depth, Children: p.Children}
}

// List is an unordered list. Nested lists and numbering are not modeled.
type List struct {
	Children []*ListItem
}

func (l *List) Type() NodeType { return NodeTypeList }

// ListItem holds a single paragraph.
type ListItem struct {
	Children []Node
}

func (li *ListItem) Type() NodeType { return NodeTypeListItem }

// NewList wraps each paragraph in its own list item, preserving order.
func NewList(paragraphs []*Paragraph) *List {
	list := &List{Children: make([]*ListItem, 0, len(paragraphs))}
	for _, p := range paragraphs {
		list.Children = append(list.Children, &ListItem{Children: []Node{p}})
	}
	return list
}

// Text is a plain text run.
type Text struct {
	Value     string
	Signature *RunSignature
}

func (t *Text) Type() NodeType { return NodeTypeText }
func (t *Text) inline()        {}

// Link is a hyperlink wrapping a single text child.
type Link struct {
	URL       string
	Children  []Inline
	Signature *RunSignature
}

func (l *Link) Type() NodeType { return NodeTypeLink }
func (l *Link) inline()        {}

// Strong is a bold emphasis span.
type Strong struct {
	Children []Inline
}

func (s *Strong) Type() NodeType { return NodeTypeStrong }
func (s *Strong) inline()        {}

// IsBold reports whether an inline node is a text or link run marked bold.
func IsBold(n Inline) bool {
	switch v := n.(type) {
	case *Text:
		return v.Signature != nil && v.Signature.IsBold
	case *Link:
		return v.Signature != nil && v.Signature.IsBold
	}
	return false
}

// PlainText returns the concatenated text content of a node and its
// descendants.
func PlainText(n Node) string {
	var sb strings.Builder
	writePlainText(&sb, n)
	return sb.String()
}

func writePlainText(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Text:
		sb.WriteString(v.Value)
	case *Link:
		for _, c := range v.Children {
			writePlainText(sb, c)
		}
	case *Strong:
		for _, c := range v.Children {
			writePlainText(sb, c)
		}
	case *Paragraph:
		for _, c := range v.Children {
			writePlainText(sb, c)
		}
	case *Heading:
		for _, c := range v.Children {
			writePlainText(sb, c)
		}
	case *ListItem:
		for _, c := range v.Children {
			writePlainText(sb, c)
		}
	case *List:
		for i, c := range v.Children {
			if i > 0 {
				sb.WriteString("\n")
			}
			writePlainText(sb, c)
		}
	case *Root:
		for i, c := range v.Children {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			writePlainText(sb, c)
		}
	}
}

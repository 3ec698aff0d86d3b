package model

import "time"

// Document represents a converted document: its metadata and the root of
// the recovered semantic tree.
type Document struct {
	Metadata Metadata
	Root     *Root
}

// Metadata contains document-level information
type Metadata struct {
	Title        string
	Author       string
	Subject      string
	Keywords     []string
	Creator      string
	CreationDate time.Time
	ModDate      time.Time
	// Custom metadata
	Custom map[string]string
}

// IsZero reports whether no metadata field has been set.
func (m Metadata) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Subject == "" &&
		len(m.Keywords) == 0 && m.Creator == "" &&
		m.CreationDate.IsZero() && m.ModDate.IsZero() && len(m.Custom) == 0
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		Root: &Root{},
	}
}

// ExtractText returns all text content concatenated, blocks separated by a
// blank line
func (d *Document) ExtractText() string {
	if d.Root == nil {
		return ""
	}
	return PlainText(d.Root)
}

// Headings returns all top-level headings in document order
func (d *Document) Headings() []*Heading {
	if d.Root == nil {
		return nil
	}
	var headings []*Heading
	for _, n := range d.Root.Children {
		if h, ok := n.(*Heading); ok {
			headings = append(headings, h)
		}
	}
	return headings
}

// Lists returns all top-level lists in document order
func (d *Document) Lists() []*List {
	if d.Root == nil {
		return nil
	}
	var lists []*List
	for _, n := range d.Root.Children {
		if l, ok := n.(*List); ok {
			lists = append(lists, l)
		}
	}
	return lists
}

// TableOfContents returns the headings as an outline
func (d *Document) TableOfContents() []TOCEntry {
	var toc []TOCEntry
	for _, h := range d.Headings() {
		toc = append(toc, TOCEntry{
			Level: h.Depth,
			Text:  PlainText(h),
		})
	}
	return toc
}

// TOCEntry represents an entry in the table of contents
type TOCEntry struct {
	Level int    // Heading depth (1-6)
	Text  string // Heading text
}

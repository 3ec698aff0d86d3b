// Package render serializes a converted document's semantic tree.
//
// Three formats are supported: Markdown (CommonMark with YAML front matter
// on request), a standalone HTML page, and JSON in the mdast node shape.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/docxmd/model"
)

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("render: unknown output format")

// Renderer writes a document in one output format.
type Renderer interface {
	Render(w io.Writer, doc *model.Document) error

	// Extension returns the conventional file extension, including the dot.
	Extension() string
}

// ForFormat returns the renderer for a format name: "markdown" (or "md"),
// "html" or "json". Names are case-insensitive.
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md", "":
		return &MarkdownRenderer{}, nil
	case "html", "htm":
		return &HTMLRenderer{}, nil
	case "json":
		return &JSONRenderer{Indent: "  "}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Formats lists the accepted canonical format names.
func Formats() []string {
	return []string{"markdown", "html", "json"}
}

func rootOf(doc *model.Document) *model.Root {
	if doc == nil || doc.Root == nil {
		return &model.Root{}
	}
	return doc.Root
}

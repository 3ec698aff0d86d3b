// Package docxmd recovers document structure from Word (.docx) files and
// converts it to Markdown, HTML or an mdast JSON tree.
//
// Word documents rarely say which paragraphs are headings. docxmd infers
// them from formatting: paragraphs are clustered by font size, weight,
// underline and alignment, and each cluster is scored as body text, title
// or heading. Consecutive list paragraphs become lists, and adjacent bold
// runs are merged into valid emphasis spans.
//
// Basic usage:
//
//	md, err := docxmd.Open("report.docx").Markdown()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	html, err := docxmd.Open("report.docx").
//	    Headings(docxmd.HeadingsClassifier).
//	    ResolveLinks().
//	    HTML()
//
// The lower-level docx, pipeline and render packages are also available.
package docxmd

import (
	"github.com/tsawler/docxmd/docx"
)

// Open returns a Converter for the named file. The file is opened by each
// terminal operation and closed again before it returns.
//
// Example:
//
//	md, err := docxmd.Open("document.docx").Markdown()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Converter from an already-opened docx.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := docx.Open("document.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	md, err := docxmd.FromReader(r).Markdown()
func FromReader(r *docx.Reader) *Converter {
	return &Converter{
		reader:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	md := docxmd.Must(docxmd.Open("document.docx").Markdown())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

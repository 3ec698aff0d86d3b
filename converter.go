package docxmd

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/docxmd/docx"
	"github.com/tsawler/docxmd/format"
	"github.com/tsawler/docxmd/layout"
	"github.com/tsawler/docxmd/model"
	"github.com/tsawler/docxmd/pipeline"
	"github.com/tsawler/docxmd/render"
)

// Converter provides a fluent interface for converting DOCX files.
// Each configuration method returns a new Converter, so a configured
// Converter can be shared and used from several goroutines.
type Converter struct {
	// Source
	filename string
	reader   *docx.Reader // set by FromReader; not owned

	// Configuration
	options ConvertOptions
}

// clone creates a shallow copy of the Converter.
func (c *Converter) clone() *Converter {
	newConv := *c
	return &newConv
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Headings selects the heading promotion strategy.
//
// Example:
//
//	md, err := docxmd.Open("doc.docx").Headings(docxmd.HeadingsStyle).Markdown()
func (c *Converter) Headings(s HeadingStrategy) *Converter {
	newConv := c.clone()
	newConv.options.headings = s
	return newConv
}

// ListStyle sets the paragraph style ID that marks list items. The default
// is "ListParagraph".
func (c *Converter) ListStyle(styleID string) *Converter {
	newConv := c.clone()
	newConv.options.listStyle = styleID
	return newConv
}

// PreMerge controls whether bold runs are merged while paragraphs are
// mapped, before the pipeline runs. It is on by default.
func (c *Converter) PreMerge(on bool) *Converter {
	newConv := c.clone()
	newConv.options.preMerge = on
	return newConv
}

// Normalize controls Unicode NFC normalization of run text. It is on by
// default.
func (c *Converter) Normalize(on bool) *Converter {
	newConv := c.clone()
	newConv.options.normalize = on
	return newConv
}

// ResolveLinks takes hyperlink URLs from the document relationships
// instead of the link text.
func (c *Converter) ResolveLinks() *Converter {
	newConv := c.clone()
	newConv.options.resolveLinks = true
	return newConv
}

// FrontMatter prepends document metadata as YAML front matter to Markdown
// output.
func (c *Converter) FrontMatter() *Converter {
	newConv := c.clone()
	newConv.options.frontMatter = true
	return newConv
}

// Logger sets the logger for debug output. By default nothing is logged.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.options.logger = l
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document converts the input and returns the semantic tree with the
// document metadata.
func (c *Converter) Document() (*model.Document, error) {
	var doc *model.Document
	err := c.withReader(func(r *docx.Reader) error {
		var err error
		doc, err = c.convert(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Render converts the input and writes it with renderer.
func (c *Converter) Render(w io.Writer, renderer render.Renderer) error {
	doc, err := c.Document()
	if err != nil {
		return err
	}
	if md, ok := renderer.(*render.MarkdownRenderer); ok && c.options.frontMatter {
		withFM := *md
		withFM.FrontMatter = true
		renderer = &withFM
	}
	if err := renderer.Render(w, doc); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

// Markdown converts the input to Markdown.
func (c *Converter) Markdown() (string, error) {
	return c.renderString(&render.MarkdownRenderer{})
}

// HTML converts the input to a standalone HTML page.
func (c *Converter) HTML() (string, error) {
	return c.renderString(&render.HTMLRenderer{})
}

// JSON converts the input to an indented mdast JSON tree.
func (c *Converter) JSON() (string, error) {
	return c.renderString(&render.JSONRenderer{Indent: "  "})
}

func (c *Converter) renderString(renderer render.Renderer) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf, renderer); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StyleReport describes how the formatting classifier saw a document.
type StyleReport struct {
	Clusters   []layout.ScoredCluster
	Prediction layout.StylePrediction
}

// Styles maps the input and scores its paragraph style clusters without
// running the pipeline.
func (c *Converter) Styles() (*StyleReport, error) {
	var report *StyleReport
	err := c.withReader(func(r *docx.Reader) error {
		var paragraphs []*model.Paragraph
		for _, n := range c.mapElements(r) {
			if p, ok := n.(*model.Paragraph); ok {
				paragraphs = append(paragraphs, p)
			}
		}
		scored := layout.NewStyleClassifier().Score(paragraphs)
		report = &StyleReport{Clusters: scored, Prediction: layout.Select(scored)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// withReader runs fn with the source reader, opening and closing the file
// when the Converter was created by Open.
func (c *Converter) withReader(fn func(*docx.Reader) error) error {
	if c.reader != nil {
		return fn(c.reader)
	}
	if c.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f, err := os.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	if err := format.RequireDOCX(f, info.Size()); err != nil {
		return fmt.Errorf("%s: %w", c.filename, err)
	}

	r, err := docx.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	return fn(r)
}

// convert maps the body elements and runs the block pipeline over them.
func (c *Converter) convert(r *docx.Reader) (*model.Document, error) {
	logger := c.logger()

	nodes := c.mapElements(r)
	logger.Debug("mapped body elements", "elements", len(r.Elements()), "nodes", len(nodes))

	out, err := pipeline.Run(nodes, pipeline.DefaultProcessors(c.headingProcessor(r), c.options.listStyle)...)
	if err != nil {
		return nil, fmt.Errorf("converting document: %w", err)
	}
	logger.Debug("pipeline finished", "blocks", len(out))

	doc := model.NewDocument()
	doc.Metadata = r.Metadata()
	doc.Root.Children = out
	return doc, nil
}

func (c *Converter) mapElements(r *docx.Reader) []model.Node {
	mapper := &docx.ParagraphMapper{
		PreMerge:  c.options.preMerge,
		Normalize: c.options.normalize,
		Logger:    c.options.logger,
	}
	if c.options.resolveLinks {
		mapper.Links = r.LinkTarget
	}
	return docx.MapElements(r.Elements(), mapper)
}

// headingProcessor builds a fresh heading stage for one conversion.
func (c *Converter) headingProcessor(r *docx.Reader) pipeline.Processor[model.Node] {
	switch c.options.headings {
	case HeadingsClassifier:
		return pipeline.NewClassifierHeadings(c.options.logger)
	case HeadingsStyle:
		return pipeline.NewStyleNameHeadings(r.StyleName)
	case HeadingsNone:
		return nil
	default:
		return pipeline.NewAutoHeadings(r.StyleName, c.options.logger)
	}
}

func (c *Converter) logger() *slog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

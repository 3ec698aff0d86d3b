package docx

import (
	"io"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docxmd/model"
	"github.com/tsawler/docxmd/pipeline"
)

// Mapper converts a single body element into a semantic node. It returns
// nil when the element is not one it maps, or maps to nothing.
type Mapper interface {
	MapElement(el *Element) model.Node
}

// MapElements maps every element with the first mapper that returns a
// non-nil node. Elements no mapper accepts are dropped.
func MapElements(elements []*Element, mappers ...Mapper) []model.Node {
	nodes := make([]model.Node, 0, len(elements))
	for _, el := range elements {
		for _, m := range mappers {
			if n := m.MapElement(el); n != nil {
				nodes = append(nodes, n)
				break
			}
		}
	}
	return nodes
}

// ParagraphMapper maps w:p elements to paragraphs of text and link runs.
type ParagraphMapper struct {
	// PreMerge runs the bold merger over the mapped runs.
	PreMerge bool

	// Normalize applies Unicode NFC to run text.
	Normalize bool

	// Links resolves a hyperlink relationship ID to its target. When nil,
	// or when the ID does not resolve, the link text is used as the URL.
	Links func(id string) (string, bool)

	Logger *slog.Logger
}

// NewParagraphMapper returns a mapper with pre-merge and normalization on.
func NewParagraphMapper() *ParagraphMapper {
	return &ParagraphMapper{PreMerge: true, Normalize: true}
}

func (pm *ParagraphMapper) logger() *slog.Logger {
	if pm.Logger != nil {
		return pm.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MapElement implements Mapper.
func (pm *ParagraphMapper) MapElement(el *Element) model.Node {
	if !el.Is("p") {
		return nil
	}

	var children []model.Inline
	for _, c := range el.Children {
		switch {
		case c.Is("r"):
			if t := pm.mapRun(c); t != nil {
				children = append(children, t)
			}
		case c.Is("hyperlink"):
			if l := pm.mapHyperlink(c); l != nil {
				children = append(children, l)
			}
		}
	}

	if len(children) == 0 {
		return nil
	}

	if pm.PreMerge {
		merged, err := pipeline.Run(children, pipeline.NewBoldMerger(), pipeline.Passthrough[model.Inline]{})
		if err != nil {
			// Neither stage can fail; keep the unmerged runs if one ever does.
			pm.logger().Debug("bold pre-merge failed", "error", err)
		} else {
			children = merged
		}
	}

	return &model.Paragraph{
		Children:  children,
		Signature: paragraphSignature(el),
		Props:     paragraphProps(el),
	}
}

// mapRun maps a w:r to a text node holding its first w:t.
func (pm *ParagraphMapper) mapRun(r *Element) *model.Text {
	value := pm.runText(r)
	if value == "" {
		return nil
	}
	return &model.Text{Value: value, Signature: runSignature(r)}
}

// mapHyperlink maps a w:hyperlink to a link wrapping the text of its first
// run.
func (pm *ParagraphMapper) mapHyperlink(h *Element) *model.Link {
	text := pm.mapRun(h.Child("r"))
	if text == nil {
		return nil
	}

	url := ""
	if pm.Links != nil {
		if id, ok := h.AttrValue("id"); ok {
			url, _ = pm.Links(id)
		}
	}
	if url == "" {
		url = linkURL(text.Value)
	}

	return &model.Link{
		URL:       url,
		Children:  []model.Inline{text},
		Signature: runSignature(h),
	}
}

func (pm *ParagraphMapper) runText(r *Element) string {
	if r == nil {
		return ""
	}
	value := r.Child("t").Text()
	if pm.Normalize {
		value = norm.NFC.String(value)
	}
	return value
}

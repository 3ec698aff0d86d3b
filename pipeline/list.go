package pipeline

import "github.com/tsawler/docxmd/model"

// DefaultListStyle is the paragraph style Word assigns to list items.
const DefaultListStyle = "ListParagraph"

// ListProcessor accumulates consecutive list-styled paragraphs into a single
// List node.
type ListProcessor struct {
	style   string
	pending []*model.Paragraph
}

// NewListProcessor creates a list processor for paragraphs whose style name
// equals style. An empty style selects DefaultListStyle.
func NewListProcessor(style string) *ListProcessor {
	if style == "" {
		style = DefaultListStyle
	}
	return &ListProcessor{style: style}
}

// ProcessNode implements Processor.
func (lp *ListProcessor) ProcessNode(node model.Node, _ int, _ []model.Node) (Outcome[model.Node], error) {
	if p, ok := node.(*model.Paragraph); ok && p.StyleName() == lp.style {
		lp.pending = append(lp.pending, p)
		return Consume[model.Node](), nil
	}

	// Any other node ends the current list; it still flows to later stages.
	if len(lp.pending) > 0 {
		return Emit[model.Node](true, lp.flush()), nil
	}
	return Pass[model.Node](), nil
}

// End implements Ender. A list still open at the end of input is flushed.
func (lp *ListProcessor) End(_ []model.Node) (Outcome[model.Node], error) {
	if len(lp.pending) > 0 {
		return Emit[model.Node](true, lp.flush()), nil
	}
	return Pass[model.Node](), nil
}

func (lp *ListProcessor) flush() *model.List {
	list := model.NewList(lp.pending)
	lp.pending = nil
	return list
}

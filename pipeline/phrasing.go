package pipeline

import (
	"fmt"

	"github.com/tsawler/docxmd/model"
)

// PhrasingProcessor runs an inline sub-pipeline over the children of every
// paragraph. It never emits anything itself: the rewritten paragraph flows
// on to later stages.
type PhrasingProcessor struct {
	stages func() []Processor[model.Inline]
}

// NewPhrasingProcessor creates a phrasing stage. stages is called once per
// paragraph so buffered state never crosses paragraphs; nil selects
// DefaultInlineStages.
func NewPhrasingProcessor(stages func() []Processor[model.Inline]) *PhrasingProcessor {
	if stages == nil {
		stages = DefaultInlineStages
	}
	return &PhrasingProcessor{stages: stages}
}

// DefaultInlineStages returns a bold merger followed by a passthrough.
func DefaultInlineStages() []Processor[model.Inline] {
	return []Processor[model.Inline]{NewBoldMerger(), Passthrough[model.Inline]{}}
}

// ProcessNode implements Processor.
func (pp *PhrasingProcessor) ProcessNode(node model.Node, _ int, _ []model.Node) (Outcome[model.Node], error) {
	p, ok := node.(*model.Paragraph)
	if !ok {
		return Pass[model.Node](), nil
	}
	children, err := Run(p.Children, pp.stages()...)
	if err != nil {
		return Outcome[model.Node]{}, fmt.Errorf("phrasing: %w", err)
	}
	p.Children = children
	return Pass[model.Node](), nil
}

// DefaultProcessors returns the block stages in their standard order:
// phrasing, lists, headings and a final passthrough. headings may be nil to
// skip heading promotion.
func DefaultProcessors(headings Processor[model.Node], listStyle string) []Processor[model.Node] {
	procs := []Processor[model.Node]{
		NewPhrasingProcessor(nil),
		NewListProcessor(listStyle),
	}
	if headings != nil {
		procs = append(procs, headings)
	}
	return append(procs, Passthrough[model.Node]{})
}

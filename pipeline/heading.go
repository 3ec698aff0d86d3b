package pipeline

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tsawler/docxmd/layout"
	"github.com/tsawler/docxmd/model"
)

// DefaultStyleLevels maps built-in Word paragraph style IDs to heading
// depths.
var DefaultStyleLevels = map[string]int{
	"Title":    1,
	"Heading1": 1,
	"Heading2": 2,
	"Heading3": 3,
	"Heading4": 4,
}

// ClassifierHeadings promotes paragraphs to headings using the style
// classifier: members of the predicted H1 cluster become depth-1 headings,
// members of the H2 cluster depth-2 headings.
type ClassifierHeadings struct {
	classifier *layout.StyleClassifier
	prediction layout.StylePrediction
	logger     *slog.Logger
}

// NewClassifierHeadings creates a classifier-driven heading processor. A
// nil logger discards output.
func NewClassifierHeadings(logger *slog.Logger) *ClassifierHeadings {
	return &ClassifierHeadings{
		classifier: layout.NewStyleClassifier(),
		logger:     loggerOrDiscard(logger),
	}
}

// Start implements Starter. It classifies every paragraph in the input.
func (ch *ClassifierHeadings) Start(nodes []model.Node) error {
	ch.prediction = ch.classifier.Classify(paragraphsOf(nodes))
	ch.logger.Debug("predicted heading styles",
		"paragraph", clusterSize(ch.prediction.Paragraph),
		"h1", clusterSize(ch.prediction.H1),
		"h2", clusterSize(ch.prediction.H2))
	return nil
}

// Prediction returns the clusters chosen by Start.
func (ch *ClassifierHeadings) Prediction() layout.StylePrediction {
	return ch.prediction
}

// ProcessNode implements Processor.
func (ch *ClassifierHeadings) ProcessNode(node model.Node, _ int, _ []model.Node) (Outcome[model.Node], error) {
	p, ok := node.(*model.Paragraph)
	if !ok {
		return Pass[model.Node](), nil
	}
	if depth := ch.prediction.HeadingDepth(p); depth > 0 {
		return Emit[model.Node](false, model.NewHeading(p, depth)), nil
	}
	return Pass[model.Node](), nil
}

// StyleNameHeadings promotes paragraphs whose internal style name maps to a
// heading depth.
type StyleNameHeadings struct {
	levels map[string]int

	// displayName resolves a style ID to its display name, e.g.
	// "heading 2". It may be nil.
	displayName func(styleID string) string
}

// NewStyleNameHeadings creates a style-name heading processor using
// DefaultStyleLevels. displayName is an optional fallback that resolves
// custom style IDs to display names such as "heading 2".
func NewStyleNameHeadings(displayName func(string) string) *StyleNameHeadings {
	return &StyleNameHeadings{levels: DefaultStyleLevels, displayName: displayName}
}

// Depth returns the heading depth for a style ID, or 0.
func (sh *StyleNameHeadings) Depth(styleID string) int {
	if styleID == "" {
		return 0
	}
	if d, ok := sh.levels[styleID]; ok {
		return d
	}
	if sh.displayName != nil {
		return displayNameDepth(sh.displayName(styleID))
	}
	return 0
}

// ProcessNode implements Processor.
func (sh *StyleNameHeadings) ProcessNode(node model.Node, _ int, _ []model.Node) (Outcome[model.Node], error) {
	p, ok := node.(*model.Paragraph)
	if !ok {
		return Pass[model.Node](), nil
	}
	if depth := sh.Depth(p.StyleName()); depth > 0 {
		return Emit[model.Node](false, model.NewHeading(p, depth)), nil
	}
	return Pass[model.Node](), nil
}

// displayNameDepth maps Word display names ("Title", "heading 1" ..
// "heading 4") to depths.
func displayNameDepth(name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "title" {
		return 1
	}
	rest, ok := strings.CutPrefix(name, "heading")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 1 || n > 4 {
		return 0
	}
	return n
}

// AutoHeadings prefers style-name promotion when the document uses heading
// styles and falls back to the classifier otherwise. The choice is made
// once, in Start.
type AutoHeadings struct {
	byName     *StyleNameHeadings
	classifier *ClassifierHeadings
	active     Processor[model.Node]
	logger     *slog.Logger
}

// NewAutoHeadings creates an automatic heading processor.
func NewAutoHeadings(displayName func(string) string, logger *slog.Logger) *AutoHeadings {
	logger = loggerOrDiscard(logger)
	return &AutoHeadings{
		byName:     NewStyleNameHeadings(displayName),
		classifier: NewClassifierHeadings(logger),
		logger:     logger,
	}
}

// Start implements Starter.
func (ah *AutoHeadings) Start(nodes []model.Node) error {
	for _, p := range paragraphsOf(nodes) {
		if ah.byName.Depth(p.StyleName()) > 0 {
			ah.active = ah.byName
			ah.logger.Debug("heading policy selected", "policy", "style")
			return nil
		}
	}
	ah.active = ah.classifier
	ah.logger.Debug("heading policy selected", "policy", "classifier")
	return ah.classifier.Start(nodes)
}

// ProcessNode implements Processor.
func (ah *AutoHeadings) ProcessNode(node model.Node, index int, nodes []model.Node) (Outcome[model.Node], error) {
	if ah.active == nil {
		return Pass[model.Node](), nil
	}
	return ah.active.ProcessNode(node, index, nodes)
}

func paragraphsOf(nodes []model.Node) []*model.Paragraph {
	var out []*model.Paragraph
	for _, n := range nodes {
		if p, ok := n.(*model.Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

func clusterSize(c *layout.StyleCluster) int {
	if c == nil {
		return 0
	}
	return len(c.Matches)
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

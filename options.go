package docxmd

import (
	"fmt"
	"log/slog"
	"strings"
)

// HeadingStrategy selects how paragraphs are promoted to headings.
type HeadingStrategy string

const (
	// HeadingsAuto uses the paragraph style names when the document has
	// any heading styles and the formatting classifier otherwise.
	HeadingsAuto HeadingStrategy = "auto"
	// HeadingsClassifier always infers headings from formatting.
	HeadingsClassifier HeadingStrategy = "classifier"
	// HeadingsStyle promotes only paragraphs with a Title or HeadingN style.
	HeadingsStyle HeadingStrategy = "style"
	// HeadingsNone disables heading promotion.
	HeadingsNone HeadingStrategy = "none"
)

// ParseHeadingStrategy parses a strategy name. The empty string selects
// HeadingsAuto.
func ParseHeadingStrategy(s string) (HeadingStrategy, error) {
	switch hs := HeadingStrategy(strings.ToLower(strings.TrimSpace(s))); hs {
	case "":
		return HeadingsAuto, nil
	case HeadingsAuto, HeadingsClassifier, HeadingsStyle, HeadingsNone:
		return hs, nil
	}
	return "", fmt.Errorf("unknown heading strategy %q", s)
}

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	headings  HeadingStrategy
	listStyle string

	// Mapping options
	preMerge     bool
	normalize    bool
	resolveLinks bool

	// Output options
	frontMatter bool

	logger *slog.Logger
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		headings:     HeadingsAuto,
		listStyle:    "", // pipeline default
		preMerge:     true,
		normalize:    true,
		resolveLinks: false,
		frontMatter:  false,
		logger:       nil, // discard
	}
}

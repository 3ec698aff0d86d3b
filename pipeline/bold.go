package pipeline

import (
	"strings"
	"unicode"

	"github.com/tsawler/docxmd/model"
)

// BoldMerger accumulates consecutive bold text and link runs into a single
// Strong node.
//
// Markdown uses a symmetric delimiter for bold, so a Strong must not open or
// close on whitespace, and must not sit against a word character of its
// neighbor while itself starting or ending on punctuation. Leading and
// trailing spaces are moved outside the Strong; an invalid alphanumeric
// boundary cancels the merge and the runs pass through unchanged.
type BoldMerger struct {
	pending []model.Inline

	// prev is the last non-bold node seen before the pending runs.
	prev model.Inline
}

// NewBoldMerger creates a bold merger with an empty buffer.
func NewBoldMerger() *BoldMerger {
	return &BoldMerger{}
}

// ProcessNode implements Processor.
func (bm *BoldMerger) ProcessNode(node model.Inline, _ int, _ []model.Inline) (Outcome[model.Inline], error) {
	if isMergeableBold(node) {
		bm.pending = append(bm.pending, node)
		return Consume[model.Inline](), nil
	}

	outcome := Pass[model.Inline]()
	if len(bm.pending) > 0 {
		outcome = Emit(true, bm.flush(bm.prev, node)...)
	}
	bm.prev = node
	return outcome, nil
}

// End implements Ender. Bold runs at the end of the input are flushed with
// no following sibling.
func (bm *BoldMerger) End(_ []model.Inline) (Outcome[model.Inline], error) {
	if len(bm.pending) == 0 {
		return Pass[model.Inline](), nil
	}
	return Emit(true, bm.flush(bm.prev, nil)...), nil
}

// isMergeableBold reports whether node is a bold run with visible content.
// Whitespace-only text never counts as bold.
func isMergeableBold(node model.Inline) bool {
	if !model.IsBold(node) {
		return false
	}
	if t, ok := node.(*model.Text); ok && strings.TrimSpace(t.Value) == "" {
		return false
	}
	return true
}

// flush empties the buffer and returns the nodes to emit in its place.
func (bm *BoldMerger) flush(prev, next model.Inline) []model.Inline {
	runs := bm.pending
	bm.pending = nil
	return MergeBold(runs, prev, next)
}

// MergeBold wraps runs in a Strong node, fixing up or rejecting its
// boundaries against the neighboring siblings prev and next (either may be
// nil). Both boundaries are decided before anything is modified: when the
// merge is cancelled the runs are returned exactly as given.
func MergeBold(runs []model.Inline, prev, next model.Inline) []model.Inline {
	if len(runs) == 0 {
		return nil
	}

	first, _ := runs[0].(*model.Text)
	last, _ := runs[len(runs)-1].(*model.Text)

	splitLead := first != nil && strings.HasPrefix(first.Value, " ")
	if !splitLead && endsAlnum(prev) && first != nil && !startsAlnumText(first.Value) {
		return runs
	}

	splitTrail := last != nil && strings.HasSuffix(last.Value, " ")
	if !splitTrail && startsAlnum(next) && last != nil && !endsAlnumText(last.Value) {
		return runs
	}

	children := make([]model.Inline, len(runs))
	copy(children, runs)

	var lead, trail *model.Text
	if splitLead {
		var trimmed *model.Text
		lead, trimmed = splitLeadingSpace(first)
		children[0] = trimmed
	}
	if splitTrail {
		idx := len(children) - 1
		t := children[idx].(*model.Text)
		var trimmed *model.Text
		trimmed, trail = splitTrailingSpace(t)
		children[idx] = trimmed
	}

	out := make([]model.Inline, 0, 3)
	if lead != nil {
		out = append(out, lead)
	}
	out = append(out, &model.Strong{Children: children})
	if trail != nil {
		out = append(out, trail)
	}
	return out
}

// splitLeadingSpace returns the leading whitespace of t as a plain text node
// and a copy of t without it.
func splitLeadingSpace(t *model.Text) (space, rest *model.Text) {
	trimmed := strings.TrimLeftFunc(t.Value, unicode.IsSpace)
	space = &model.Text{Value: t.Value[:len(t.Value)-len(trimmed)]}
	rest = &model.Text{Value: trimmed, Signature: t.Signature}
	return space, rest
}

// splitTrailingSpace returns a copy of t without its trailing whitespace and
// that whitespace as a plain text node.
func splitTrailingSpace(t *model.Text) (rest, space *model.Text) {
	trimmed := strings.TrimRightFunc(t.Value, unicode.IsSpace)
	rest = &model.Text{Value: trimmed, Signature: t.Signature}
	space = &model.Text{Value: t.Value[len(trimmed):]}
	return rest, space
}

// endsAlnum reports whether n is text ending in an ASCII letter or digit.
func endsAlnum(n model.Inline) bool {
	t, ok := n.(*model.Text)
	return ok && endsAlnumText(t.Value)
}

// startsAlnum reports whether n is text starting with an ASCII letter or
// digit.
func startsAlnum(n model.Inline) bool {
	t, ok := n.(*model.Text)
	return ok && startsAlnumText(t.Value)
}

func startsAlnumText(s string) bool {
	return s != "" && isASCIIAlnum(s[0])
}

func endsAlnumText(s string) bool {
	return s != "" && isASCIIAlnum(s[len(s)-1])
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

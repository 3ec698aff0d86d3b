package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/docxmd/model"
)

func styled(text, style string) *model.Paragraph {
	return &model.Paragraph{
		Children: []model.Inline{plain(text)},
		Props:    model.ParagraphProps{StyleName: style},
	}
}

func TestListProcessor(t *testing.T) {
	a := styled("a", "ListParagraph")
	b := styled("b", "ListParagraph")
	p := styled("p", "")
	c := styled("c", "ListParagraph")

	got, err := Run([]model.Node{a, b, p, c}, NewListProcessor(""), Passthrough[model.Node]{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []model.Node{
		model.NewList([]*model.Paragraph{a, b}),
		p,
		model.NewList([]*model.Paragraph{c}), // trailing list is flushed
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestListProcessor_CustomStyle(t *testing.T) {
	a := styled("a", "Bullets")
	b := styled("b", "ListParagraph")

	got, err := Run([]model.Node{a, b}, NewListProcessor("Bullets"), Passthrough[model.Node]{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []model.Node{model.NewList([]*model.Paragraph{a}), b}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestListProcessor_TriggerStillPromoted(t *testing.T) {
	item := styled("item", "ListParagraph")
	title := styled("Next section", "Heading1")

	procs := []Processor[model.Node]{NewListProcessor(""), NewStyleNameHeadings(nil), Passthrough[model.Node]{}}
	got, err := Run([]model.Node{item, title}, procs...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []model.Node{
		model.NewList([]*model.Paragraph{item}),
		&model.Heading{Depth: 1, Children: title.Children},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestStyleNameHeadings_Depth(t *testing.T) {
	displayNames := map[string]string{
		"Berschrift3": "heading 3",
		"Custom":      "Title",
		"Deep":        "heading 7",
		"Quote":       "Intense Quote",
	}
	sh := NewStyleNameHeadings(func(id string) string { return displayNames[id] })

	tests := []struct {
		style string
		want  int
	}{
		{"Title", 1},
		{"Heading1", 1},
		{"Heading2", 2},
		{"Heading3", 3},
		{"Heading4", 4},
		{"Heading5", 0},
		{"Berschrift3", 3},
		{"Custom", 1},
		{"Deep", 0},
		{"Quote", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := sh.Depth(tt.style); got != tt.want {
			t.Errorf("Depth(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}

	if got := NewStyleNameHeadings(nil).Depth("Berschrift3"); got != 0 {
		t.Errorf("Depth without display names = %d, want 0", got)
	}
}

// titleIntroBody builds paragraphs whose classifier prediction makes the
// intro cluster h1.
func titleIntroBody() (title, intro *model.Paragraph, all []model.Node) {
	mk := func(text string, sig *model.ParagraphSignature) *model.Paragraph {
		return &model.Paragraph{Children: []model.Inline{plain(text)}, Signature: sig}
	}
	titleSig := &model.ParagraphSignature{FontSize: model.IntPtr(32), IsBold: true, JustifyClass: "center"}
	introSig := &model.ParagraphSignature{FontSize: model.IntPtr(20), IsBold: true}
	bodySig := &model.ParagraphSignature{FontSize: model.IntPtr(20)}

	title = mk("Title text", titleSig)
	intro = mk("Intro", introSig)
	all = []model.Node{title, intro, mk("Intro", introSig)}
	for i := 0; i < 10; i++ {
		all = append(all, mk("Body A", bodySig))
	}
	return title, intro, all
}

func TestClassifierHeadings(t *testing.T) {
	title, intro, nodes := titleIntroBody()

	ch := NewClassifierHeadings(nil)
	got, err := Run(nodes, ch, Passthrough[model.Node]{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != len(nodes) {
		t.Fatalf("got %d nodes, want %d", len(got), len(nodes))
	}
	if got[0] != title {
		t.Errorf("title node = %#v, want it unchanged", got[0])
	}
	h, ok := got[1].(*model.Heading)
	if !ok || h.Depth != 1 || model.PlainText(h) != model.PlainText(intro) {
		t.Errorf("intro node = %#v, want depth-1 heading", got[1])
	}
	if _, ok := got[3].(*model.Paragraph); !ok {
		t.Errorf("body node = %#v, want paragraph", got[3])
	}
	if ch.Prediction().Paragraph == nil {
		t.Error("Prediction().Paragraph = nil")
	}
}

func TestClassifierHeadings_NoSignatures(t *testing.T) {
	nodes := []model.Node{styled("a", ""), styled("b", "")}
	got, err := Run(nodes, NewClassifierHeadings(nil), Passthrough[model.Node]{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff(nodes, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestAutoHeadings(t *testing.T) {
	t.Run("style names present", func(t *testing.T) {
		_, _, nodes := titleIntroBody()
		heading := styled("Chapter", "Heading2")
		nodes = append(nodes, heading)

		got, err := Run(nodes, NewAutoHeadings(nil, nil), Passthrough[model.Node]{})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		var headings []*model.Heading
		for _, n := range got {
			if h, ok := n.(*model.Heading); ok {
				headings = append(headings, h)
			}
		}
		if len(headings) != 1 || headings[0].Depth != 2 {
			t.Errorf("headings = %#v, want only the styled depth-2 heading", headings)
		}
	})

	t.Run("falls back to classifier", func(t *testing.T) {
		_, _, nodes := titleIntroBody()

		got, err := Run(nodes, NewAutoHeadings(nil, nil), Passthrough[model.Node]{})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if h, ok := got[1].(*model.Heading); !ok || h.Depth != 1 {
			t.Errorf("intro node = %#v, want depth-1 heading", got[1])
		}
	})
}

func TestPhrasingProcessor(t *testing.T) {
	p := &model.Paragraph{Children: []model.Inline{plain("Hello "), bold("world"), plain(" there")}}
	h := &model.Heading{Depth: 1, Children: []model.Inline{bold("untouched")}}

	var seen []model.Node
	spy := &nodeSpy{seen: &seen}

	got, err := Run([]model.Node{p, h}, NewPhrasingProcessor(nil), spy, Passthrough[model.Node]{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantChildren := []model.Inline{plain("Hello "), strong(bold("world")), plain(" there")}
	if diff := cmp.Diff(wantChildren, p.Children); diff != "" {
		t.Errorf("paragraph children mismatch (-want +got):\n%s", diff)
	}
	if len(seen) != 2 || seen[0] != p {
		t.Errorf("later stage saw %v, want the rewritten paragraph", seen)
	}
	if got[1] != h || len(h.Children) != 1 {
		t.Errorf("heading = %#v, want it unchanged", got[1])
	}
}

type nodeSpy struct{ seen *[]model.Node }

func (s *nodeSpy) ProcessNode(n model.Node, _ int, _ []model.Node) (Outcome[model.Node], error) {
	*s.seen = append(*s.seen, n)
	return Pass[model.Node](), nil
}

type failingInline struct{}

var errInline = errors.New("inline failure")

func (failingInline) ProcessNode(model.Inline, int, []model.Inline) (Outcome[model.Inline], error) {
	return Outcome[model.Inline]{}, errInline
}

func TestPhrasingProcessor_ErrorAborts(t *testing.T) {
	pp := NewPhrasingProcessor(func() []Processor[model.Inline] {
		return []Processor[model.Inline]{failingInline{}}
	})
	p := &model.Paragraph{Children: []model.Inline{plain("x")}}

	got, err := Run([]model.Node{p}, pp, Passthrough[model.Node]{})
	if got != nil {
		t.Errorf("Run() output = %v, want nil", got)
	}
	if !errors.Is(err, errInline) || !errors.Is(err, ErrStage) {
		t.Errorf("Run() error = %v, want ErrStage wrapping the inline failure", err)
	}
}

func TestPhrasingProcessor_FreshStagesPerParagraph(t *testing.T) {
	// A bold run at the end of one paragraph must not merge with the next.
	p1 := &model.Paragraph{Children: []model.Inline{plain("a "), bold("b")}}
	p2 := &model.Paragraph{Children: []model.Inline{bold("c"), plain(" d")}}

	if _, err := Run([]model.Node{p1, p2}, NewPhrasingProcessor(nil), Passthrough[model.Node]{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if diff := cmp.Diff([]model.Inline{plain("a "), strong(bold("b"))}, p1.Children); diff != "" {
		t.Errorf("p1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Inline{strong(bold("c")), plain(" d")}, p2.Children); diff != "" {
		t.Errorf("p2 mismatch (-want +got):\n%s", diff)
	}
}

// document builds a fresh input for the default stages.
func document() []model.Node {
	item := func(text string) *model.Paragraph {
		return &model.Paragraph{
			Children: []model.Inline{bold(text), plain(" item")},
			Props:    model.ParagraphProps{StyleName: DefaultListStyle},
		}
	}
	return []model.Node{
		styled("Overview", "Title"),
		&model.Paragraph{Children: []model.Inline{plain("Some "), bold("key"), plain(" text.")}},
		item("First"),
		item("Second"),
		styled("Details", "Heading2"),
	}
}

func TestDefaultProcessors(t *testing.T) {
	got, err := Run(document(), DefaultProcessors(NewAutoHeadings(nil, nil), "")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	listItem := func(text string) *model.Paragraph {
		return &model.Paragraph{
			Children: []model.Inline{strong(bold(text)), plain(" item")},
			Props:    model.ParagraphProps{StyleName: DefaultListStyle},
		}
	}
	want := []model.Node{
		&model.Heading{Depth: 1, Children: []model.Inline{plain("Overview")}},
		&model.Paragraph{Children: []model.Inline{plain("Some "), strong(bold("key")), plain(" text.")}},
		model.NewList([]*model.Paragraph{listItem("First"), listItem("Second")}),
		&model.Heading{Depth: 2, Children: []model.Inline{plain("Details")}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultProcessors_Deterministic(t *testing.T) {
	first, err := Run(document(), DefaultProcessors(NewAutoHeadings(nil, nil), "")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := Run(document(), DefaultProcessors(NewAutoHeadings(nil, nil), "")...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

func TestDefaultProcessors_NoHeadings(t *testing.T) {
	procs := DefaultProcessors(nil, "")
	if len(procs) != 3 {
		t.Fatalf("len(DefaultProcessors(nil)) = %d, want 3", len(procs))
	}
	got, err := Run([]model.Node{styled("Overview", "Title")}, procs...)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := got[0].(*model.Paragraph); !ok {
		t.Errorf("got %#v, want an unpromoted paragraph", got[0])
	}
}

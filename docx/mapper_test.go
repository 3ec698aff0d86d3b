package docx

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsawler/docxmd/model"
)

// parseBody parses body content wrapped in a w:document.
func parseBody(t *testing.T, body string) []*Element {
	t.Helper()
	xmlDoc := `<w:document ` + testNamespaces + `><w:body>` + body + `</w:body></w:document>`
	elements, err := ParseElements(strings.NewReader(xmlDoc))
	if err != nil {
		t.Fatalf("ParseElements() error = %v", err)
	}
	return elements
}

func mapOne(t *testing.T, m *ParagraphMapper, body string) model.Node {
	t.Helper()
	elements := parseBody(t, body)
	if len(elements) != 1 {
		t.Fatalf("got %d elements, want 1", len(elements))
	}
	return m.MapElement(elements[0])
}

func TestParagraphMapper_Runs(t *testing.T) {
	m := &ParagraphMapper{}
	got := mapOne(t, m, `<w:p>
		<w:r><w:t>plain</w:t></w:r>
		<w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t>bold</w:t></w:r>
		<w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>under</w:t></w:r>
		<w:r><w:t></w:t></w:r>
		<w:r><w:tab/></w:r>
		<w:bookmarkStart/>
	</w:p>`)

	want := &model.Paragraph{
		Children: []model.Inline{
			&model.Text{Value: "plain"},
			&model.Text{Value: "bold", Signature: &model.RunSignature{FontSize: model.IntPtr(28), IsBold: true}},
			&model.Text{Value: "under", Signature: &model.RunSignature{IsUnderlined: true}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapElement() mismatch (-want +got):\n%s", diff)
	}
}

func TestParagraphMapper_NonParagraph(t *testing.T) {
	m := NewParagraphMapper()
	for _, body := range []string{`<w:tbl/>`, `<w:sectPr/>`} {
		if got := mapOne(t, m, body); got != nil {
			t.Errorf("MapElement(%s) = %v, want nil", body, got)
		}
	}
}

func TestParagraphMapper_DropsEmpty(t *testing.T) {
	m := NewParagraphMapper()
	tests := []string{
		`<w:p/>`,
		`<w:p><w:pPr><w:rPr><w:b/></w:rPr></w:pPr></w:p>`,
		`<w:p><w:r><w:t></w:t></w:r></w:p>`,
		`<w:p><w:hyperlink r:id="rId1"/></w:p>`,
		`<w:p><w:hyperlink><w:r><w:t></w:t></w:r></w:hyperlink></w:p>`,
	}
	for _, body := range tests {
		if got := mapOne(t, m, body); got != nil {
			t.Errorf("MapElement(%s) = %v, want nil", body, got)
		}
	}
}

func TestParagraphMapper_Hyperlinks(t *testing.T) {
	tests := []struct {
		name  string
		links func(string) (string, bool)
		body  string
		want  *model.Link
	}{
		{
			name: "literal text",
			body: `<w:hyperlink><w:r><w:t>https://example.com</w:t></w:r></w:hyperlink>`,
			want: &model.Link{
				URL:      "https://example.com",
				Children: []model.Inline{&model.Text{Value: "https://example.com"}},
			},
		},
		{
			name: "email",
			body: `<w:hyperlink><w:r><w:t>jane.doe@example.com</w:t></w:r></w:hyperlink>`,
			want: &model.Link{
				URL:      "mailto:jane.doe@example.com",
				Children: []model.Inline{&model.Text{Value: "jane.doe@example.com"}},
			},
		},
		{
			name: "separate signatures",
			body: `<w:hyperlink><w:rPr><w:u/></w:rPr><w:r><w:rPr><w:sz w:val="20"/></w:rPr><w:t>site</w:t></w:r></w:hyperlink>`,
			want: &model.Link{
				URL:       "site",
				Children:  []model.Inline{&model.Text{Value: "site", Signature: &model.RunSignature{FontSize: model.IntPtr(20)}}},
				Signature: &model.RunSignature{IsUnderlined: true},
			},
		},
		{
			name: "resolved relationship",
			links: func(id string) (string, bool) {
				return map[string]string{"rId7": "https://example.org/docs"}[id], id == "rId7"
			},
			body: `<w:hyperlink r:id="rId7"><w:r><w:t>the docs</w:t></w:r></w:hyperlink>`,
			want: &model.Link{
				URL:      "https://example.org/docs",
				Children: []model.Inline{&model.Text{Value: "the docs"}},
			},
		},
		{
			name:  "unresolved relationship falls back",
			links: func(string) (string, bool) { return "", false },
			body:  `<w:hyperlink r:id="rId8"><w:r><w:t>me@example.com</w:t></w:r></w:hyperlink>`,
			want: &model.Link{
				URL:      "mailto:me@example.com",
				Children: []model.Inline{&model.Text{Value: "me@example.com"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &ParagraphMapper{Links: tt.links}
			got := mapOne(t, m, `<w:p>`+tt.body+`</w:p>`)
			p, ok := got.(*model.Paragraph)
			if !ok || len(p.Children) != 1 {
				t.Fatalf("MapElement() = %#v, want paragraph with one link", got)
			}
			if diff := cmp.Diff(tt.want, p.Children[0]); diff != "" {
				t.Errorf("link mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParagraphMapper_Signature(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantSig   *model.ParagraphSignature
		wantProps model.ParagraphProps
	}{
		{
			name: "full",
			body: `<w:p w14:paraId="00AB12CD"><w:pPr><w:pStyle w:val="Title"/><w:jc w:val="center"/>` +
				`<w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`,
			wantSig: &model.ParagraphSignature{
				ID: "00AB12CD", FontSize: model.IntPtr(32), IsBold: true,
				JustifyClass: "center", StyleName: "Title",
			},
			wantProps: model.ParagraphProps{ID: "00AB12CD", StyleName: "Title", JustifyClass: "center"},
		},
		{
			name:      "style without run properties",
			body:      `<w:p><w:pPr><w:pStyle w:val="ListParagraph"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`,
			wantSig:   nil,
			wantProps: model.ParagraphProps{StyleName: "ListParagraph"},
		},
		{
			name:    "no properties",
			body:    `<w:p><w:r><w:t>x</w:t></w:r></w:p>`,
			wantSig: nil,
		},
		{
			name:    "bold switched off",
			body:    `<w:p><w:pPr><w:rPr><w:b w:val="0"/><w:u w:val="none"/></w:rPr></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`,
			wantSig: &model.ParagraphSignature{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapOne(t, &ParagraphMapper{}, tt.body).(*model.Paragraph)
			if diff := cmp.Diff(tt.wantSig, got.Signature); diff != "" {
				t.Errorf("Signature mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantProps, got.Props); diff != "" {
				t.Errorf("Props mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParagraphMapper_PreMerge(t *testing.T) {
	body := `<w:p>
		<w:r><w:t xml:space="preserve">Hello </w:t></w:r>
		<w:r><w:rPr><w:b/></w:rPr><w:t>big</w:t></w:r>
		<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve"> world</w:t></w:r>
		<w:r><w:t>!</w:t></w:r>
	</w:p>`
	bold := &model.RunSignature{IsBold: true}

	merged := mapOne(t, &ParagraphMapper{PreMerge: true}, body).(*model.Paragraph)
	want := []model.Inline{
		&model.Text{Value: "Hello "},
		&model.Strong{Children: []model.Inline{
			&model.Text{Value: "big", Signature: bold},
			&model.Text{Value: " world", Signature: bold},
		}},
		&model.Text{Value: "!"},
	}
	if diff := cmp.Diff(want, merged.Children); diff != "" {
		t.Errorf("pre-merged children mismatch (-want +got):\n%s", diff)
	}

	raw := mapOne(t, &ParagraphMapper{PreMerge: false}, body).(*model.Paragraph)
	if len(raw.Children) != 4 {
		t.Errorf("unmerged children = %d, want 4", len(raw.Children))
	}
}

func TestParagraphMapper_Normalize(t *testing.T) {
	decomposed := "cafe\u0301"
	body := "<w:p><w:r><w:t>" + decomposed + "</w:t></w:r></w:p>"

	got := mapOne(t, &ParagraphMapper{Normalize: true}, body).(*model.Paragraph)
	if v := got.Children[0].(*model.Text).Value; v != "caf\u00e9" {
		t.Errorf("normalized value = %q, want %q", v, "caf\u00e9")
	}

	got = mapOne(t, &ParagraphMapper{Normalize: false}, body).(*model.Paragraph)
	if v := got.Children[0].(*model.Text).Value; v != decomposed {
		t.Errorf("raw value = %q, want %q", v, decomposed)
	}
}

type mapperFunc func(*Element) model.Node

func (f mapperFunc) MapElement(el *Element) model.Node { return f(el) }

func TestMapElements(t *testing.T) {
	elements := parseBody(t, `<w:p><w:r><w:t>a</w:t></w:r></w:p><w:tbl/><w:p/><w:p><w:r><w:t>b</w:t></w:r></w:p>`)

	tables := mapperFunc(func(el *Element) model.Node {
		if el.Is("tbl") {
			return &model.Paragraph{Children: []model.Inline{&model.Text{Value: "[table]"}}}
		}
		return nil
	})

	nodes := MapElements(elements, NewParagraphMapper(), tables)

	var texts []string
	for _, n := range nodes {
		texts = append(texts, model.PlainText(n))
	}
	if diff := cmp.Diff([]string{"a", "[table]", "b"}, texts); diff != "" {
		t.Errorf("MapElements() mismatch (-want +got):\n%s", diff)
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"jane@example.com", true},
		{"jane.doe@mail.example.co", true},
		{"j-d@ex-ample.org", true},
		{"JANE@EXAMPLE.COM", true},
		{"jane@example.info", false}, // final label limited to 3 characters
		{"jane@example", false},
		{"@example.com", false},
		{"jane doe@example.com", false},
		{"https://example.com", false},
	}
	for _, tt := range tests {
		if got := IsEmail(tt.in); got != tt.want {
			t.Errorf("IsEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParagraphMapper_BoldSwitchedOff(t *testing.T) {
	// An explicit false value turns the toggle off; presence alone is not
	// enough.
	tests := []struct {
		val  string
		want bool
	}{
		{`w:val="0"`, false},
		{`w:val="false"`, false},
		{`w:val="off"`, false},
		{`w:val="1"`, true},
		{``, true},
	}

	for _, tt := range tests {
		body := `<w:p><w:r><w:t xml:space="preserve">a </w:t></w:r>` +
			`<w:r><w:rPr><w:b ` + tt.val + `/></w:rPr><w:t>word</w:t></w:r></w:p>`
		got := mapOne(t, NewParagraphMapper(), body).(*model.Paragraph)

		_, merged := got.Children[len(got.Children)-1].(*model.Strong)
		if merged != tt.want {
			t.Errorf("<w:b %s/> merged into strong = %v, want %v", tt.val, merged, tt.want)
		}
		if !tt.want {
			text, ok := got.Children[1].(*model.Text)
			if !ok || text.Signature == nil || text.Signature.IsBold {
				t.Errorf("<w:b %s/> run = %#v, want a non-bold text run", tt.val, got.Children[1])
			}
		}
	}
}

package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tsawler/docxmd/model"
)

// JSONRenderer writes the semantic tree in the mdast node shape:
// {"type":"root","children":[...]}.
type JSONRenderer struct {
	// Indent is the per-level indentation; empty writes compact JSON.
	Indent string
}

// Extension implements Renderer.
func (jr *JSONRenderer) Extension() string { return ".json" }

// Render implements Renderer.
func (jr *JSONRenderer) Render(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if jr.Indent != "" {
		enc.SetIndent("", jr.Indent)
	}
	return enc.Encode(MdastNode(rootOf(doc)))
}

// Mdast is one node of an mdast tree. Every node except text has a
// children array, even when it is empty.
type Mdast struct {
	Type     string  `json:"type"`
	Depth    int     `json:"depth,omitempty"`
	Ordered  *bool   `json:"ordered,omitempty"`
	Spread   *bool   `json:"spread,omitempty"`
	URL      string  `json:"url,omitempty"`
	Value    *string `json:"value,omitempty"`
	Children []Mdast `json:"children,omitempty"`
}

// MdastNode converts a semantic node to its mdast form.
func MdastNode(n model.Node) Mdast {
	m := Mdast{Type: n.Type().String()}

	switch v := n.(type) {
	case *model.Root:
		m.Children = blocks(v.Children)
	case *model.Paragraph:
		m.Children = inlines(v.Children)
	case *model.Heading:
		m.Depth = v.Depth
		m.Children = inlines(v.Children)
	case *model.List:
		m.Ordered = boolPtr(false)
		m.Spread = boolPtr(false)
		for _, item := range v.Children {
			m.Children = append(m.Children, MdastNode(item))
		}
	case *model.ListItem:
		m.Spread = boolPtr(false)
		m.Children = blocks(v.Children)
	case *model.Text:
		value := v.Value
		m.Value = &value
	case *model.Link:
		m.URL = v.URL
		m.Children = inlines(v.Children)
	case *model.Strong:
		m.Children = inlines(v.Children)
	}

	return m
}

// MarshalJSON implements json.Marshaler.
func (m Mdast) MarshalJSON() ([]byte, error) {
	type plain Mdast
	if m.Type == model.NodeTypeText.String() {
		return marshalUnescaped(plain(m))
	}

	children := m.Children
	if children == nil {
		children = []Mdast{}
	}
	return marshalUnescaped(struct {
		plain
		Children []Mdast `json:"children"`
	}{plain(m), children})
}

// marshalUnescaped is json.Marshal without HTML escaping, so node values
// keep "<" and "&" as written.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func blocks(nodes []model.Node) []Mdast {
	var out []Mdast
	for _, n := range nodes {
		out = append(out, MdastNode(n))
	}
	return out
}

func inlines(nodes []model.Inline) []Mdast {
	var out []Mdast
	for _, n := range nodes {
		out = append(out, MdastNode(n))
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

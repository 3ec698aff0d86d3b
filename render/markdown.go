package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/docxmd/model"
)

// MarkdownRenderer writes CommonMark. Blocks are separated by a blank line.
type MarkdownRenderer struct {
	// FrontMatter prepends the document metadata as a YAML block when the
	// metadata is not empty.
	FrontMatter bool
}

// Extension implements Renderer.
func (mr *MarkdownRenderer) Extension() string { return ".md" }

// Render implements Renderer.
func (mr *MarkdownRenderer) Render(w io.Writer, doc *model.Document) error {
	bw := bufio.NewWriter(w)

	if mr.FrontMatter && doc != nil && !doc.Metadata.IsZero() {
		if err := writeFrontMatter(bw, doc.Metadata); err != nil {
			return err
		}
	}

	for i, n := range rootOf(doc).Children {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString(Markdown(n))
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// Markdown returns the Markdown text of a single block or inline node,
// without a trailing newline.
func Markdown(n model.Node) string {
	var sb strings.Builder
	writeMarkdown(&sb, n)
	return sb.String()
}

func writeMarkdown(sb *strings.Builder, n model.Node) {
	switch v := n.(type) {
	case *model.Root:
		for i, c := range v.Children {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			writeMarkdown(sb, c)
		}
	case *model.Heading:
		sb.WriteString(strings.Repeat("#", v.Depth))
		sb.WriteString(" ")
		writeInlines(sb, v.Children)
	case *model.Paragraph:
		var line strings.Builder
		writeInlines(&line, v.Children)
		sb.WriteString(escapeLineStart(line.String()))
	case *model.List:
		for i, item := range v.Children {
			if i > 0 {
				sb.WriteString("\n")
			}
			writeMarkdown(sb, item)
		}
	case *model.ListItem:
		sb.WriteString("- ")
		for i, c := range v.Children {
			if i > 0 {
				sb.WriteString(" ")
			}
			if p, ok := c.(*model.Paragraph); ok {
				var line strings.Builder
				writeInlines(&line, p.Children)
				sb.WriteString(escapeLineStart(line.String()))
				continue
			}
			writeMarkdown(sb, c)
		}
	case model.Inline:
		writeInlines(sb, []model.Inline{v})
	}
}

func writeInlines(sb *strings.Builder, nodes []model.Inline) {
	for _, n := range nodes {
		switch v := n.(type) {
		case *model.Text:
			sb.WriteString(escapeText(v.Value))
		case *model.Strong:
			sb.WriteString("**")
			writeInlines(sb, v.Children)
			sb.WriteString("**")
		case *model.Link:
			sb.WriteString("[")
			writeInlines(sb, v.Children)
			sb.WriteString("](")
			sb.WriteString(escapeURL(v.URL))
			sb.WriteString(")")
		}
	}
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// escapeText backslash-escapes characters that would otherwise start
// emphasis, code, links or raw HTML.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeLineStart escapes a leading character that would turn a paragraph
// into a heading, list item or block quote. Leading indentation is dropped:
// four spaces would start a code block, and fewer are ignored by CommonMark.
func escapeLineStart(s string) string {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '>', '-', '+':
		return `\` + s
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == '.' || s[i] == ')') {
		return s[:i] + `\` + s[i:]
	}
	return s
}

func escapeURL(u string) string {
	if strings.ContainsAny(u, " ()") {
		return "<" + strings.ReplaceAll(u, ">", "%3E") + ">"
	}
	return u
}

// frontMatter is the YAML shape of document metadata.
type frontMatter struct {
	Title    string            `yaml:"title,omitempty"`
	Author   string            `yaml:"author,omitempty"`
	Subject  string            `yaml:"subject,omitempty"`
	Keywords []string          `yaml:"keywords,omitempty"`
	Creator  string            `yaml:"creator,omitempty"`
	Created  string            `yaml:"created,omitempty"`
	Modified string            `yaml:"modified,omitempty"`
	Custom   map[string]string `yaml:"custom,omitempty"`
}

func writeFrontMatter(w io.Writer, m model.Metadata) error {
	fm := frontMatter{
		Title:    m.Title,
		Author:   m.Author,
		Subject:  m.Subject,
		Keywords: m.Keywords,
		Creator:  m.Creator,
		Created:  formatDate(m.CreationDate),
		Modified: formatDate(m.ModDate),
		Custom:   m.Custom,
	}
	data, err := yaml.Marshal(&fm)
	if err != nil {
		return fmt.Errorf("encoding front matter: %w", err)
	}
	if _, err := fmt.Fprintf(w, "---\n%s---\n\n", data); err != nil {
		return err
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

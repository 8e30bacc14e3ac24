package docs

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// Markdown wraps the markdown package with the pieces the generated
// documents need.
type Markdown struct {
	md     *md.Markdown
	writer io.Writer
	buffer *strings.Builder
}

// NewMarkdownBuffer creates a new markdown builder with internal buffer
func NewMarkdownBuffer() *Markdown {
	buffer := &strings.Builder{}
	return &Markdown{
		md:     md.NewMarkdown(buffer),
		writer: buffer,
		buffer: buffer,
	}
}

// String returns the buffered content
func (m *Markdown) String() string {
	return m.buffer.String()
}

// IssueFrontMatter writes GitHub issue template front matter. It must be
// called before any other content.
func (m *Markdown) IssueFrontMatter(fm IssueFrontMatter) *Markdown {
	fmt.Fprintln(m.writer, "---")
	fmt.Fprintf(m.writer, "name: %s\n", fm.Name)
	fmt.Fprintf(m.writer, "about: %s\n", fm.About)
	fmt.Fprintf(m.writer, "title: '%s'\n", fm.Title)
	fmt.Fprintf(m.writer, "labels: '%s'\n", fm.Labels)
	fmt.Fprintf(m.writer, "assignees: '%s'\n", fm.Assignees)
	fmt.Fprintln(m.writer, "---")
	fmt.Fprintln(m.writer)
	return m
}

// IssueFrontMatter is the header GitHub reads from an issue template.
type IssueFrontMatter struct {
	Name      string
	About     string
	Title     string
	Labels    string
	Assignees string
}

// H1 creates a level 1 header
func (m *Markdown) H1(text string) *Markdown {
	m.md.H1(text)
	return m
}

// H2 creates a level 2 header
func (m *Markdown) H2(text string) *Markdown {
	m.md.H2(text)
	return m
}

// H3 creates a level 3 header
func (m *Markdown) H3(text string) *Markdown {
	m.md.H3(text)
	return m
}

// PlainText adds plain text
func (m *Markdown) PlainText(text string) *Markdown {
	m.md.PlainText(text)
	return m
}

// LF adds a line feed
func (m *Markdown) LF() *Markdown {
	m.md.LF()
	return m
}

// Bold adds bold text
func (m *Markdown) Bold(text string) *Markdown {
	m.md.PlainText(md.Bold(text))
	return m
}

// Italic adds italic text
func (m *Markdown) Italic(text string) *Markdown {
	m.md.PlainText(md.Italic(text))
	return m
}

// CodeBlock adds a code block with syntax highlighting
func (m *Markdown) CodeBlock(syntax, code string) *Markdown {
	m.md.CodeBlocks(md.SyntaxHighlight(syntax), code)
	return m
}

// Table adds a markdown table
func (m *Markdown) Table(header []string, rows [][]string) *Markdown {
	m.md.Table(md.TableSet{
		Header: header,
		Rows:   rows,
	})
	return m
}

// Build finalizes the markdown document
func (m *Markdown) Build() error {
	return m.md.Build()
}

// link renders a markdown link, or just the text when url is empty.
func link(text, url string) string {
	if url == "" {
		return text
	}
	return md.Link(text, url)
}

// cell escapes text for use inside a table cell.
func cell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.Join(strings.Fields(text), " ")
}

package emitter

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Page holds the generated parts of a document.
type Page struct {
	Title string
	// Style is the static styling followed by the generated rules.
	Style string
	// Machine is the rendered stream.
	Machine string
	// Reference is an HTML rendering of the state table. It may be empty.
	Reference string
}

// Shell wraps the generated parts into a complete document.
// Implementations must splice Style and Machine in verbatim.
type Shell interface {
	Render(w io.Writer, page Page) error
}

// ShellFunc adapts an ordinary function to a Shell.
type ShellFunc func(w io.Writer, page Page) error

func (f ShellFunc) Render(w io.Writer, page Page) error {
	return f(w, page)
}

//go:embed assets/page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page.html").Parse(pageSource))

type pageData struct {
	Title     string
	Style     template.CSS
	Machine   template.HTML
	Reference template.HTML
}

// DefaultShell renders a standalone page with a short explanation and the reference table.
func DefaultShell() Shell {
	return ShellFunc(func(w io.Writer, page Page) error {
		title := page.Title
		if title == "" {
			title = "CSS Turing Machine"
		}
		return pageTemplate.Execute(w, pageData{
			Title:     title,
			Style:     template.CSS(page.Style),
			Machine:   template.HTML(page.Machine),
			Reference: template.HTML(page.Reference),
		})
	})
}

// BareShell writes only the style element and the machine, for embedding in another page.
func BareShell() Shell {
	return ShellFunc(func(w io.Writer, page Page) error {
		_, err := fmt.Fprintf(w, "<style>%s</style>%s", page.Style, page.Machine)
		return err
	})
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// MarkdownToHTML converts a Markdown fragment, such as the state table, to HTML.
// Raw HTML in the source is dropped.
func MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

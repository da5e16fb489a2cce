package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma theme used when none is configured.
const DefaultStyle = "monokai"

var highlightTmpl = template.Must(template.New("highlight").Parse(highlightPage))

// highlightData is passed to highlightPage.
type highlightData struct {
	Title     string
	ChromaCSS template.CSS
	Content   template.HTML
}

// newMarkdown builds the goldmark converter used by highlighted views.
// Fenced blocks are highlighted by their language tag with CSS classes, so
// the page needs the companion stylesheet from ChromaCSS.
func newMarkdown(style string) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithGuessLanguage(false),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// ChromaCSS returns the stylesheet for class-based highlighting in the named
// theme. Unknown names fall back to chroma's default theme.
func ChromaCSS(style string) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", style, err)
	}
	return buf.String(), nil
}

// HighlightedHTML renders the raw HTML view as a standalone highlighted page.
func (e *Exporter) HighlightedHTML(ctx context.Context, name string) (string, error) {
	src, err := e.RawHTML(ctx, name)
	if err != nil {
		return "", err
	}
	return e.Highlight(name+" · HTML", src)
}

// HighlightedCSS renders the raw CSS view as a standalone highlighted page.
func (e *Exporter) HighlightedCSS(ctx context.Context, name string) (string, error) {
	src, err := e.RawCSS(ctx, name)
	if err != nil {
		return "", err
	}
	return e.Highlight(name+" · CSS", src)
}

// Highlight converts a Markdown document to HTML and wraps it in a page
// carrying the highlighter stylesheet.
func (e *Exporter) Highlight(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := e.md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	css, err := ChromaCSS(e.style)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := highlightTmpl.Execute(&out, highlightData{
		Title:     title,
		ChromaCSS: template.CSS(css),
		Content:   template.HTML(body.String()),
	}); err != nil {
		return "", fmt.Errorf("rendering highlight page: %w", err)
	}
	return out.String(), nil
}

package export

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/docpress/internal/layout"
)

// PageBreak separates pages in the Markdown rendition.
const PageBreak = "\n\n---\n\n"

// MarkdownPages renders the document, picks every page container out of the
// laid-out HTML and converts each one to Markdown. The title comes from the
// document data when it has one.
func (e *Exporter) MarkdownPages(ctx context.Context, name string) (title string, pages []string, err error) {
	r, err := e.assembler.Assemble(ctx, name)
	if err != nil {
		return "", nil, err
	}
	html, err := e.layout.Render(ctx, layout.View{
		Pages:   r.Pages,
		CSS:     r.CSS,
		HasCSS:  r.HasCSS,
		Current: r.Name,
	})
	if err != nil {
		return "", nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", nil, fmt.Errorf("parsing rendered %s: %w", name, err)
	}

	var convErr error
	doc.Find("div.page").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		inner, err := sel.Html()
		if err != nil {
			convErr = fmt.Errorf("page %d: %w", i+1, err)
			return false
		}
		md, err := htmltomarkdown.ConvertString(inner)
		if err != nil {
			convErr = fmt.Errorf("converting page %d: %w", i+1, err)
			return false
		}
		pages = append(pages, strings.TrimSpace(md))
		return true
	})
	if convErr != nil {
		return "", nil, convErr
	}
	return r.Title, pages, nil
}

// Markdown returns the rendered document as a single Markdown document with
// a horizontal rule between pages.
func (e *Exporter) Markdown(ctx context.Context, name string) (string, error) {
	title, pages, err := e.MarkdownPages(ctx, name)
	if err != nil {
		return "", err
	}
	return "# " + title + "\n\n" + strings.Join(pages, PageBreak) + "\n", nil
}

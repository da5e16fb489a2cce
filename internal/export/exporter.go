// Package export produces the source views of a document: raw Markdown
// listings of its HTML and CSS, syntax-highlighted pages, and portable
// Markdown and PDF renditions.
package export

import (
	"context"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/docpress/internal/assemble"
	"github.com/ziadkadry99/docpress/internal/inline"
	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/store"
)

// templateTag matches one templating delimiter pair on a single line:
// {{ ... }}, {% ... %} or {# ... #}. Each side is a single-character class,
// so mismatched pairs such as {% ... }} are stripped too, and tags spanning
// several lines are left in place.
var templateTag = regexp.MustCompile(`\{[{%#].*?[}%#]\}`)

// Exporter builds the source views of documents.
type Exporter struct {
	store     *store.Store
	assembler *assemble.Assembler
	layout    *layout.Renderer
	inliner   *inline.Inliner
	style     string
	md        goldmark.Markdown
}

// New creates an Exporter. inliner may be nil to leave image references
// untouched. style names the chroma theme used by highlighted views.
func New(s *store.Store, a *assemble.Assembler, r *layout.Renderer, inliner *inline.Inliner, style string) *Exporter {
	if style == "" {
		style = DefaultStyle
	}
	return &Exporter{
		store:     s,
		assembler: a,
		layout:    r,
		inliner:   inliner,
		style:     style,
		md:        newMarkdown(style),
	}
}

// RawHTMLSource returns the document's HTML as written: unprocessed
// fragments spliced into the base layout with its template tags stripped.
func (e *Exporter) RawHTMLSource(ctx context.Context, name string) (string, error) {
	doc, err := e.store.Open(ctx, name)
	if err != nil {
		return "", err
	}
	fragments, err := doc.Fragments()
	if err != nil {
		return "", err
	}

	var pages strings.Builder
	for _, frag := range fragments {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		src, err := doc.ReadFragment(frag)
		if err != nil {
			return "", err
		}
		pages.WriteString("<div class=\"page\">\n")
		pages.WriteString(src)
		pages.WriteString("\n</div>\n")
	}

	base, err := e.layout.RawLayout()
	if err != nil {
		return "", err
	}
	out := splicePages(StripTemplateTags(base), pages.String())
	if e.inliner != nil {
		out = e.inliner.Inline(out)
	}
	return out, nil
}

// RawCSSSource returns the global stylesheet text followed by a blank line
// and the document stylesheet, or exactly the global text when the document
// has none.
func (e *Exporter) RawCSSSource(ctx context.Context, name string) (string, error) {
	doc, err := e.store.Open(ctx, name)
	if err != nil {
		return "", err
	}
	global, err := e.layout.RawStylesheet()
	if err != nil {
		return "", err
	}
	custom, ok, err := doc.CustomCSS()
	if err != nil {
		return "", err
	}
	if !ok {
		return global, nil
	}
	return global + "\n\n" + custom, nil
}

// RawHTML returns the raw HTML source as a Markdown document.
func (e *Exporter) RawHTML(ctx context.Context, name string) (string, error) {
	src, err := e.RawHTMLSource(ctx, name)
	if err != nil {
		return "", err
	}
	return Fenced("html", src), nil
}

// RawCSS returns the combined stylesheet source as a Markdown document.
func (e *Exporter) RawCSS(ctx context.Context, name string) (string, error) {
	src, err := e.RawCSSSource(ctx, name)
	if err != nil {
		return "", err
	}
	return Fenced("css", src), nil
}

// StripTemplateTags removes template delimiter pairs from a layout.
func StripTemplateTags(s string) string {
	return templateTag.ReplaceAllString(s, "")
}

// splicePages replaces the marked page region of a stripped layout with the
// given markup. Layouts without markers get the pages before </body>, or
// appended when there is no body either.
func splicePages(base, pages string) string {
	start := strings.Index(base, layout.PagesStart)
	end := strings.Index(base, layout.PagesEnd)
	if start >= 0 && end > start {
		return base[:start+len(layout.PagesStart)] + "\n" + pages + base[end:]
	}
	if i := strings.LastIndex(base, "</body>"); i >= 0 {
		return base[:i] + pages + base[i:]
	}
	return base + pages
}

// Fenced wraps body in a Markdown fenced code block tagged with lang. The
// fence is longer than any backtick run inside body.
func Fenced(lang, body string) string {
	fence := strings.Repeat("`", max(3, longestRun(body, '`')+1))
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return fence + lang + "\n" + body + fence + "\n"
}

func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			longest = max(longest, cur)
		} else {
			cur = 0
		}
	}
	return longest
}

// Package layout wraps assembled pages in the shared base layout and renders
// the index page and global stylesheet.
package layout

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ziadkadry99/docpress/internal/store"
	"github.com/ziadkadry99/docpress/internal/tmpl"
)

const (
	BaseLayout       = "base.html"
	IndexPage        = "index.html"
	GlobalStylesheet = "css/style.css.j2"

	// PagesStart and PagesEnd delimit the page container region of the base
	// layout. Raw exports replace everything between them.
	PagesStart = "<!-- pages:start -->"
	PagesEnd   = "<!-- pages:end -->"
)

//go:embed templates
var embedded embed.FS

// Links controls how navigation links to documents are built.
type Links struct {
	DocBase       string
	DocExt        string
	StylesheetURL string
	StaticExport  bool
}

// ServerLinks are the links used by the HTTP server.
var ServerLinks = Links{DocBase: "/document/", StylesheetURL: "/css/style.css"}

// View is everything the base layout needs for one document.
type View struct {
	Pages     []string
	CSS       string
	HasCSS    bool
	Documents []string
	Current   string
	Links     Links
}

// Renderer executes the layout templates.
type Renderer struct {
	fsys  fs.FS
	style map[string]string
}

// New creates a Renderer. When dir is empty the embedded default templates
// are used; otherwise dir is the only template source. style is exposed to
// the global stylesheet as the style variable.
func New(dir string, style map[string]string) *Renderer {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			panic(err)
		}
		fsys = sub
	}
	if style == nil {
		style = map[string]string{}
	}
	return &Renderer{fsys: fsys, style: style}
}

// Render wraps the pages in the base layout.
func (r *Renderer) Render(ctx context.Context, v View) (string, error) {
	src, err := r.read(BaseLayout)
	if err != nil {
		return "", err
	}
	stylesheet, err := r.combinedStylesheet(ctx, v.CSS, v.HasCSS)
	if err != nil {
		return "", err
	}

	vars := linkVars(v.Links)
	vars["pages"] = v.Pages
	vars["stylesheet"] = stylesheet
	vars["documents"] = v.Documents
	vars["current"] = v.Current
	return tmpl.HTML(BaseLayout, src, vars)
}

// Index renders the document list page.
func (r *Renderer) Index(ctx context.Context, documents []string, links Links) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := r.read(IndexPage)
	if err != nil {
		return "", err
	}
	vars := linkVars(links)
	vars["documents"] = documents
	return tmpl.HTML(IndexPage, src, vars)
}

// Stylesheet renders the global stylesheet template.
func (r *Renderer) Stylesheet(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	src, err := r.read(GlobalStylesheet)
	if err != nil {
		return "", err
	}
	return tmpl.Text(GlobalStylesheet, src, tmpl.Vars{"style": r.style})
}

// RawLayout returns the base layout template text, unprocessed.
func (r *Renderer) RawLayout() (string, error) {
	return r.read(BaseLayout)
}

// RawStylesheet returns the global stylesheet template text, unprocessed.
// A missing stylesheet yields an empty string.
func (r *Renderer) RawStylesheet() (string, error) {
	src, err := r.read(GlobalStylesheet)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return src, err
}

// combinedStylesheet is the rendered global stylesheet followed by a blank
// line and the document stylesheet when one is present.
func (r *Renderer) combinedStylesheet(ctx context.Context, css string, hasCSS bool) (string, error) {
	global, err := r.Stylesheet(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if hasCSS {
		return global + "\n\n" + css, nil
	}
	return global, nil
}

func (r *Renderer) read(name string) (string, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("template %s: %w", name, store.ErrNotFound)
		}
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}

func linkVars(l Links) tmpl.Vars {
	return tmpl.Vars{
		"doc_base":       l.DocBase,
		"doc_ext":        l.DocExt,
		"stylesheet_url": l.StylesheetURL,
		"static_export":  l.StaticExport,
	}
}

// Package site exports every document as a self-contained static site.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/docpress/internal/assemble"
	"github.com/ziadkadry99/docpress/internal/export"
	"github.com/ziadkadry99/docpress/internal/inline"
	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/progress"
	"github.com/ziadkadry99/docpress/internal/store"
)

const (
	StylesheetFile  = "style.css"
	IndexFile       = "index.html"
	ManifestFile    = "manifest.json"
	SearchIndexFile = "search-index.json"
)

// ExportLinks point documents at sibling .html files.
var ExportLinks = layout.Links{DocExt: ".html", StylesheetURL: StylesheetFile, StaticExport: true}

// Manifest describes one export run.
type Manifest struct {
	BuildID     string          `json:"build_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Documents   []ManifestEntry `json:"documents"`
}

// ManifestEntry is one exported document.
type ManifestEntry struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Pages    int    `json:"pages"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown,omitempty"`
}

// Generator writes the static site.
type Generator struct {
	OutputDir string
	// Markdown also writes a <name>.md rendition of each document.
	Markdown bool

	store     *store.Store
	assembler *assemble.Assembler
	layout    *layout.Renderer
	exporter  *export.Exporter
	inliner   *inline.Inliner
	reporter  progress.Reporter
}

// NewGenerator creates a Generator. inliner and reporter may be nil.
func NewGenerator(outputDir string, s *store.Store, a *assemble.Assembler, r *layout.Renderer, e *export.Exporter, inliner *inline.Inliner, reporter progress.Reporter) *Generator {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Generator{
		OutputDir: outputDir,
		store:     s,
		assembler: a,
		layout:    r,
		exporter:  e,
		inliner:   inliner,
		reporter:  reporter,
	}
}

// Generate exports every document and returns the manifest it wrote.
func (g *Generator) Generate(ctx context.Context) (*Manifest, error) {
	docs, err := g.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, err
	}

	css, err := g.layout.Stylesheet(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering stylesheet: %w", err)
	}
	if err := g.write(StylesheetFile, css); err != nil {
		return nil, err
	}

	index, err := g.layout.Index(ctx, docs, ExportLinks)
	if err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}
	if err := g.write(IndexFile, index); err != nil {
		return nil, err
	}

	manifest := &Manifest{
		BuildID:     uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Documents:   []ManifestEntry{},
	}
	search := []SearchEntry{}

	g.reporter.Start(len(docs))
	for i, name := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, pages, err := g.renderDocument(ctx, name, docs)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", name, err)
		}
		manifest.Documents = append(manifest.Documents, entry)
		search = append(search, BuildSearchEntry(entry.HTML, entry.Title, pages))
		g.reporter.Update(i+1, name)
	}
	g.reporter.Finish()

	if err := g.writeJSON(SearchIndexFile, search); err != nil {
		return nil, fmt.Errorf("writing search index: %w", err)
	}
	if err := g.writeJSON(ManifestFile, manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return manifest, nil
}

func (g *Generator) renderDocument(ctx context.Context, name string, docs []string) (ManifestEntry, []string, error) {
	rendered, err := g.assembler.Assemble(ctx, name)
	if err != nil {
		return ManifestEntry{}, nil, err
	}
	out, err := g.layout.Render(ctx, layout.View{
		Pages:     rendered.Pages,
		CSS:       rendered.CSS,
		HasCSS:    rendered.HasCSS,
		Documents: docs,
		Current:   rendered.Name,
		Links:     ExportLinks,
	})
	if err != nil {
		return ManifestEntry{}, nil, err
	}
	if g.inliner != nil {
		out = g.inliner.Inline(out)
	}

	entry := ManifestEntry{
		Name:  rendered.Name,
		Title: rendered.Title,
		Pages: len(rendered.Pages),
		HTML:  rendered.Name + ".html",
	}
	if err := g.write(entry.HTML, out); err != nil {
		return ManifestEntry{}, nil, err
	}

	if g.Markdown && g.exporter != nil {
		md, err := g.exporter.Markdown(ctx, name)
		if err != nil {
			return ManifestEntry{}, nil, err
		}
		entry.Markdown = rendered.Name + ".md"
		if err := g.write(entry.Markdown, md); err != nil {
			return ManifestEntry{}, nil, err
		}
	}
	return entry, rendered.Pages, nil
}

func (g *Generator) write(name, content string) error {
	path := filepath.Join(g.OutputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (g *Generator) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return g.write(name, string(data))
}

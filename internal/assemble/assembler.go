// Package assemble turns a stored document into its rendered page sequence.
package assemble

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/docpress/internal/store"
	"github.com/ziadkadry99/docpress/internal/tmpl"
)

// Rendered is a document with its data substituted into every fragment and
// into its custom stylesheet. It is rebuilt on every request.
type Rendered struct {
	Name   string
	Title  string
	Pages  []string
	CSS    string
	HasCSS bool
}

// Assembler renders documents from a store.
type Assembler struct {
	store *store.Store
}

// New creates an Assembler reading from s.
func New(s *store.Store) *Assembler {
	return &Assembler{store: s}
}

// Assemble loads the named document and renders its fragments in sorted
// file name order.
func (a *Assembler) Assemble(ctx context.Context, name string) (*Rendered, error) {
	doc, err := a.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	data, err := doc.Data()
	if err != nil {
		return nil, err
	}
	vars := tmpl.DataVars(doc.Name, data)

	fragments, err := doc.Fragments()
	if err != nil {
		return nil, err
	}

	out := &Rendered{Name: doc.Name, Title: doc.Name, Pages: make([]string, 0, len(fragments))}
	if title, ok := data["title"].(string); ok && title != "" {
		out.Title = title
	}
	for _, frag := range fragments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := doc.ReadFragment(frag)
		if err != nil {
			return nil, err
		}
		page, err := tmpl.HTML(doc.Name+"/"+frag, src, vars)
		if err != nil {
			return nil, err
		}
		out.Pages = append(out.Pages, page)
	}

	css, ok, err := doc.CustomCSS()
	if err != nil {
		return nil, err
	}
	if ok {
		rendered, err := tmpl.Text(doc.Name+"/style.css", css, vars)
		if err != nil {
			return nil, fmt.Errorf("rendering custom stylesheet: %w", err)
		}
		out.CSS = rendered
		out.HasCSS = true
	}

	return out, nil
}

package export

import (
	"context"

	"github.com/ziadkadry99/docpress/internal/layout"
)

// Page renders the named document inside the base layout, with a picker
// listing every document and links built from links.
func (e *Exporter) Page(ctx context.Context, name string, links layout.Links) (string, error) {
	r, err := e.assembler.Assemble(ctx, name)
	if err != nil {
		return "", err
	}
	docs, err := e.store.List(ctx)
	if err != nil {
		return "", err
	}
	return e.layout.Render(ctx, layout.View{
		Pages:     r.Pages,
		CSS:       r.CSS,
		HasCSS:    r.HasCSS,
		Documents: docs,
		Current:   r.Name,
		Links:     links,
	})
}

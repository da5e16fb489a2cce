// Package tmpl executes Django-style templates (fragments, layouts and
// stylesheets) with pongo2.
package tmpl

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/ziadkadry99/docpress/internal/store"
)

// StaticPrefix is the URL prefix the static() helper resolves against.
const StaticPrefix = "/static/"

var (
	// identifier is the shape pongo2 accepts for context keys.
	identifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	// urlForStatic matches url_for('static', filename='...'), which pongo2
	// cannot parse because of the keyword argument.
	urlForStatic = regexp.MustCompile(`url_for\(\s*["']static["']\s*,\s*filename\s*=\s*(["'][^"']*["'])\s*\)`)
)

// Vars is the variable set a template is executed with.
type Vars = pongo2.Context

// HTML renders src with HTML autoescaping of interpolated values.
func HTML(name, src string, vars Vars) (string, error) {
	return execute(name, src, vars)
}

// Text renders src without escaping. Used for stylesheets.
func Text(name, src string, vars Vars) (string, error) {
	return execute(name, "{% autoescape off %}"+src+"{% endautoescape %}", vars)
}

// StaticURL builds the public URL of a file under the static root.
func StaticURL(rel string) string {
	return StaticPrefix + strings.TrimPrefix(path.Clean("/"+rel), "/")
}

// DataVars exposes a document's data mapping to templates. Top-level keys
// that are plain identifiers become variables of their own; the whole
// mapping is reachable as data, document_data and report_data, so other keys
// are read with data["report-date"]. The document name and the static()
// helper are always set.
func DataVars(document string, data store.Data) Vars {
	vars := Vars{}
	for k, v := range data {
		if identifier.MatchString(k) {
			vars[k] = v
		}
	}
	m := map[string]any(data)
	if m == nil {
		m = map[string]any{}
	}
	vars["data"] = m
	vars["document_data"] = m
	vars["report_data"] = m
	vars["document"] = document
	vars["static"] = StaticURL
	return vars
}

// RewriteURLFor turns url_for('static', filename='x') into static('x').
func RewriteURLFor(src string) string {
	return urlForStatic.ReplaceAllString(src, "static($1)")
}

func execute(name, src string, vars Vars) (string, error) {
	t, err := pongo2.FromString(RewriteURLFor(src))
	if err != nil {
		return "", fmt.Errorf("parsing %s: %v: %w", name, err, store.ErrMalformed)
	}
	out, err := t.Execute(vars)
	if err != nil {
		return "", fmt.Errorf("executing %s: %v: %w", name, err, store.ErrMalformed)
	}
	return out, nil
}

// Package inline embeds local images referenced from HTML as data: URIs so
// that exported documents are self-contained.
package inline

import (
	"encoding/base64"
	"log"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

const fallbackMIME = "application/octet-stream"

var (
	// src="{{ static('img/logo.png') }}" as written in unprocessed fragments.
	templateSrc = regexp.MustCompile(`src=(["'])\{\{\s*static\(\s*["']([^"']+)["']\s*\)\s*\}\}["']`)
	// src="{{ url_for('static', filename='img/logo.png') }}".
	urlForSrc = regexp.MustCompile(`src=(["'])\{\{\s*url_for\(\s*["']static["']\s*,\s*filename\s*=\s*["']([^"']+)["']\s*\)\s*\}\}["']`)
	// src="/static/img/logo.png" as produced by rendering.
	renderedSrc = regexp.MustCompile(`src=(["'])/static/([^"'?#]+)["']`)
)

// Inliner rewrites static image references under Root.
type Inliner struct {
	Root string
}

// New creates an Inliner resolving paths under the static root.
func New(root string) *Inliner {
	return &Inliner{Root: root}
}

// Inline replaces every matching image source with a data: URI. References
// to files that cannot be read are left as they are.
func (in *Inliner) Inline(html string) string {
	html = in.replace(templateSrc, html)
	html = in.replace(urlForSrc, html)
	return in.replace(renderedSrc, html)
}

func (in *Inliner) replace(re *regexp.Regexp, html string) string {
	return re.ReplaceAllStringFunc(html, func(match string) string {
		sub := re.FindStringSubmatch(match)
		quote, rel := sub[1], sub[2]

		uri, ok := in.dataURI(rel)
		if !ok {
			return match
		}
		return "src=" + quote + uri + quote
	})
}

func (in *Inliner) dataURI(rel string) (string, bool) {
	clean := strings.TrimPrefix(path.Clean("/"+rel), "/")
	full := filepath.Join(in.Root, filepath.FromSlash(clean))

	if !in.within(full) {
		log.Printf("inline: image outside static root path=%s", full)
		return "", false
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("inline: image not found path=%s", full)
		} else {
			log.Printf("inline: reading image path=%s: %v", full, err)
		}
		return "", false
	}

	return "data:" + mimeType(clean) + ";base64," + base64.StdEncoding.EncodeToString(data), true
}

// within reports whether full, with symlinks resolved, stays under Root.
func (in *Inliner) within(full string) bool {
	root, err := filepath.EvalSymlinks(in.Root)
	if err != nil {
		return false
	}
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		// Missing files are reported by the read that follows.
		return os.IsNotExist(err)
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func mimeType(name string) string {
	t := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if t == "" {
		return fallbackMIME
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

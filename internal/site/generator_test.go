package site

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/ziadkadry99/docpress/internal/assemble"
	"github.com/ziadkadry99/docpress/internal/export"
	"github.com/ziadkadry99/docpress/internal/inline"
	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/store"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

type recorder struct {
	total   int
	updates []string
	done    bool
}

func (r *recorder) Start(total int)          { r.total = total }
func (r *recorder) Update(_ int, doc string) { r.updates = append(r.updates, doc) }
func (r *recorder) Finish()                  { r.done = true }

func newGenerator(t *testing.T, root, static, out string, rep *recorder) *Generator {
	t.Helper()
	s := store.New(root, "")
	a := assemble.New(s)
	r := layout.New("", nil)
	in := inline.New(static)
	e := export.New(s, a, r, in, "")
	if rep == nil {
		return NewGenerator(out, s, a, r, e, in, nil)
	}
	return NewGenerator(out, s, a, r, e, in, rep)
}

func setupDocuments(t *testing.T) (root, static string) {
	t.Helper()
	dir := t.TempDir()
	root = filepath.Join(dir, "documents")
	static = filepath.Join(dir, "static")

	writeFile(t, filepath.Join(root, "annual", "data.json"), `{"title": "Annual Report", "year": 2024}`)
	writeFile(t, filepath.Join(root, "annual", "page1.html"), `<h1>{{ title }}</h1><p>Results for {{ year }}.</p><img src="{{ static('img/logo.png') }}">`)
	writeFile(t, filepath.Join(root, "annual", "page2.html"), `<p>Appendix</p>`)
	writeFile(t, filepath.Join(root, "memo", "page1.html"), `<p>Short memo</p>`)
	writeFile(t, filepath.Join(static, "img", "logo.png"), "PNG")
	return root, static
}

func TestGenerate(t *testing.T) {
	root, static := setupDocuments(t)
	out := filepath.Join(t.TempDir(), "site")
	rep := &recorder{}

	manifest, err := newGenerator(t, root, static, out, rep).Generate(t.Context())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, name := range []string{IndexFile, StylesheetFile, ManifestFile, SearchIndexFile, "annual.html", "memo.html"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s in output: %v", name, err)
		}
	}

	if _, err := uuid.Parse(manifest.BuildID); err != nil {
		t.Errorf("build id %q is not a uuid: %v", manifest.BuildID, err)
	}
	if len(manifest.Documents) != 2 {
		t.Fatalf("manifest documents = %d, want 2", len(manifest.Documents))
	}
	if got := manifest.Documents[0]; got.Name != "annual" || got.Title != "Annual Report" || got.Pages != 2 {
		t.Errorf("first manifest entry = %+v", got)
	}

	if rep.total != 2 || strings.Join(rep.updates, ",") != "annual,memo" || !rep.done {
		t.Errorf("progress = %+v", rep)
	}
}

func TestGenerateDocumentPage(t *testing.T) {
	root, static := setupDocuments(t)
	out := t.TempDir()

	if _, err := newGenerator(t, root, static, out, nil).Generate(t.Context()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f, err := os.Open(filepath.Join(out, "annual.html"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Find("div.page").Length() != 2 {
		t.Errorf("pages = %d, want 2", doc.Find("div.page").Length())
	}
	src, _ := doc.Find("img").Attr("src")
	if !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("image not inlined: %q", src)
	}
	if doc.Find(`a[href^="/document/"]`).Length() != 0 {
		t.Error("exported page links to server-only views")
	}
	if v, _ := doc.Find("#document-picker option").Last().Attr("value"); v != "memo.html" {
		t.Errorf("picker option value = %q, want memo.html", v)
	}
}

func TestGenerateIndexAndManifestFiles(t *testing.T) {
	root, static := setupDocuments(t)
	out := t.TempDir()

	if _, err := newGenerator(t, root, static, out, nil).Generate(t.Context()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(out, IndexFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `href="annual.html"`) || !strings.Contains(string(index), `href="style.css"`) {
		t.Errorf("index links not relative:\n%s", index)
	}

	data, err := os.ReadFile(filepath.Join(out, ManifestFile))
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(m.Documents) != 2 || m.Documents[1].HTML != "memo.html" {
		t.Errorf("manifest = %+v", m)
	}

	data, err = os.ReadFile(filepath.Join(out, SearchIndexFile))
	if err != nil {
		t.Fatal(err)
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("search index is not valid JSON: %v", err)
	}
	if len(entries) != 2 || entries[0].Summary != "Results for 2024." {
		t.Errorf("search entries = %+v", entries)
	}
}

func TestGenerateMarkdown(t *testing.T) {
	root, static := setupDocuments(t)
	out := t.TempDir()

	g := newGenerator(t, root, static, out, nil)
	g.Markdown = true
	manifest, err := g.Generate(t.Context())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if manifest.Documents[0].Markdown != "annual.md" {
		t.Errorf("markdown entry = %q", manifest.Documents[0].Markdown)
	}
	md, err := os.ReadFile(filepath.Join(out, "annual.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(md), "# Annual Report") {
		t.Errorf("markdown rendition:\n%s", md)
	}
}

func TestGenerateEmpty(t *testing.T) {
	out := t.TempDir()
	manifest, err := newGenerator(t, filepath.Join(t.TempDir(), "missing"), "", out, nil).Generate(t.Context())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(manifest.Documents) != 0 {
		t.Errorf("documents = %d, want 0", len(manifest.Documents))
	}
	index, err := os.ReadFile(filepath.Join(out, IndexFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "No documents found.") {
		t.Error("empty index should say so")
	}
}

func TestGenerateMalformedDocument(t *testing.T) {
	root, static := setupDocuments(t)
	writeFile(t, filepath.Join(root, "broken", "data.json"), `{`)
	writeFile(t, filepath.Join(root, "broken", "page1.html"), `<p>x</p>`)

	_, err := newGenerator(t, root, static, t.TempDir(), nil).Generate(t.Context())
	if !errors.Is(err, store.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestBuildSearchEntry(t *testing.T) {
	pages := []string{
		`<h1>Title</h1><p>  </p><p>First   real
		paragraph</p><style>.x{}</style>`,
		`<p>More text</p>`,
	}
	e := BuildSearchEntry("doc.html", "Doc", pages)
	if e.Summary != "First real paragraph" {
		t.Errorf("summary = %q", e.Summary)
	}
	if e.Content != "Title First real paragraph More text" {
		t.Errorf("content = %q", e.Content)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo", 2); got != "h" {
		t.Errorf("truncate split a rune: %q", got)
	}
	if got := truncate("hello", 3); got != "hel" {
		t.Errorf("truncate = %q", got)
	}
}

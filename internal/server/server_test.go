package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

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

func newTestServer(t *testing.T, root string, cfg Config) *Server {
	t.Helper()
	s := store.New(root, "")
	a := assemble.New(s)
	r := layout.New("", nil)
	e := export.New(s, a, r, inline.New(cfg.StaticDir), "")
	return New(cfg, s, r, e)
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "documents")
	static := filepath.Join(dir, "static")

	writeFile(t, filepath.Join(root, "annual", "data.json"), `{"title": "Annual Report"}`)
	writeFile(t, filepath.Join(root, "annual", "page1.html"), `<h1>{{ title }}</h1>`)
	writeFile(t, filepath.Join(root, "annual", "page2.html"), `<p>Figures</p>`)
	writeFile(t, filepath.Join(root, "annual", "style.css"), `h1 { color: navy; }`)
	writeFile(t, filepath.Join(root, "broken", "data.json"), `{"title": `)
	writeFile(t, filepath.Join(root, "broken", "page1.html"), `<p>x</p>`)
	writeFile(t, filepath.Join(static, "img", "logo.png"), "PNG")

	return newTestServer(t, root, Config{StaticDir: static})
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := setupServer(t)
	w := get(t, srv, "/healthz")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, t.TempDir(), Config{AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestIndexListsDocuments(t *testing.T) {
	srv := setupServer(t)
	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	doc.Find(".document-list a").Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	if strings.Join(names, ",") != "annual,broken" {
		t.Errorf("index lists %v, want [annual broken]", names)
	}
}

func TestIndexMissingRoot(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "nope"), Config{})

	w := get(t, srv, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing root, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No documents found.") {
		t.Error("expected empty document list message")
	}

	w = get(t, srv, "/api/documents")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"documents":[]}` {
		t.Errorf("api/documents = %s, want empty list", got)
	}
}

func TestDocumentPage(t *testing.T) {
	srv := setupServer(t)
	w := get(t, srv, "/document/annual")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	pages := doc.Find("div.page")
	if pages.Length() != 2 {
		t.Fatalf("pages = %d, want 2", pages.Length())
	}
	if got := pages.First().Find("h1").Text(); got != "Annual Report" {
		t.Errorf("first page heading = %q", got)
	}
	if !strings.Contains(doc.Find("style").Text(), "h1 { color: navy; }") {
		t.Error("custom stylesheet not injected")
	}
	if doc.Find("#document-picker option").Length() != 2 {
		t.Error("document picker should list every document")
	}
}

func TestDocumentPageWithHyphenatedDataKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "q3", "data.json"), `{"title": "X", "report-date": "2024"}`)
	writeFile(t, filepath.Join(root, "q3", "page1.html"), `<h1>{{ title }}</h1><p>{{ data["report-date"] }}</p>`)
	srv := newTestServer(t, root, Config{})

	w := get(t, srv, "/document/q3")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "<h1>X</h1><p>2024</p>") {
		t.Errorf("data not rendered:\n%s", w.Body.String())
	}
}

func TestNotFoundRoutes(t *testing.T) {
	srv := setupServer(t)
	for _, suffix := range []string{"", "/raw_html", "/raw_css", "/highlighted_html", "/highlighted_css", "/markdown", "/pdf"} {
		w := get(t, srv, "/document/missing"+suffix)
		if w.Code != http.StatusNotFound {
			t.Errorf("GET /document/missing%s = %d, want 404", suffix, w.Code)
		}
	}
}

func TestMalformedDataIsServerError(t *testing.T) {
	srv := setupServer(t)
	w := get(t, srv, "/document/broken")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for malformed data.json, got %d", w.Code)
	}
}

func TestSourceViews(t *testing.T) {
	srv := setupServer(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/document/annual/raw_html", "text/markdown", "<h1>{{ title }}</h1>"},
		{"/document/annual/raw_css", "text/markdown", "h1 { color: navy; }"},
		{"/document/annual/highlighted_html", "text/html", `class="chroma"`},
		{"/document/annual/highlighted_css", "text/html", `class="chroma"`},
		{"/document/annual/markdown", "text/markdown", "# Annual Report"},
		{"/document/annual/pdf", "application/pdf", "%PDF-"},
	}
	for _, tt := range tests {
		w := get(t, srv, tt.path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d: %s", tt.path, w.Code, w.Body.String())
			continue
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("GET %s Content-Type = %q, want %s", tt.path, ct, tt.contentType)
		}
		if !strings.Contains(w.Body.String(), tt.contains) {
			t.Errorf("GET %s body lacks %q", tt.path, tt.contains)
		}
	}
}

func TestStylesheetRoutes(t *testing.T) {
	srv := setupServer(t)
	for _, path := range []string{"/css/style.css", "/static/css/style.css"} {
		w := get(t, srv, path)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
			t.Errorf("GET %s Content-Type = %q", path, ct)
		}
		if !strings.Contains(w.Body.String(), ".page {") {
			t.Errorf("GET %s did not serve the global stylesheet", path)
		}
	}
}

func TestStaticFiles(t *testing.T) {
	srv := setupServer(t)
	w := get(t, srv, "/static/img/logo.png")
	if w.Code != http.StatusOK || w.Body.String() != "PNG" {
		t.Errorf("GET /static/img/logo.png = %d %q", w.Code, w.Body.String())
	}
}

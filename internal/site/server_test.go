package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	entries := []SearchEntry{
		{Path: "annual.html", Title: "Annual Report", Content: "Revenue grew in 2024"},
		{Path: "memo.html", Title: "Memo", Content: "Office closed on Friday"},
	}
	tests := []struct {
		query string
		want  []string
	}{
		{"revenue", []string{"annual.html"}},
		{"ANNUAL 2024", []string{"annual.html"}},
		{"office revenue", nil},
		{"o", []string{"annual.html", "memo.html"}},
		{"   ", nil},
	}
	for _, tt := range tests {
		got := Search(entries, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("Search(%q) = %d results, want %d", tt.query, len(got), len(tt.want))
			continue
		}
		for i, e := range got {
			if e.Path != tt.want[i] {
				t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, e.Path, tt.want[i])
			}
		}
	}
}

func TestHandler(t *testing.T) {
	root, static := setupDocuments(t)
	out := t.TempDir()
	if _, err := newGenerator(t, root, static, out, nil).Generate(t.Context()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	h := Handler(out)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/annual.html", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /annual.html = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=memo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/search = %d", w.Code)
	}
	var resp searchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Path != "memo.html" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestHandlerWithoutIndex(t *testing.T) {
	w := httptest.NewRecorder()
	Handler(t.TempDir()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a search index, got %d", w.Code)
	}
}

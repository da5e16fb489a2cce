package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/store"
)

const (
	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeCSS      = "text/css; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	contentTypePDF      = "application/pdf"
)

// listResponse is the JSON response for /api/documents.
type listResponse struct {
	Documents []string `json:"documents"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.layout.Index(r.Context(), docs, layout.ServerLinks)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeHTML, []byte(out))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(listResponse{Documents: docs})
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := s.layout.Stylesheet(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeCSS, []byte(css))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	out, err := s.exporter.Page(r.Context(), chi.URLParam(r, "name"), layout.ServerLinks)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeHTML, []byte(out))
}

func (s *Server) handleRawHTML(w http.ResponseWriter, r *http.Request) {
	out, err := s.exporter.RawHTML(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeMarkdown, []byte(out))
}

func (s *Server) handleRawCSS(w http.ResponseWriter, r *http.Request) {
	out, err := s.exporter.RawCSS(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeMarkdown, []byte(out))
}

func (s *Server) handleHighlightedHTML(w http.ResponseWriter, r *http.Request) {
	out, err := s.exporter.HighlightedHTML(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeHTML, []byte(out))
}

func (s *Server) handleHighlightedCSS(w http.ResponseWriter, r *http.Request) {
	out, err := s.exporter.HighlightedCSS(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeHTML, []byte(out))
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	out, err := s.exporter.Markdown(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	write(w, contentTypeMarkdown, []byte(out))
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	out, err := s.exporter.PDF(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`.pdf"`)
	write(w, contentTypePDF, out)
}

// fail maps an error to a plain-text response. Missing documents and
// templates are 404s; everything else is logged and reported as a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	log.Printf("server: %s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

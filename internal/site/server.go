package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Serve starts a local HTTP file server for an exported site. The site's
// search index is queryable at /api/search?q=.
func Serve(dir string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)

	if open {
		go openBrowser(url)
	}

	fmt.Printf("Serving export at %s\n", url)
	fmt.Println("Press Ctrl+C to stop.")

	return http.ListenAndServe(addr, Handler(dir))
}

// Handler serves the files under dir plus the search endpoint.
func Handler(dir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		handleSearch(w, r, dir)
	})
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	return mux
}

// searchResponse is the JSON response for the /api/search endpoint.
type searchResponse struct {
	Results []SearchEntry `json:"results"`
}

func handleSearch(w http.ResponseWriter, r *http.Request, dir string) {
	w.Header().Set("Content-Type", "application/json")

	data, err := os.ReadFile(filepath.Join(dir, SearchIndexFile))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "search index not found"})
		return
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "search index is corrupt"})
		return
	}

	json.NewEncoder(w).Encode(searchResponse{Results: Search(entries, r.URL.Query().Get("q"))})
}

// Search returns the entries whose title or content contains every word of
// query, ignoring case. An empty query matches nothing.
func Search(entries []SearchEntry, query string) []SearchEntry {
	terms := strings.Fields(strings.ToLower(query))
	results := []SearchEntry{}
	if len(terms) == 0 {
		return results
	}
	for _, e := range entries {
		haystack := strings.ToLower(e.Title + " " + e.Content)
		match := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				match = false
				break
			}
		}
		if match {
			results = append(results, e)
		}
	}
	return results
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}

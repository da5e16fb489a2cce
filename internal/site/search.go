package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxSearchContent = 2000

// SearchEntry represents a single searchable document in the export.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchEntry extracts the visible text of a document's rendered pages.
// The summary is the first non-empty paragraph.
func BuildSearchEntry(path, title string, pages []string) SearchEntry {
	entry := SearchEntry{Path: path, Title: title}

	var words []string
	for _, page := range pages {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
		if err != nil {
			continue
		}
		doc.Find("script, style").Remove()
		if entry.Summary == "" {
			doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
				entry.Summary = collapseSpace(s.Text())
				return entry.Summary == ""
			})
		}
		if text := collapseSpace(doc.Text()); text != "" {
			words = append(words, text)
		}
	}

	content := strings.Join(words, " ")
	if len(content) > maxSearchContent {
		content = truncate(content, maxSearchContent)
	}
	entry.Content = content
	return entry
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}

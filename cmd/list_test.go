package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpress/internal/store"
)

func TestListDocuments(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"annual/page1.html": "<p>1</p>",
		"annual/page2.html": "<p>2</p>",
		"annual/data.json":  `{"year": 2024}`,
		"memo/page1.html":   "<p>memo</p>",
		"memo/style.css":    "p {}",
		"notes/page1.html":  "<p>notes</p>",
		"notes/data.json":   "{",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())
	var out bytes.Buffer
	if err := listDocuments(cmd, store.New(root, ""), &out); err != nil {
		t.Fatalf("listDocuments: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	if got := strings.Fields(lines[1]); strings.Join(got, " ") != "annual 2 yes no" {
		t.Errorf("annual row = %q", lines[1])
	}
	if got := strings.Fields(lines[2]); strings.Join(got, " ") != "memo 1 no yes" {
		t.Errorf("memo row = %q", lines[2])
	}
	if got := strings.Fields(lines[3]); strings.Join(got, " ") != "notes 1 malformed no" {
		t.Errorf("notes row = %q", lines[3])
	}
}

func TestListDocumentsEmpty(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(t.Context())
	var out bytes.Buffer
	root := filepath.Join(t.TempDir(), "missing")
	if err := listDocuments(cmd, store.New(root, ""), &out); err != nil {
		t.Fatalf("listDocuments: %v", err)
	}
	if !strings.HasPrefix(out.String(), "No documents found") {
		t.Errorf("output = %q", out.String())
	}
}

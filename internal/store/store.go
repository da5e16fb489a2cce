package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNotFound is returned when the store root or a document directory does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformed is returned when a document file exists but cannot be parsed.
	ErrMalformed = errors.New("malformed")
)

const (
	// DefaultFragmentPattern matches page fragment file names.
	DefaultFragmentPattern = "page*.html"

	dataFile = "data.json"
	cssFile  = "style.css"
)

// Data is the JSON object loaded from a document's data.json.
type Data map[string]any

// Store reads documents from a directory tree. Each immediate subdirectory
// of Root is one document.
type Store struct {
	Root            string
	FragmentPattern string
}

// New creates a Store rooted at root. An empty pattern selects DefaultFragmentPattern.
func New(root, pattern string) *Store {
	if pattern == "" {
		pattern = DefaultFragmentPattern
	}
	return &Store{Root: root, FragmentPattern: pattern}
}

// List returns the sorted names of all documents. A missing root yields an
// empty list rather than an error.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading store root %s: %w", s.Root, err)
	}

	names := []string{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isDir(filepath.Join(s.Root, e.Name())) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Open returns the named document. The name must be a single path element.
func (s *Store) Open(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validName(name) {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	dir := filepath.Join(s.Root, name)
	if !isDir(dir) {
		return nil, fmt.Errorf("document %q: %w", name, ErrNotFound)
	}
	return &Document{Name: name, Dir: dir, pattern: s.FragmentPattern}, nil
}

// Document is one folder of the store.
type Document struct {
	Name    string
	Dir     string
	pattern string
}

// Fragments returns the names of the page fragment files in lexicographic
// order. page10.html sorts before page2.html.
func (d *Document) Fragments() ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %q: %w", d.Name, ErrNotFound)
		}
		return nil, fmt.Errorf("listing document %q: %w", d.Name, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		matched, err := doublestar.Match(d.pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("fragment pattern %q: %w", d.pattern, err)
		}
		if matched {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ReadFragment returns the unprocessed text of one fragment file.
func (d *Document) ReadFragment(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("fragment %s/%s: %w", d.Name, name, ErrNotFound)
		}
		return "", fmt.Errorf("reading fragment %s/%s: %w", d.Name, name, err)
	}
	return string(data), nil
}

// Data loads data.json. A missing file yields an empty mapping.
func (d *Document) Data() (Data, error) {
	raw, err := os.ReadFile(filepath.Join(d.Dir, dataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, nil
		}
		return nil, fmt.Errorf("reading %s/%s: %w", d.Name, dataFile, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	data := Data{}
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing %s/%s: %v: %w", d.Name, dataFile, err, ErrMalformed)
	}
	for k, v := range data {
		data[k] = normalizeNumbers(v)
	}
	return data, nil
}

// normalizeNumbers turns json.Number values into int64 when they are whole
// and float64 otherwise, so templates print 3 rather than 3.000000.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}

// CustomCSS returns the document's style.css. ok is false when the file is absent.
func (d *Document) CustomCSS() (css string, ok bool, err error) {
	raw, err := os.ReadFile(filepath.Join(d.Dir, cssFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s/%s: %w", d.Name, cssFile, err)
	}
	return string(raw), true, nil
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

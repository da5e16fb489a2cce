package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docpress/internal/layout"
	"github.com/ziadkadry99/docpress/internal/store"
)

// handleListDocuments lists every document with its fragment count.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("No documents found. Each document is a directory of page fragments under the documents directory."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d document(s):\n", len(names)))
	for _, name := range names {
		doc, err := s.store.Open(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("opening %s: %v", name, err)), nil
		}
		fragments, err := doc.Fragments()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", name, err)), nil
		}
		sb.WriteString(fmt.Sprintf("- %s (%d pages)\n", name, len(fragments)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleRenderDocument renders a document as HTML or Markdown.
func (s *Server) handleRenderDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	var out string
	switch format := request.GetString("format", "html"); format {
	case "html":
		out, err = s.exporter.Page(ctx, name, layout.ServerLinks)
	case "markdown":
		out, err = s.exporter.Markdown(ctx, name)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: must be html or markdown", format)), nil
	}
	if err != nil {
		return toolError(name, err), nil
	}
	return mcp.NewToolResultText(out), nil
}

// handleRawHTML returns the document's HTML source.
func (s *Server) handleRawHTML(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	out, err := s.exporter.RawHTML(ctx, name)
	if err != nil {
		return toolError(name, err), nil
	}
	return mcp.NewToolResultText(out), nil
}

// handleRawCSS returns the document's CSS source.
func (s *Server) handleRawCSS(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}
	out, err := s.exporter.RawCSS(ctx, name)
	if err != nil {
		return toolError(name, err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func toolError(name string, err error) *mcp.CallToolResult {
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No document named %q. Use list_documents to see what is available.", name))
	}
	return mcp.NewToolResultError(fmt.Sprintf("rendering %s failed: %v", name, err))
}

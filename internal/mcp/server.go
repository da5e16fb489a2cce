package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/docpress/internal/export"
	"github.com/ziadkadry99/docpress/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the document collection to agents.
type Server struct {
	store    *store.Store
	exporter *export.Exporter
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(s *store.Store, e *export.Exporter) *Server {
	srv := &Server{
		store:    s,
		exporter: e,
	}

	srv.mcp = server.NewMCPServer(
		"docpress",
		Version,
		server.WithToolCapabilities(false),
	)

	srv.registerTools()

	return srv
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(renderDocumentTool, s.handleRenderDocument)
	s.mcp.AddTool(rawHTMLTool, s.handleRawHTML)
	s.mcp.AddTool(rawCSSTool, s.handleRawCSS)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

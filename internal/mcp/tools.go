package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listDocumentsTool defines the list_documents MCP tool.
var listDocumentsTool = mcp.NewTool("list_documents",
	mcp.WithDescription("List the documents available for rendering, with their page counts."),
)

// renderDocumentTool defines the render_document MCP tool.
var renderDocumentTool = mcp.NewTool("render_document",
	mcp.WithDescription("Render a document with its data applied. Returns the full HTML page or a Markdown rendition."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Document name, as returned by list_documents"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default html)"),
		mcp.Enum("html", "markdown"),
	),
)

// rawHTMLTool defines the raw_html MCP tool.
var rawHTMLTool = mcp.NewTool("raw_html",
	mcp.WithDescription("Get the unprocessed HTML source of a document: its page fragments inside the base layout, as a fenced Markdown block."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Document name"),
	),
)

// rawCSSTool defines the raw_css MCP tool.
var rawCSSTool = mcp.NewTool("raw_css",
	mcp.WithDescription("Get the global stylesheet followed by the document's own stylesheet, as a fenced Markdown block."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Document name"),
	),
)

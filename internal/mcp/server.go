// Package mcp provides a Model Context Protocol server for chatmd.
// It exposes the export-to-transcript pipeline as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all chatmd tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "chatmd",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write files.
// Overwriting the destination is the point, so they are idempotent.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all chatmd tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "linearize",
		Description: "Linearize a ChatGPT export into chronological messages. Pass the export JSON inline or a path to it. Returns the messages and any recovered problems in the message tree.",
		Annotations: readOnlyAnnotations(),
	}, handleLinearize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Render a ChatGPT export as a Markdown transcript (or a JSON message list) and return the text without writing a file.",
		Annotations: readOnlyAnnotations(),
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert_file",
		Description: "Convert a ChatGPT export file and write the transcript to a destination path. The destination is replaced atomically.",
		Annotations: writeAnnotations(),
	}, handleConvertFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy-search the messages of a ChatGPT export by role and content. Returns matches best first with their position in the transcript.",
		Annotations: readOnlyAnnotations(),
	}, handleSearch)
}

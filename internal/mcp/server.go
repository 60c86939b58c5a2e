// Package mcp provides a Model Context Protocol server for mdbundle.
// It exposes reference extraction and bundling as MCP tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/mdbundle/internal/config"
)

// NewServer creates an MCP server with all mdbundle tools registered.
// base supplies the converter settings and defaults for every tool call;
// callers can override the summary and output paths but not the program.
func NewServer(version string, base config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mdbundle",
		Version: version,
	}, nil)
	registerTools(server, base)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks a tool that writes the output document.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, base config.Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "List the markdown files referenced by a summary file, in order. Only the first [label](file.md) link on each line counts.",
		Annotations: readOnlyAnnotations(),
	}, handleExtract(base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bundle",
		Description: "Combine the markdown files referenced by a summary file into one document using the configured converter (pandoc by default). Returns the command, the converter's exit code and stderr.",
		Annotations: writeAnnotations(),
	}, handleBundle(base))
}

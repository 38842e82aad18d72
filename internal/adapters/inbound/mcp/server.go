package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewScopecheckMCPServer creates a new MCP server with all scopecheck tools
// and resources registered. projectPath is a directory inside the repository;
// version is reported to clients during initialization.
func NewScopecheckMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"scopecheck",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}

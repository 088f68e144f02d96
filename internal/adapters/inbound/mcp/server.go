package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewComplyviewMCPServer creates an MCP server with the complyview tools and
// resources registered. projectPath is the directory holding
// .complyview.yaml, the configured report and the evaluation cache.
func NewComplyviewMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"complyview",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}

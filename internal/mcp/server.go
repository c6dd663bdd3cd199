// Package mcp exposes the site copy to AI agents over the Model Context
// Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/BenedictTTM/qualipro/internal/content"
	"github.com/BenedictTTM/qualipro/internal/seo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that answers questions about the site.
type Server struct {
	store *content.Store
	seo   *seo.Builder
	mcp   *server.MCPServer
}

// NewServer creates an MCP server reading from store. Links are made
// absolute against baseURL.
func NewServer(store *content.Store, baseURL string) *Server {
	s := &Server{
		store: store,
		seo:   seo.NewBuilder(baseURL),
	}

	s.mcp = server.NewMCPServer(
		"qualipro",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(getServicesTool, s.handleGetServices)
	s.mcp.AddTool(getIndustriesTool, s.handleGetIndustries)
	s.mcp.AddTool(getToolTool, s.handleGetTool)
	s.mcp.AddTool(getContactTool, s.handleGetContact)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

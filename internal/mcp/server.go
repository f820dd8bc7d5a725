package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/glossary/internal/glossary"
	"github.com/ziadkadry99/glossary/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// DocumentLoader provides the glossary document.
type DocumentLoader interface {
	Load(ctx context.Context) (*glossary.Document, error)
}

// Server wraps an MCP server that exposes glossary search and lookup tools.
type Server struct {
	loader DocumentLoader
	opts   search.Options
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server backed by loader.
func NewServer(loader DocumentLoader, opts search.Options) *Server {
	s := &Server{
		loader: loader,
		opts:   opts,
	}

	s.mcp = server.NewMCPServer(
		"glossary",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchGlossaryTool, s.handleSearchGlossary)
	s.mcp.AddTool(getSubjectTool, s.handleGetSubject)
	s.mcp.AddTool(getCardTool, s.handleGetCard)
	s.mcp.AddTool(listSubjectsTool, s.handleListSubjects)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

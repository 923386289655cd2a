// Package mcp exposes the extraction registry to AI clients as MCP
// tools over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/uimeta/pkg/registry"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for uimeta, exposing component,
// story, documentation, and theme metadata tools.
type Server struct {
	mcpServer *server.MCPServer
	registry  *registry.Registry
	logger    *slog.Logger
	calls     *CallLogger // nil disables tool-call logging
}

// NewServer creates an MCP server backed by the registry. calls may be
// nil to disable the JSONL tool-call log.
func NewServer(reg *registry.Registry, calls *CallLogger, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{registry: reg, logger: logger, calls: calls}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if calls != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("uimeta", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: getComponentMetadataTool(), Handler: s.handleGetComponentMetadata},
		server.ServerTool{Tool: getStoryMetadataTool(), Handler: s.handleGetStoryMetadata},
		server.ServerTool{Tool: getDocumentationTool(), Handler: s.handleGetDocumentation},
		server.ServerTool{Tool: getThemeTokensTool(), Handler: s.handleGetThemeTokens},
		server.ServerTool{Tool: getThemeMetadataTool(), Handler: s.handleGetThemeMetadata},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

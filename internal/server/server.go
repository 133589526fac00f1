// Package server wires the line-editing tools onto an MCP server served
// over stdio.
package server

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/linesmith/lineedit-mcp-server/internal/engine"
	"github.com/linesmith/lineedit-mcp-server/internal/tools"
	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

// Server wraps the MCP server with the editing and workspace tools.
type Server struct {
	mcpServer *server.MCPServer
	resolver  *workspace.Resolver
	batch     *engine.Batch
	mirror    *workspace.Mirror
	logger    *slog.Logger
}

// New creates a server over the given workspace resolver.
func New(resolver *workspace.Resolver, logger *slog.Logger) *Server {
	eng := engine.New(logger)
	s := &Server{
		resolver: resolver,
		batch:    engine.NewBatch(resolver, eng, logger),
		mirror:   workspace.NewMirror(resolver, logger),
		logger:   logger,
	}

	s.mcpServer = server.NewMCPServer(
		"lineedit-mcp-server",
		"1.0.0",
		server.WithLogging(),
	)
	s.registerTools()

	return s
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		tools.NewEditFileTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleEditFile(ctx, s.batch, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewListFilesTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleListFiles(ctx, s.resolver, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewCreateDirectoryTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleCreateDirectory(ctx, s.resolver, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewMoveFileTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleMoveFile(ctx, s.resolver, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewListWorkspacesTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleListWorkspaces(ctx, s.resolver, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewCreateConstructionWorkspaceTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleCreateConstructionWorkspace(ctx, s.mirror, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewRestoreConstructionTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandleRestoreConstruction(ctx, s.mirror, req)
		},
	)

	s.mcpServer.AddTool(
		tools.NewPromoteConstructionTool(),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tools.HandlePromoteConstruction(ctx, s.mirror, req)
		},
	)

	s.logger.Info("registered tools", "count", 8)
}

// Run starts the server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting lineedit MCP server")
	return server.ServeStdio(s.mcpServer)
}

// GetMCPServer returns the underlying MCP server for testing.
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

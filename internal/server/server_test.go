package server

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

func setupTestServer(t *testing.T) (*Server, string) {
	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	roots := map[string]string{
		workspace.TagStable:       filepath.Join(tmpDir, "stable"),
		workspace.TagConstruction: filepath.Join(tmpDir, "construction"),
	}
	resolver, err := workspace.NewResolver(roots, []string{workspace.TagStable, workspace.TagConstruction}, workspace.TagStable, logger)
	if err != nil {
		t.Fatalf("failed to create resolver: %v", err)
	}
	srv := New(resolver, logger)
	return srv, tmpDir
}

func TestServerCreation(t *testing.T) {
	srv, _ := setupTestServer(t)

	if srv.mcpServer == nil {
		t.Error("MCP server should not be nil")
	}

	if srv.resolver == nil {
		t.Error("Resolver should not be nil")
	}

	if srv.batch == nil {
		t.Error("Batch executor should not be nil")
	}

	if srv.mirror == nil {
		t.Error("Mirror should not be nil")
	}

	if srv.logger == nil {
		t.Error("Logger should not be nil")
	}
}

func TestGetMCPServer(t *testing.T) {
	srv, _ := setupTestServer(t)

	mcpSrv := srv.GetMCPServer()
	if mcpSrv == nil {
		t.Error("GetMCPServer should return non-nil server")
	}
}

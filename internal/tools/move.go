package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

// NewMoveFileTool creates the move_file tool.
func NewMoveFileTool() mcp.Tool {
	return mcp.NewTool(
		"move_file",
		mcp.WithDescription("Move or rename a file or directory within a workspace. Fails if the destination exists."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("source", mcp.Description("Source path relative to the workspace root"), mcp.Required()),
		mcp.WithString("destination", mcp.Description("Destination path relative to the workspace root"), mcp.Required()),
		mcp.WithBoolean("create_dirs", mcp.Description("If true, create destination parent directories")),
		mcp.WithString("workspace", mcp.Description("Workspace tag; defaults to the primary workspace")),
	)
}

// HandleMoveFile handles the move_file tool.
func HandleMoveFile(ctx context.Context, resolver *workspace.Resolver, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := cast.ToString(request.Params.Arguments["source"])
	destination := cast.ToString(request.Params.Arguments["destination"])
	createDirs := cast.ToBool(request.Params.Arguments["create_dirs"])
	tag := cast.ToString(request.Params.Arguments["workspace"])

	resolvedSrc, err := resolver.Resolve(tag, source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("source path resolution failed: %w", err).Error()), nil
	}
	if _, err := os.Stat(resolvedSrc); err != nil {
		return mcp.NewToolResultError(fmt.Errorf("source does not exist: %w", err).Error()), nil
	}

	resolvedDst, err := resolver.Resolve(tag, destination)
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("destination path resolution failed: %w", err).Error()), nil
	}
	if _, err := os.Stat(resolvedDst); err == nil {
		return mcp.NewToolResultError("destination already exists"), nil
	}

	if createDirs {
		if err := os.MkdirAll(filepath.Dir(resolvedDst), 0755); err != nil {
			return mcp.NewToolResultError(fmt.Errorf("failed to create destination directories: %w", err).Error()), nil
		}
	}

	if err := os.Rename(resolvedSrc, resolvedDst); err != nil {
		return mcp.NewToolResultError(fmt.Errorf("failed to move: %w", err).Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully moved %s to %s", source, destination)), nil
}

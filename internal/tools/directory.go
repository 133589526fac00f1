package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

// NewCreateDirectoryTool creates the create_directory tool.
func NewCreateDirectoryTool() mcp.Tool {
	return mcp.NewTool(
		"create_directory",
		mcp.WithDescription("Create a directory inside a workspace. Parent directories are created as needed."),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("path", mcp.Description("Directory path relative to the workspace root"), mcp.Required()),
		mcp.WithString("workspace", mcp.Description("Workspace tag; defaults to the primary workspace")),
	)
}

// HandleCreateDirectory handles the create_directory tool.
func HandleCreateDirectory(ctx context.Context, resolver *workspace.Resolver, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := cast.ToString(request.Params.Arguments["path"])
	tag := cast.ToString(request.Params.Arguments["workspace"])

	resolvedPath, err := resolver.Resolve(tag, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("path resolution failed: %w", err).Error()), nil
	}

	if info, err := os.Stat(resolvedPath); err == nil {
		if info.IsDir() {
			return mcp.NewToolResultText(fmt.Sprintf("Directory '%s' already exists", path)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("'%s' exists and is not a directory", path)), nil
	}

	if err := os.MkdirAll(resolvedPath, 0755); err != nil {
		return mcp.NewToolResultError(fmt.Errorf("failed to create directory: %w", err).Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully created directory '%s'", path)), nil
}

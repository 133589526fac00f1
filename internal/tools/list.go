package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

// NewListFilesTool creates the list_files tool.
func NewListFilesTool() mcp.Tool {
	return mcp.NewTool(
		"list_files",
		mcp.WithDescription("List files in a workspace directory. Supports glob pattern filtering and recursive listing."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("path", mcp.Description("Directory relative to the workspace root; defaults to the root itself")),
		mcp.WithString("pattern", mcp.Description("Glob pattern to match file names, e.g. '*.go'")),
		mcp.WithBoolean("recursive", mcp.Description("If true, descend into subdirectories")),
		mcp.WithString("workspace", mcp.Description("Workspace tag; defaults to the primary workspace")),
	)
}

// HandleListFiles handles the list_files tool.
func HandleListFiles(ctx context.Context, resolver *workspace.Resolver, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := cast.ToString(request.Params.Arguments["path"])
	pattern := cast.ToString(request.Params.Arguments["pattern"])
	recursive := cast.ToBool(request.Params.Arguments["recursive"])
	tag := cast.ToString(request.Params.Arguments["workspace"])

	if path == "" {
		path = "."
	}

	resolvedPath, err := resolver.Resolve(tag, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("path resolution failed: %w", err).Error()), nil
	}

	info, err := os.Stat(resolvedPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("failed to stat path: %w", err).Error()), nil
	}
	if !info.IsDir() {
		return mcp.NewToolResultError("path is not a directory"), nil
	}

	var matcher glob.Glob
	if pattern != "" {
		matcher, err = glob.Compile(pattern)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid pattern %q: %v", pattern, err)), nil
		}
	}

	var entries []string
	if recursive {
		err = filepath.WalkDir(resolvedPath, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if matcher != nil && !matcher.Match(d.Name()) {
				return nil
			}
			rel, err := filepath.Rel(resolvedPath, p)
			if err != nil {
				return err
			}
			entries = append(entries, rel)
			return nil
		})
	} else {
		var dirEntries []os.DirEntry
		dirEntries, err = os.ReadDir(resolvedPath)
		if err == nil {
			for _, d := range dirEntries {
				if matcher != nil && !matcher.Match(d.Name()) {
					continue
				}
				name := d.Name()
				if d.IsDir() {
					name += "/"
				}
				entries = append(entries, name)
			}
		}
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Errorf("failed to list files: %w", err).Error()), nil
	}

	sort.Strings(entries)
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No files in %s", path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Files in %s:\n%s", path, strings.Join(entries, "\n"))), nil
}

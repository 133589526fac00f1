package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/linesmith/lineedit-mcp-server/internal/workspace"
)

// NewListWorkspacesTool creates the list_workspaces tool.
func NewListWorkspacesTool() mcp.Tool {
	return mcp.NewTool(
		"list_workspaces",
		mcp.WithDescription("List the configured workspace tags and their root directories."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// HandleListWorkspaces handles the list_workspaces tool.
func HandleListWorkspaces(ctx context.Context, resolver *workspace.Resolver, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Configured workspaces:")
	for _, tag := range resolver.Tags() {
		root, err := resolver.Root(tag)
		if err != nil {
			continue
		}
		marker := ""
		if tag == resolver.DefaultTag() {
			marker = " (default)"
		}
		fmt.Fprintf(&b, "\n%s: %s%s", tag, root, marker)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// NewCreateConstructionWorkspaceTool creates the create_construction_workspace tool.
func NewCreateConstructionWorkspaceTool() mcp.Tool {
	return mcp.NewTool(
		"create_construction_workspace",
		mcp.WithDescription("Clone the stable workspace into the construction workspace. Refuses to replace an "+
			"existing construction workspace unless overwrite is set, in which case the old tree is moved to a "+
			"timestamped backup first."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithBoolean("overwrite", mcp.Description("Replace an existing construction workspace; defaults to false")),
	)
}

// HandleCreateConstructionWorkspace handles the create_construction_workspace tool.
func HandleCreateConstructionWorkspace(ctx context.Context, mirror *workspace.Mirror, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	overwrite := cast.ToBool(request.Params.Arguments["overwrite"])

	backup, err := mirror.CreateConstruction(overwrite)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := "Successfully created construction workspace"
	if backup != "" {
		msg += fmt.Sprintf("\nCreated backup of previous construction workspace at %s", backup)
	}
	return mcp.NewToolResultText(msg), nil
}

// NewRestoreConstructionTool creates the restore_construction tool.
func NewRestoreConstructionTool() mcp.Tool {
	return mcp.NewTool(
		"restore_construction",
		mcp.WithDescription("Discard the construction workspace and re-clone it from stable."),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

// HandleRestoreConstruction handles the restore_construction tool.
func HandleRestoreConstruction(ctx context.Context, mirror *workspace.Mirror, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := mirror.RestoreConstruction(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Successfully restored construction workspace from stable"), nil
}

// NewPromoteConstructionTool creates the promote_construction tool.
func NewPromoteConstructionTool() mcp.Tool {
	return mcp.NewTool(
		"promote_construction",
		mcp.WithDescription("Copy changed and new files from the construction workspace to stable. Unchanged files "+
			"are skipped; the result lists per-file line change counts."),
		mcp.WithDestructiveHintAnnotation(true),
	)
}

// HandlePromoteConstruction handles the promote_construction tool.
func HandlePromoteConstruction(ctx context.Context, mirror *workspace.Mirror, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := mirror.Promote()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Promoted %d file(s), %d unchanged", len(report.Changes), report.Unchanged)
	for _, c := range report.Changes {
		if c.Created {
			fmt.Fprintf(&b, "\n%s: new file (+%d lines)", c.Path, c.Added)
		} else {
			fmt.Fprintf(&b, "\n%s: +%d -%d lines", c.Path, c.Added, c.Removed)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

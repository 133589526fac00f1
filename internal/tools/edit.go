// Package tools defines the MCP tools exposed by the server and their
// handlers. Handlers coerce loosely-typed tool arguments, delegate to the
// engine or workspace layer, and report failures as tool results rather
// than transport errors.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/linesmith/lineedit-mcp-server/internal/engine"
	"github.com/linesmith/lineedit-mcp-server/internal/linespec"
	"github.com/linesmith/lineedit-mcp-server/pkg/editor"
)

// NewEditFileTool creates the edit_file tool.
func NewEditFileTool() mcp.Tool {
	return mcp.NewTool(
		"edit_file",
		mcp.WithDescription("Line-addressable file editor. Supports read, write, insert, append, replace, and delete "+
			"against one or more files. Line numbers are 1-based. When line_number is given, write becomes a positional "+
			"write and mode selects replace/insert/append behavior; without line_number, write replaces the whole file."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("operation", mcp.Description("One of: read, write, insert, append, replace, delete"), mcp.Required()),
		mcp.WithArray("targets", mcp.Description("File paths relative to the workspace root; one or more"), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("content", mcp.Description("Content for write/insert/append; a string (split on newlines) or an array of lines")),
		mcp.WithNumber("line_number", mcp.Description("1-based line number for insert and positional write")),
		mcp.WithString("line_spec", mcp.Description("Lines for read/delete: a number, an array of numbers, a range like '1-10', or 'all'")),
		mcp.WithObject("replacements", mcp.Description("For replace: mapping from 1-based line number to replacement text")),
		mcp.WithString("mode", mcp.Description("Positional write mode: replace (default), insert, or append")),
		mcp.WithString("workspace", mcp.Description("Workspace tag to resolve targets against; defaults to the primary workspace")),
	)
}

// HandleEditFile handles the edit_file tool.
func HandleEditFile(ctx context.Context, batch *engine.Batch, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := parseEditRequest(request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := batch.Run(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(result.Results) == 1 {
		r := result.Results[0]
		if !r.Success {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %s", r.Target, r.Message)), nil
		}
		text := r.Message
		if r.Diff != "" {
			text += "\n\n" + r.Diff
		}
		return mcp.NewToolResultText(text), nil
	}

	return mcp.NewToolResultText(formatBatchResult(result)), nil
}

// parseEditRequest coerces the argument map into an engine request.
// Structural problems the engine cannot express (unparsable spec forms,
// non-numeric replacement keys) are reported here.
func parseEditRequest(args map[string]any) (*engine.Request, error) {
	req := &engine.Request{
		Operation:  editor.Operation(cast.ToString(args["operation"])),
		Targets:    toTargets(args["targets"]),
		LineNumber: cast.ToInt(args["line_number"]),
		Mode:       editor.ModeReplace,
		Workspace:  cast.ToString(args["workspace"]),
	}

	if v, ok := args["content"]; ok && v != nil {
		req.HasContent = true
		req.Content = toContentLines(v)
	}

	if v, ok := args["mode"]; ok && v != nil {
		req.Mode = editor.WriteMode(cast.ToString(v))
	}

	spec, err := linespec.Parse(args["line_spec"])
	if err != nil {
		return nil, err
	}
	req.LineSpec = spec

	if v, ok := args["replacements"]; ok && v != nil {
		replacements, err := toReplacements(v)
		if err != nil {
			return nil, err
		}
		req.Replacements = replacements
	}

	return req, nil
}

func toTargets(v any) []string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []any:
		targets := make([]string, 0, len(val))
		for _, item := range val {
			targets = append(targets, cast.ToString(item))
		}
		return targets
	}
	return nil
}

func toContentLines(v any) []string {
	switch val := v.(type) {
	case string:
		return engine.SplitContent(val)
	case []any:
		lines := make([]string, 0, len(val))
		for _, item := range val {
			lines = append(lines, cast.ToString(item))
		}
		return lines
	}
	return engine.SplitContent(cast.ToString(v))
}

func toReplacements(v any) (map[int]string, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("replacements must be an object mapping line numbers to text")
	}
	out := make(map[int]string, len(obj))
	for key, val := range obj {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("replacements key %q is not a line number", key)
		}
		out[n] = cast.ToString(val)
	}
	return out, nil
}

// formatBatchResult renders the per-target outcomes and the tally.
func formatBatchResult(result *editor.BatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch operation '%s' completed.\n", result.Operation)
	fmt.Fprintf(&b, "Total files processed: %d\n", len(result.Results))
	fmt.Fprintf(&b, "Successful: %d, Failed: %d\n\n", result.Succeeded, result.Failed)
	b.WriteString("Detailed results:")
	for _, r := range result.Results {
		if r.Success {
			fmt.Fprintf(&b, "\n%s: %s", r.Target, r.Message)
		} else {
			fmt.Fprintf(&b, "\n%s: Error: %s", r.Target, r.Message)
		}
	}
	return b.String()
}

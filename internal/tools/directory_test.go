package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestHandleCreateDirectory(t *testing.T) {
	resolver, _, stableRoot := setupTestTools(t)

	if err := os.WriteFile(filepath.Join(stableRoot, "occupied"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    map[string]any
		created string
		isError bool
	}{
		{
			name:    "simple directory",
			args:    map[string]any{"path": "newdir"},
			created: "newdir",
		},
		{
			name:    "nested directories",
			args:    map[string]any{"path": "a/b/c"},
			created: filepath.Join("a", "b", "c"),
		},
		{
			name:    "already exists",
			args:    map[string]any{"path": "newdir"},
			created: "newdir",
		},
		{
			name:    "path occupied by file",
			args:    map[string]any{"path": "occupied"},
			isError: true,
		},
		{
			name:    "escaping path",
			args:    map[string]any{"path": "../outside"},
			isError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{}
			request.Params.Arguments = tt.args

			result, err := HandleCreateDirectory(context.Background(), resolver, request)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.isError != result.IsError {
				t.Fatalf("IsError = %v, want %v (%s)", result.IsError, tt.isError, resultText(t, result))
			}
			if tt.created != "" {
				info, err := os.Stat(filepath.Join(stableRoot, tt.created))
				if err != nil {
					t.Fatalf("expected directory to exist: %v", err)
				}
				if !info.IsDir() {
					t.Error("expected a directory")
				}
			}
		})
	}
}

package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestHandleMoveFile(t *testing.T) {
	resolver, _, stableRoot := setupTestTools(t)

	write := func(name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(stableRoot, name), []byte("content\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("src1.txt")
	write("src2.txt")
	write("src3.txt")
	write("blocker.txt")

	tests := []struct {
		name    string
		args    map[string]any
		moved   string
		gone    string
		isError bool
	}{
		{
			name:  "simple rename",
			args:  map[string]any{"source": "src1.txt", "destination": "dst1.txt"},
			moved: "dst1.txt",
			gone:  "src1.txt",
		},
		{
			name:    "destination exists",
			args:    map[string]any{"source": "src2.txt", "destination": "blocker.txt"},
			isError: true,
		},
		{
			name:    "missing source",
			args:    map[string]any{"source": "ghost.txt", "destination": "dst.txt"},
			isError: true,
		},
		{
			name:    "destination parent missing",
			args:    map[string]any{"source": "src2.txt", "destination": "deep/dst2.txt"},
			isError: true,
		},
		{
			name:  "create destination dirs",
			args:  map[string]any{"source": "src3.txt", "destination": "deep/dst3.txt", "create_dirs": true},
			moved: filepath.Join("deep", "dst3.txt"),
			gone:  "src3.txt",
		},
		{
			name:    "escaping destination",
			args:    map[string]any{"source": "src2.txt", "destination": "../outside.txt"},
			isError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{}
			request.Params.Arguments = tt.args

			result, err := HandleMoveFile(context.Background(), resolver, request)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.isError != result.IsError {
				t.Fatalf("IsError = %v, want %v (%s)", result.IsError, tt.isError, resultText(t, result))
			}
			if tt.moved != "" {
				if _, err := os.Stat(filepath.Join(stableRoot, tt.moved)); err != nil {
					t.Errorf("expected destination to exist: %v", err)
				}
			}
			if tt.gone != "" {
				if _, err := os.Stat(filepath.Join(stableRoot, tt.gone)); !os.IsNotExist(err) {
					t.Errorf("expected source to be gone, got %v", err)
				}
			}
		})
	}
}

package workspace

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestResolver(t *testing.T) (*Resolver, string, string) {
	t.Helper()
	base := t.TempDir()
	stable := filepath.Join(base, "stable")
	construction := filepath.Join(base, "construction")

	r, err := NewResolver(
		map[string]string{TagStable: stable, TagConstruction: construction},
		[]string{TagStable, TagConstruction},
		TagStable,
		testLogger(),
	)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r, stable, construction
}

func TestResolve(t *testing.T) {
	r, stable, construction := setupTestResolver(t)

	if err := os.MkdirAll(filepath.Join(stable, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		tag      string
		rel      string
		expected string
		wantErr  error
	}{
		{"plain file", TagStable, "a.txt", filepath.Join(stable, "a.txt"), nil},
		{"nested file", TagStable, "sub/b.txt", filepath.Join(stable, "sub", "b.txt"), nil},
		{"nonexistent subdir", TagStable, "new/dir/c.txt", filepath.Join(stable, "new", "dir", "c.txt"), nil},
		{"empty tag uses default", "", "a.txt", filepath.Join(stable, "a.txt"), nil},
		{"construction tag", TagConstruction, "a.txt", filepath.Join(construction, "a.txt"), nil},
		{"internal dotdot stays inside", TagStable, "sub/../a.txt", filepath.Join(stable, "a.txt"), nil},
		{"parent traversal", TagStable, "../outside.txt", "", ErrPathEscape},
		{"deep traversal", TagStable, "sub/../../../etc/passwd", "", ErrPathEscape},
		{"absolute path", TagStable, "/etc/passwd", "", ErrPathEscape},
		{"unknown tag", "scratch", "a.txt", "", ErrUnknownWorkspace},
		{"empty path", TagStable, "", "", ErrEmptyPath},
		{"null byte", TagStable, "a\x00.txt", "", ErrNullByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.tag, tt.rel)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Roots may sit behind symlinks on some platforms (macOS /var);
			// compare the suffix relative to the workspace root instead.
			wantRel, _ := filepath.Rel(stable, tt.expected)
			if tt.tag == TagConstruction {
				wantRel, _ = filepath.Rel(construction, tt.expected)
			}
			if !strings.HasSuffix(got, wantRel) {
				t.Errorf("Resolve = %q, want suffix %q", got, wantRel)
			}
		})
	}
}

func TestResolveSymlinkEscape(t *testing.T) {
	r, stable, _ := setupTestResolver(t)

	outside := t.TempDir()
	link := filepath.Join(stable, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if _, err := r.Resolve(TagStable, "link/secret.txt"); !errors.Is(err, ErrPathEscape) {
		t.Errorf("expected ErrPathEscape through symlink, got %v", err)
	}
}

func TestNewResolverValidation(t *testing.T) {
	if _, err := NewResolver(nil, nil, TagStable, testLogger()); err == nil {
		t.Error("expected error for empty root table")
	}

	base := t.TempDir()
	_, err := NewResolver(map[string]string{"a": base}, []string{"a"}, "b", testLogger())
	if !errors.Is(err, ErrUnknownWorkspace) {
		t.Errorf("expected ErrUnknownWorkspace for bad default tag, got %v", err)
	}
}

func TestTagsAndRoots(t *testing.T) {
	r, stable, _ := setupTestResolver(t)

	tags := r.Tags()
	if len(tags) != 2 || tags[0] != TagStable || tags[1] != TagConstruction {
		t.Errorf("Tags = %v", tags)
	}

	root, err := r.Root(TagStable)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if root != stable {
		t.Errorf("Root = %q, want %q", root, stable)
	}

	if r.DefaultTag() != TagStable {
		t.Errorf("DefaultTag = %q", r.DefaultTag())
	}
}

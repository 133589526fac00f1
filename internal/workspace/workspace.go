// Package workspace maps logical workspace tags to root directories and
// resolves request paths against them. The tag table is built once at
// startup and is read-only afterwards, so a single Resolver is safe for
// concurrent readers.
package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/linesmith/lineedit-mcp-server/internal/pathutil"
)

// Conventional workspace tags. Any tag may be configured; these two are the
// ones the construction-workspace lifecycle operates on.
const (
	TagStable       = "stable"
	TagConstruction = "construction"
)

// Sentinel errors for path resolution.
var (
	ErrUnknownWorkspace = errors.New("unknown workspace")
	ErrPathEscape       = errors.New("path escapes workspace root")
	ErrEmptyPath        = errors.New("path is empty")
	ErrNullByte         = errors.New("path contains null byte")
)

// Resolver resolves workspace-relative paths to absolute paths confined to
// the workspace root.
type Resolver struct {
	roots      map[string]string
	tags       []string
	defaultTag string
	logger     *slog.Logger
}

// NewResolver builds a resolver from a tag→root mapping. Roots are
// normalized to absolute paths and created if missing. The order of tags
// follows the order slice; defaultTag is used when a request omits the
// workspace field and must be one of the configured tags.
func NewResolver(roots map[string]string, order []string, defaultTag string, logger *slog.Logger) (*Resolver, error) {
	if len(roots) == 0 {
		return nil, errors.New("no workspace roots configured")
	}
	if _, ok := roots[defaultTag]; !ok {
		return nil, fmt.Errorf("%w: default tag %q not configured", ErrUnknownWorkspace, defaultTag)
	}

	normalized := make(map[string]string, len(roots))
	for tag, root := range roots {
		abs, err := pathutil.Normalize(root)
		if err != nil {
			return nil, fmt.Errorf("workspace %q: %w", tag, err)
		}
		if err := os.MkdirAll(abs, 0755); err != nil {
			return nil, fmt.Errorf("workspace %q: %w", tag, err)
		}
		normalized[tag] = abs
		logger.Debug("registered workspace", "tag", tag, "root", abs)
	}

	return &Resolver{
		roots:      normalized,
		tags:       append([]string(nil), order...),
		defaultTag: defaultTag,
		logger:     logger,
	}, nil
}

// DefaultTag returns the tag used when a request does not name a workspace.
func (r *Resolver) DefaultTag() string {
	return r.defaultTag
}

// Tags returns the configured tags in registration order.
func (r *Resolver) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// Root returns the absolute root directory for a tag.
func (r *Resolver) Root(tag string) (string, error) {
	if tag == "" {
		tag = r.defaultTag
	}
	root, ok := r.roots[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownWorkspace, tag)
	}
	return root, nil
}

// Resolve maps a workspace tag and a relative path to an absolute path
// confined to the workspace root. The target does not have to exist:
// symlinks are resolved on the longest existing prefix of the path so that
// a link pointing outside the root cannot be used to escape it.
func (r *Resolver) Resolve(tag, rel string) (string, error) {
	root, err := r.Root(tag)
	if err != nil {
		return "", err
	}

	if rel == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(rel, 0) {
		return "", ErrNullByte
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: absolute path %q", ErrPathEscape, rel)
	}

	joined := filepath.Clean(filepath.Join(root, rel))

	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	resolved, err := resolveExistingPrefix(joined)
	if err != nil {
		return "", err
	}

	if err := ensureWithin(resolvedRoot, resolved); err != nil {
		return "", fmt.Errorf("%w: %q", err, rel)
	}

	return resolved, nil
}

// resolveExistingPrefix resolves symlinks on the longest existing prefix of
// path and rejoins the nonexistent remainder.
func resolveExistingPrefix(path string) (string, error) {
	var tail []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return path, nil
		}
		tail = append(tail, filepath.Base(current))
		current = parent
	}
}

// ensureWithin reports ErrPathEscape unless target equals root or lies
// beneath it.
func ensureWithin(root, target string) error {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return ErrPathEscape
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrPathEscape
	}
	return nil
}

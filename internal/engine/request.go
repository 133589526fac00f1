package engine

import (
	"errors"
	"fmt"

	"github.com/linesmith/lineedit-mcp-server/internal/linespec"
	"github.com/linesmith/lineedit-mcp-server/pkg/editor"
)

// Sentinel errors for engine failures. Line-index errors come from the
// linespec package.
var (
	ErrNotFound       = errors.New("file not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrWriteFailure   = errors.New("write failure")
)

// Request carries one operation and its parameters for one or more target
// files. It is immutable once handed to the engine.
type Request struct {
	Operation editor.Operation
	Targets   []string

	// Content lines for write/insert/append. HasContent distinguishes an
	// absent parameter from an explicitly empty list.
	Content    []string
	HasContent bool

	// LineNumber is 1-based; zero means absent. Its presence selects the
	// positional-write variant of the write operation.
	LineNumber int

	// LineSpec targets lines for read and delete.
	LineSpec linespec.Spec

	// Replacements maps 1-based line indices to replacement text.
	Replacements map[int]string

	// Mode applies only to positional writes.
	Mode editor.WriteMode

	// Workspace selects the resolution root; empty means the default.
	Workspace string
}

// Validate checks the request's structure before any file is touched.
// Per-line bounds are checked later, per target, against each file.
func (r *Request) Validate() error {
	if !r.Operation.Valid() {
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, r.Operation)
	}
	if len(r.Targets) == 0 {
		return fmt.Errorf("%w: no target files", ErrInvalidRequest)
	}
	if r.LineNumber < 0 {
		return fmt.Errorf("%w: line_number must be positive", ErrInvalidRequest)
	}

	switch r.Operation {
	case editor.OpRead:
		// line_spec is optional; absent means the whole file.

	case editor.OpWrite:
		if !r.HasContent {
			return fmt.Errorf("%w: content required for write", ErrInvalidRequest)
		}
		if r.LineNumber > 0 {
			if !r.Mode.Valid() {
				return fmt.Errorf("%w: invalid mode %q", ErrInvalidRequest, r.Mode)
			}
			if r.Mode == editor.ModeReplace && len(r.Content) != 1 {
				return fmt.Errorf("%w: positional write with mode=replace takes exactly one content line", ErrInvalidRequest)
			}
		}

	case editor.OpInsert:
		if !r.HasContent {
			return fmt.Errorf("%w: content required for insert", ErrInvalidRequest)
		}
		if r.LineNumber == 0 {
			return fmt.Errorf("%w: line_number required for insert", ErrInvalidRequest)
		}

	case editor.OpAppend:
		if !r.HasContent {
			return fmt.Errorf("%w: content required for append", ErrInvalidRequest)
		}

	case editor.OpReplace:
		if len(r.Replacements) == 0 {
			return fmt.Errorf("%w: replacements required for replace", ErrInvalidRequest)
		}
		for n := range r.Replacements {
			if n < 1 {
				return fmt.Errorf("%w: replacement line numbers must be positive", ErrInvalidRequest)
			}
		}

	case editor.OpDelete:
		if r.LineSpec.IsZero() {
			return fmt.Errorf("%w: line_spec required for delete", ErrInvalidRequest)
		}
	}

	return nil
}

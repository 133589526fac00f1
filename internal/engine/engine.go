// Package engine implements the line-addressable file operations: read,
// write, insert, append, replace, and delete. The engine is stateless; each
// call re-reads the target from disk and persists mutations with an atomic
// replace, so the on-disk file is never observed half-written.
package engine

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/linesmith/lineedit-mcp-server/internal/linespec"
	"github.com/linesmith/lineedit-mcp-server/pkg/editor"
)

// Engine applies one operation to one resolved file path.
type Engine struct {
	logger *slog.Logger
}

// New creates an Engine.
func New(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

// outcome is the successful result of an in-memory transformation, before
// persistence.
type outcome struct {
	lines    []string
	message  string
	affected int
	mutated  bool
}

// Apply performs req.Operation against resolvedPath. target is the path
// string as the caller supplied it and is echoed in the result. Failures
// are returned as data; the file is unmodified on any failed result.
func (e *Engine) Apply(target, resolvedPath string, req *Request) editor.OperationResult {
	lines, exists, err := e.load(resolvedPath, req)
	if err != nil {
		return failure(target, err)
	}

	before := joinLines(lines)

	out, err := e.transform(lines, exists, req)
	if err != nil {
		return failure(target, err)
	}

	result := editor.OperationResult{
		Target:        target,
		Success:       true,
		Message:       out.message,
		AffectedLines: out.affected,
	}

	if out.mutated {
		if err := atomicWriteLines(resolvedPath, out.lines); err != nil {
			return failure(target, fmt.Errorf("%w: %v", ErrWriteFailure, err))
		}
		result.Diff = unifiedDiff(target, before, joinLines(out.lines))
		e.logger.Debug("applied operation", "operation", req.Operation, "path", resolvedPath, "lines", len(out.lines))
	}

	return result
}

// load decodes the target into a line sequence. Only a full-file write may
// treat a missing file as empty.
func (e *Engine) load(path string, req *Request) ([]string, bool, error) {
	lines, err := readLines(path)
	if err == nil {
		return lines, true, nil
	}
	if os.IsNotExist(err) {
		if req.Operation == editor.OpWrite && req.LineNumber == 0 {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil, false, err
}

func (e *Engine) transform(lines []string, exists bool, req *Request) (outcome, error) {
	switch req.Operation {
	case editor.OpRead:
		return readOp(lines, req)
	case editor.OpWrite:
		if req.LineNumber > 0 {
			return positionalWrite(lines, req)
		}
		return fullWrite(req, exists)
	case editor.OpInsert:
		return insertOp(lines, req.LineNumber, req.Content)
	case editor.OpAppend:
		return appendOp(lines, req.Content)
	case editor.OpReplace:
		return replaceOp(lines, req.Replacements)
	case editor.OpDelete:
		return deleteOp(lines, req.LineSpec)
	}
	return outcome{}, fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, req.Operation)
}

func readOp(lines []string, req *Request) (outcome, error) {
	spec := req.LineSpec
	if spec.IsZero() {
		spec = linespec.All()
	}
	indices, err := spec.Resolve(len(lines))
	if err != nil {
		return outcome{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total lines: %d", len(lines))
	for _, n := range indices {
		fmt.Fprintf(&b, "\nLine %d: %s", n, lines[n-1])
	}

	return outcome{message: b.String(), affected: len(indices)}, nil
}

func fullWrite(req *Request, existed bool) (outcome, error) {
	newLines := append([]string(nil), req.Content...)
	msg := fmt.Sprintf("Wrote %d line(s)", len(newLines))
	if !existed {
		msg += " (created file)"
	}
	return outcome{lines: newLines, message: msg, affected: len(newLines), mutated: true}, nil
}

func positionalWrite(lines []string, req *Request) (outcome, error) {
	n := req.LineNumber
	switch req.Mode {
	case editor.ModeReplace:
		if n > len(lines) {
			return outcome{}, fmt.Errorf("%w: line %d (file has %d lines)", linespec.ErrOutOfRange, n, len(lines))
		}
		updated := append([]string(nil), lines...)
		updated[n-1] = req.Content[0]
		return outcome{
			lines:    updated,
			message:  fmt.Sprintf("Replaced line %d", n),
			affected: 1,
			mutated:  true,
		}, nil

	case editor.ModeInsert:
		return insertOp(lines, n, req.Content)

	case editor.ModeAppend:
		if n > len(lines) {
			return outcome{}, fmt.Errorf("%w: line %d (file has %d lines)", linespec.ErrOutOfRange, n, len(lines))
		}
		out, err := insertOp(lines, n+1, req.Content)
		if err != nil {
			return outcome{}, err
		}
		out.message = fmt.Sprintf("Appended %d line(s) after line %d", len(req.Content), n)
		return out, nil
	}
	return outcome{}, fmt.Errorf("%w: invalid mode %q", ErrInvalidRequest, req.Mode)
}

// insertOp splices content before line n. n == len(lines)+1 expresses
// end-of-file insertion.
func insertOp(lines []string, n int, content []string) (outcome, error) {
	if n < 1 || n > len(lines)+1 {
		return outcome{}, fmt.Errorf("%w: line %d (file has %d lines)", linespec.ErrOutOfRange, n, len(lines))
	}

	updated := make([]string, 0, len(lines)+len(content))
	updated = append(updated, lines[:n-1]...)
	updated = append(updated, content...)
	updated = append(updated, lines[n-1:]...)

	return outcome{
		lines:    updated,
		message:  fmt.Sprintf("Inserted %d line(s) before line %d", len(content), n),
		affected: len(content),
		mutated:  true,
	}, nil
}

func appendOp(lines []string, content []string) (outcome, error) {
	updated := append(append([]string(nil), lines...), content...)
	return outcome{
		lines:    updated,
		message:  fmt.Sprintf("Appended %d line(s)", len(content)),
		affected: len(content),
		mutated:  true,
	}, nil
}

// replaceOp overwrites the lines named in replacements. All indices are
// validated before any line is changed; an invalid index fails the whole
// call and leaves the sequence untouched.
func replaceOp(lines []string, replacements map[int]string) (outcome, error) {
	indices := make([]int, 0, len(replacements))
	for n := range replacements {
		indices = append(indices, n)
	}
	sort.Ints(indices)

	for _, n := range indices {
		if n < 1 || n > len(lines) {
			return outcome{}, fmt.Errorf("%w: line %d (file has %d lines)", linespec.ErrOutOfRange, n, len(lines))
		}
	}

	updated := append([]string(nil), lines...)
	for _, n := range indices {
		updated[n-1] = replacements[n]
	}

	return outcome{
		lines:    updated,
		message:  fmt.Sprintf("Replaced %d line(s)", len(indices)),
		affected: len(indices),
		mutated:  true,
	}, nil
}

// deleteOp removes the resolved lines in descending index order, so that
// removing one line never shifts the meaning of a not-yet-processed index.
func deleteOp(lines []string, spec linespec.Spec) (outcome, error) {
	indices, err := spec.Resolve(len(lines))
	if err != nil {
		return outcome{}, err
	}

	updated := append([]string(nil), lines...)
	for i := len(indices) - 1; i >= 0; i-- {
		n := indices[i]
		updated = append(updated[:n-1], updated[n:]...)
	}

	return outcome{
		lines:    updated,
		message:  fmt.Sprintf("Deleted %d line(s)", len(indices)),
		affected: len(indices),
		mutated:  true,
	}, nil
}

func failure(target string, err error) editor.OperationResult {
	return editor.OperationResult{Target: target, Message: err.Error()}
}

// unifiedDiff renders the change as a unified diff for the result record.
func unifiedDiff(target, oldText, newText string) string {
	if oldText == newText {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(target), oldText, newText)
	return fmt.Sprint(gotextdiff.ToUnified("a/"+target, "b/"+target, oldText, edits))
}

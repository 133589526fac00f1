// Package editor provides the request and result types for the line-editing
// engine. These types are the contract between the MCP tool surface and the
// engine, and are stable regardless of transport.
package editor

import "fmt"

// Operation identifies one of the six supported file operations.
type Operation string

const (
	OpRead    Operation = "read"
	OpWrite   Operation = "write"
	OpInsert  Operation = "insert"
	OpAppend  Operation = "append"
	OpReplace Operation = "replace"
	OpDelete  Operation = "delete"
)

// Valid reports whether op names a supported operation.
func (op Operation) Valid() bool {
	switch op {
	case OpRead, OpWrite, OpInsert, OpAppend, OpReplace, OpDelete:
		return true
	}
	return false
}

// Mutating reports whether op changes file contents.
func (op Operation) Mutating() bool {
	return op != OpRead
}

// WriteMode selects the behavior of a positional write (a write with a
// line_number). It has no meaning for any other operation.
type WriteMode string

const (
	ModeReplace WriteMode = "replace"
	ModeInsert  WriteMode = "insert"
	ModeAppend  WriteMode = "append"
)

// Valid reports whether m names a supported positional-write mode.
func (m WriteMode) Valid() bool {
	switch m {
	case ModeReplace, ModeInsert, ModeAppend:
		return true
	}
	return false
}

// OperationResult is the outcome of one operation against one target file.
// Message is human-readable; Diff carries a unified diff for successful
// mutating operations.
type OperationResult struct {
	Target        string `json:"target"`
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AffectedLines int    `json:"affected_lines,omitempty"`
	Diff          string `json:"diff,omitempty"`
}

func (r OperationResult) String() string {
	status := "ok"
	if !r.Success {
		status = "error"
	}
	return fmt.Sprintf("%s: [%s] %s", r.Target, status, r.Message)
}

// BatchResult aggregates the per-target outcomes of a batch request.
// Results preserve the order targets were listed in.
type BatchResult struct {
	Operation Operation         `json:"operation"`
	Results   []OperationResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// Add appends a result and updates the tally.
func (b *BatchResult) Add(r OperationResult) {
	b.Results = append(b.Results, r)
	if r.Success {
		b.Succeeded++
	} else {
		b.Failed++
	}
}

package engine

import (
	"log/slog"

	"github.com/linesmith/lineedit-mcp-server/pkg/editor"
)

// PathResolver resolves a workspace-relative target to an absolute path.
type PathResolver interface {
	Resolve(tag, rel string) (string, error)
}

// Batch applies one operation across a request's targets, one at a time and
// in the order listed. A failure on one target never aborts the others.
type Batch struct {
	resolver PathResolver
	engine   *Engine
	logger   *slog.Logger
}

// NewBatch creates a Batch executor.
func NewBatch(resolver PathResolver, engine *Engine, logger *slog.Logger) *Batch {
	return &Batch{resolver: resolver, engine: engine, logger: logger}
}

// Run validates the request's structure, then attempts every target and
// tallies the per-target outcomes. The returned error is non-nil only for
// structurally invalid requests, in which case no file was touched.
func (b *Batch) Run(req *Request) (*editor.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result := &editor.BatchResult{Operation: req.Operation}
	for _, target := range req.Targets {
		resolved, err := b.resolver.Resolve(req.Workspace, target)
		if err != nil {
			result.Add(editor.OperationResult{Target: target, Message: err.Error()})
			continue
		}
		result.Add(b.engine.Apply(target, resolved, req))
	}

	b.logger.Debug("batch complete",
		"operation", req.Operation,
		"targets", len(req.Targets),
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}

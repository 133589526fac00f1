package workspace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Directory names never cloned or promoted.
var excludedDirs = map[string]bool{
	".git":    true,
	".vscode": true,
	".idea":   true,
	"temp":    true,
}

// Mirror manages the construction-workspace lifecycle: cloning it from
// stable, restoring it, and promoting its changes back.
type Mirror struct {
	resolver *Resolver
	logger   *slog.Logger
}

// NewMirror creates a Mirror over the stable and construction workspaces.
func NewMirror(resolver *Resolver, logger *slog.Logger) *Mirror {
	return &Mirror{resolver: resolver, logger: logger}
}

// FileChange describes one file promoted from construction to stable.
type FileChange struct {
	Path    string `json:"path"`
	Created bool   `json:"created"`
	Added   int    `json:"lines_added"`
	Removed int    `json:"lines_removed"`
}

// PromoteReport summarizes a promotion run.
type PromoteReport struct {
	Changes   []FileChange `json:"changes"`
	Unchanged int          `json:"unchanged"`
}

// CreateConstruction clones the stable workspace into the construction
// workspace. When the construction workspace already has content, the call
// fails unless overwrite is set, in which case the existing tree is first
// moved aside to a timestamped backup directory. Returns the backup path
// when one was made.
func (m *Mirror) CreateConstruction(overwrite bool) (string, error) {
	stableRoot, constructionRoot, err := m.roots()
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(constructionRoot)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}

	backupPath := ""
	if len(entries) > 0 {
		if !overwrite {
			return "", fmt.Errorf("construction workspace already has %d entries; set overwrite=true to replace (a timestamped backup will be created)", len(entries))
		}
		backupPath, err = m.backupConstruction(constructionRoot)
		if err != nil {
			return "", fmt.Errorf("failed to back up construction workspace: %w", err)
		}
	}

	if err := os.MkdirAll(constructionRoot, 0755); err != nil {
		return "", err
	}
	if err := m.copyTree(stableRoot, constructionRoot); err != nil {
		return "", fmt.Errorf("failed to clone stable workspace: %w", err)
	}

	m.logger.Info("created construction workspace", "root", constructionRoot, "backup", backupPath)
	return backupPath, nil
}

// RestoreConstruction discards the construction workspace and re-clones it
// from stable.
func (m *Mirror) RestoreConstruction() error {
	stableRoot, constructionRoot, err := m.roots()
	if err != nil {
		return err
	}

	if err := os.RemoveAll(constructionRoot); err != nil {
		return fmt.Errorf("failed to remove construction workspace: %w", err)
	}
	if err := os.MkdirAll(constructionRoot, 0755); err != nil {
		return err
	}
	if err := m.copyTree(stableRoot, constructionRoot); err != nil {
		return fmt.Errorf("failed to clone stable workspace: %w", err)
	}

	m.logger.Info("restored construction workspace", "root", constructionRoot)
	return nil
}

// Promote copies changed and new files from construction to stable.
// Unchanged files are skipped. The report carries per-file line-level
// change counts.
func (m *Mirror) Promote() (*PromoteReport, error) {
	stableRoot, constructionRoot, err := m.roots()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(constructionRoot); err != nil {
		return nil, fmt.Errorf("construction workspace not found: %w", err)
	}

	report := &PromoteReport{}
	dmp := diffmatchpatch.New()

	walkErr := filepath.WalkDir(constructionRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != constructionRoot && (excludedDirs[name] || m.isLifecycleDir(stableRoot, path)) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(constructionRoot, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(stableRoot, rel)

		newData, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		oldData, err := os.ReadFile(dst)
		if os.IsNotExist(err) {
			if err := copyFileTo(path, dst); err != nil {
				return err
			}
			report.Changes = append(report.Changes, FileChange{
				Path:    rel,
				Created: true,
				Added:   strings.Count(string(newData), "\n"),
			})
			return nil
		}
		if err != nil {
			return err
		}

		if string(oldData) == string(newData) {
			report.Unchanged++
			return nil
		}

		added, removed := lineChanges(dmp, string(oldData), string(newData))
		if err := copyFileTo(path, dst); err != nil {
			return err
		}
		report.Changes = append(report.Changes, FileChange{Path: rel, Added: added, Removed: removed})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	m.logger.Info("promoted construction workspace", "changed", len(report.Changes), "unchanged", report.Unchanged)
	return report, nil
}

func (m *Mirror) roots() (string, string, error) {
	stableRoot, err := m.resolver.Root(TagStable)
	if err != nil {
		return "", "", err
	}
	constructionRoot, err := m.resolver.Root(TagConstruction)
	if err != nil {
		return "", "", err
	}
	return stableRoot, constructionRoot, nil
}

// backupConstruction moves the construction tree aside to a timestamped
// sibling directory and returns its path.
func (m *Mirror) backupConstruction(constructionRoot string) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	backup := fmt.Sprintf("%s_backup_%s", constructionRoot, timestamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(backup); os.IsNotExist(err) {
			break
		}
		backup = fmt.Sprintf("%s_backup_%s_%d", constructionRoot, timestamp, counter)
	}
	if err := os.Rename(constructionRoot, backup); err != nil {
		return "", err
	}
	return backup, nil
}

// copyTree copies src into dst, skipping excluded directories, the
// construction root when it is nested inside stable, and backup trees.
func (m *Mirror) copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if excludedDirs[name] || m.isLifecycleDir(src, path) {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(dst, rel), 0755)
		}
		return copyFileTo(path, filepath.Join(dst, rel))
	})
}

// isLifecycleDir reports whether path is the construction root itself or
// one of its backups, relative to the tree rooted at base. Cloning stable
// into a nested construction directory must not recurse into them.
func (m *Mirror) isLifecycleDir(base, path string) bool {
	constructionRoot, err := m.resolver.Root(TagConstruction)
	if err != nil {
		return false
	}
	if path == constructionRoot {
		return true
	}
	prefix := filepath.Base(constructionRoot) + "_backup_"
	return filepath.Dir(path) == filepath.Dir(constructionRoot) && strings.HasPrefix(filepath.Base(path), prefix)
}

func copyFileTo(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// lineChanges counts added and removed lines between two texts using a
// line-granular diff.
func lineChanges(dmp *diffmatchpatch.DiffMatchPatch, oldText, newText string) (added, removed int) {
	chars1, chars2, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}

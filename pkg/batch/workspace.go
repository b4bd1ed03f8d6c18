// --- START OF FINAL REVISED FILE pkg/batch/workspace.go ---
package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
)

// Workspace is a uniquely named staging directory with a lifetime bounded by
// one batch run. The external engine reads and writes by filesystem path, so
// item bytes are exchanged with it through this directory. A Workspace is
// exclusively owned by one run and never shared; concurrent runs each acquire
// their own.
type Workspace struct {
	dir      string
	logger   *slog.Logger
	released atomic.Bool
}

// AcquireWorkspace creates a new empty staging directory under baseDir
// (os.TempDir when baseDir is empty). Callers must Release it on every exit
// path, typically via defer.
func AcquireWorkspace(baseDir string, loggerHandler slog.Handler) (*Workspace, error) {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "workspace"))
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	dir := filepath.Join(baseDir, workspacePrefix+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Error("Failed to create staging directory", slog.String("dir", dir), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrWorkspace, err)
	}
	logger.Debug("Workspace acquired", slog.String("dir", dir))
	return &Workspace{dir: dir, logger: logger}, nil
}

// Dir returns the workspace's directory path.
func (w *Workspace) Dir() string { return w.dir }

// StagePath returns a workspace-local path for a uniquely named staged file
// carrying the given extension (including the dot).
func (w *Workspace) StagePath(ext string) string { // minimal comment
	return filepath.Join(w.dir, uuid.NewString()+ext)
}

// Release removes the staging directory and everything inside it, including
// files a failed or cancelled run left behind. Idempotent.
func (w *Workspace) Release() {
	if w == nil || !w.released.CompareAndSwap(false, true) {
		return
	}
	if err := os.RemoveAll(w.dir); err != nil {
		// Nothing the caller can do; stray directories carry the workspacePrefix
		// so an operator can find them.
		w.logger.Error("Failed to remove staging directory", slog.String("dir", w.dir), slog.String("error", err.Error()))
		return
	}
	w.logger.Debug("Workspace released", slog.String("dir", w.dir))
}

// Released reports whether Release has run.
func (w *Workspace) Released() bool { return w.released.Load() }

// --- END OF FINAL REVISED FILE pkg/batch/workspace.go ---

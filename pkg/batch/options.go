// --- START OF FINAL REVISED FILE pkg/batch/options.go ---
package batch

import (
	"context"
	"log/slog"
	"time"
)

// Engine abstracts the external, stateful document renderer. Implementations
// operate on filesystem paths (not in-memory buffers), which is why items are
// staged into a Workspace before each call.
//
// The engine is assumed single-instance and non-reentrant: callers MUST NOT
// invoke Convert from two goroutines at once. The batch runner enforces this
// with a process-wide lock; standalone callers share the same obligation.
type Engine interface {
	// Convert renders the document at srcPath into a PDF written to dstPath.
	// kind is KindWord or KindPowerpoint. Failures should wrap one of
	// ErrEngineUnavailable, ErrDocumentCorrupt, or ErrEngineTimeout where the
	// cause is known, or ErrEngineFailure otherwise.
	Convert(ctx context.Context, kind DocKind, srcPath, dstPath string) error
}

// Hooks defines callbacks for status updates during the batch run.
// Implementations MUST be thread-safe; the CLI may consume these events from
// a different goroutine than the one running the batch.
type Hooks interface {
	OnItemDiscovered(path string) error
	OnItemStatusUpdate(path string, status Status, message string, duration time.Duration) error
	OnRunComplete(result Result) error
}

// NoOpHooks provides a default, do-nothing implementation of the Hooks interface.
type NoOpHooks struct{}

// OnItemDiscovered implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnItemDiscovered(path string) error { return nil }

// OnItemStatusUpdate implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnItemStatusUpdate(path string, status Status, message string, duration time.Duration) error { // minimal comment
	return nil
}

// OnRunComplete implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnRunComplete(result Result) error { return nil }

// Options holds all configuration for a ConvertBatch run.
type Options struct {
	// --- Core Paths ---
	InputPaths []string `mapstructure:"inputs"`     // CLI-side: files, a directory, or a single archive
	OutputPath string   `mapstructure:"outputPath"` // CLI-side: path of the archive to write

	// --- Application Info ---
	AppVersion string `mapstructure:"-"` // Application version (e.g., "v1.2.0", "dev"). Populated by caller.

	// --- Behavior & Control ---
	ConfigFilePath    string       `mapstructure:"-"`                 // Path to the loaded config file (for reporting)
	ProfileName       string       `mapstructure:"-"`                 // Name of the profile used (for reporting)
	Verbose           bool         `mapstructure:"verbose"`           // Enable debug logging
	TuiEnabled        bool         `mapstructure:"tuiEnabled"`        // Hint for CLI to use TUI (ignored if Verbose)
	PreserveHierarchy bool         `mapstructure:"preserveHierarchy"` // Mirror input paths in the output archive
	OutputFormat      OutputFormat `mapstructure:"outputFormat"`      // ("text", "json", "yaml") for the final summary

	// --- Engine ---
	EngineCommand []string      `mapstructure:"engineCommand"` // External converter argv prefix (default: soffice)
	EngineTimeout time.Duration `mapstructure:"engineTimeout"` // Per-document conversion timeout

	// --- Validation ---
	ValidatePassthrough bool `mapstructure:"validatePassthrough"` // Parse existing PDFs before copying them through
	VerifyEngineOutput  bool `mapstructure:"verifyEngineOutput"`  // Parse engine-produced files before accepting them

	// --- Staging ---
	WorkspaceDir string `mapstructure:"workspaceDir"` // Base dir for staging workspaces ("" = os.TempDir)

	// --- Injected Dependencies & Internal State ---
	EventHooks Hooks        `mapstructure:"-"` // Optional: callback interface (NoOpHooks when nil)
	Logger     slog.Handler `mapstructure:"-"` // Required: logging backend
	Engine     Engine       `mapstructure:"-"` // Required: document conversion implementation
}

// --- END OF FINAL REVISED FILE pkg/batch/options.go ---

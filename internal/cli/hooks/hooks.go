// --- START OF FINAL REVISED FILE internal/cli/hooks/hooks.go ---
package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
)

// --- TUI Message Structs ---

// ItemDiscoveredMsg signals that an input document was collected.
type ItemDiscoveredMsg struct{ Path string }

// ItemStatusUpdateMsg signals a change in an item's conversion status.
type ItemStatusUpdateMsg struct {
	Path     string
	Status   batch.Status
	Message  string
	Duration time.Duration
}

// RunCompleteMsg signals the completion of the entire batch run.
type RunCompleteMsg struct{ Result batch.Result }

// --- Hook Implementation ---

// CLIHooks implements the batch.Hooks interface, bridging library events to
// the CLI's UI layer (TUI, Logger, Progress Bar).
type CLIHooks struct {
	logger         *slog.Logger
	tuiEnabled     bool
	verboseEnabled bool
	tuiProgram     TUIProgram
	progressBar    ProgressBar
	mu             sync.Mutex // Protects concurrent access to progressBar
}

// TUIProgram defines the interface needed to interact with the Bubble Tea program.
type TUIProgram interface {
	Send(msg interface{})
}

// ProgressBar defines the interface needed to interact with the progress bar.
type ProgressBar interface {
	Add(num int) error
	Describe(description string) error
	Close() error
}

// --- No-Op Implementations for Decoupling ---

// NoOpTUIProgram provides a default null implementation.
type NoOpTUIProgram struct{}

// Send implements TUIProgram.
func (n *NoOpTUIProgram) Send(msg interface{}) {}

// NoOpProgressBar provides a default null implementation.
type NoOpProgressBar struct{}

// Add implements ProgressBar.
func (n *NoOpProgressBar) Add(num int) error { return nil }

// Describe implements ProgressBar.
func (n *NoOpProgressBar) Describe(description string) error { return nil }

// Close implements ProgressBar.
func (n *NoOpProgressBar) Close() error { return nil }

// --- Constructor ---

// NewCLIHooks creates a new CLIHooks instance.
// Pass nil for tuiProgram or progressBar if not applicable; NoOp versions will be used.
func NewCLIHooks(logger *slog.Logger, tuiEnabled, verboseEnabled bool, tuiProg TUIProgram, progBar ProgressBar) batch.Hooks {
	if tuiProg == nil {
		tuiProg = &NoOpTUIProgram{}
	}
	if progBar == nil {
		progBar = &NoOpProgressBar{}
	}
	return &CLIHooks{
		logger:         logger,
		tuiEnabled:     tuiEnabled,
		verboseEnabled: verboseEnabled,
		tuiProgram:     tuiProg,
		progressBar:    progBar,
	}
}

// --- Interface Method Implementations ---

// OnItemDiscovered handles the event when an input document is collected.
func (h *CLIHooks) OnItemDiscovered(path string) error {
	if h.tuiEnabled {
		h.tuiProgram.Send(ItemDiscoveredMsg{Path: path})
	} else if h.verboseEnabled {
		h.logger.Debug("Item discovered", "path", path)
	}
	return nil // Library ignores hook errors
}

// OnItemStatusUpdate handles events when an item's conversion status changes.
// This method MUST be thread-safe.
func (h *CLIHooks) OnItemStatusUpdate(path string, status batch.Status, message string, duration time.Duration) error {
	// TUI Mode: Send a message
	if h.tuiEnabled {
		h.tuiProgram.Send(ItemStatusUpdateMsg{
			Path:     path,
			Status:   status,
			Message:  message,
			Duration: duration,
		})
		return nil
	}

	// Verbose Logging Mode
	if h.verboseEnabled {
		logLevel := slog.LevelDebug
		logMsg := "Item status updated"
		attrs := []any{
			slog.String("path", path),
			slog.String("status", string(status)),
		}
		if duration > 0 {
			attrs = append(attrs, slog.Duration("duration", duration))
		}
		if message != "" {
			logKey := "message"
			if status == batch.StatusFailed {
				logKey = "error"
			}
			attrs = append(attrs, slog.String(logKey, message))
		}

		switch status {
		case batch.StatusConverted, batch.StatusCopied:
			logLevel = slog.LevelInfo
		case batch.StatusFailed:
			logLevel = slog.LevelError
			logMsg = "Item conversion failed"
		}
		h.logger.Log(context.Background(), logLevel, logMsg, attrs...)
		return nil
	}

	// Progress Bar Mode (Non-Verbose, TTY)
	h.mu.Lock()
	defer h.mu.Unlock()

	isFinalState := status == batch.StatusConverted ||
		status == batch.StatusCopied ||
		status == batch.StatusFailed

	if isFinalState {
		_ = h.progressBar.Add(1) // Ignore potential error
	} else if status == batch.StatusProcessing {
		_ = h.progressBar.Describe(fmt.Sprintf("Converting %s", path))
	}

	// Failures surface even in progress bar mode.
	if status == batch.StatusFailed {
		h.logger.Error("Item conversion failed", "path", path, "error", message)
	}

	return nil // Library ignores hook errors
}

// OnRunComplete handles the event when the entire batch run finishes.
// Sends the final result to the TUI or finalizes the progress bar.
func (h *CLIHooks) OnRunComplete(result batch.Result) error {
	if h.tuiEnabled {
		h.tuiProgram.Send(RunCompleteMsg{Result: result})
	} else {
		// The final summary rendering is handled by the main CLI logic; this
		// hook only finalizes the progress bar if one was active.
		h.mu.Lock()
		_ = h.progressBar.Close() // Ignore error closing bar
		h.mu.Unlock()
		if !h.verboseEnabled {
			// Newline after the progress bar finishes to prevent prompt overlap.
			_, _ = fmt.Fprintf(os.Stderr, "\n")
		}
	}
	return nil // Library ignores hook errors
}

// --- END OF FINAL REVISED FILE internal/cli/hooks/hooks.go ---

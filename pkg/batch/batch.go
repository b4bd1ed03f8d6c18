// --- START OF FINAL REVISED FILE pkg/batch/batch.go ---
package batch

import (
	"context"
	"fmt"
	"log/slog"
)

// ConvertBatch is the main entry point for the core conversion library. It
// composes Collector -> Workspace -> Runner -> Packager: discovers the input
// files, converts each supported document through the engine with per-item
// error isolation, and packages the successful outputs into a single zip
// archive mirroring the input hierarchy (or a flattened one).
//
// Item-scoped problems are recorded inside the returned Result and never fail
// the call. Only whole-request conditions return an error: invalid options
// (ErrConfigValidation), an unreadable/empty input (ErrCollection), workspace
// acquisition (ErrWorkspace), or packaging (ErrPackaging) — and on every one
// of those paths the staging workspace is still released.
//
// A cancelled context stops the run between items; the Result carries the
// outcomes accumulated so far with Summary.Cancelled set, and whatever
// already succeeded is still packaged.
func ConvertBatch(ctx context.Context, opts Options, input InputSpec) ([]byte, Result, error) {
	// --- Initial Validation ---
	if opts.Logger == nil {
		return nil, Result{}, fmt.Errorf("%w: Logger implementation (slog.Handler) cannot be nil", ErrConfigValidation)
	}
	logger := slog.New(opts.Logger)
	if opts.Engine == nil {
		err := fmt.Errorf("%w: Engine implementation cannot be nil", ErrConfigValidation)
		logger.Error(err.Error())
		return nil, Result{}, err
	}
	if opts.EventHooks == nil {
		opts.EventHooks = &NoOpHooks{}
	}
	if opts.EngineTimeout < 0 {
		err := fmt.Errorf("%w: engine timeout cannot be negative", ErrConfigValidation)
		logger.Error(err.Error(), slog.Duration("engineTimeout", opts.EngineTimeout))
		return nil, Result{}, err
	}

	logger.Info("Starting batch conversion", slog.String("inputKind", string(input.Kind)))

	// --- Collection ---
	entries, err := NewCollector(opts.Logger).Collect(input)
	if err != nil {
		logger.Error("Input collection failed", slog.String("error", err.Error()))
		return nil, Result{}, err
	}
	for _, e := range entries {
		if hookErr := opts.EventHooks.OnItemDiscovered(e.Item.RelPath); hookErr != nil {
			logger.Warn("Event hook OnItemDiscovered failed", slog.String("path", e.Item.RelPath), slog.String("error", hookErr.Error()))
		}
	}

	// --- Staging Workspace ---
	ws, err := AcquireWorkspace(opts.WorkspaceDir, opts.Logger)
	if err != nil {
		return nil, Result{}, err
	}
	// Released unconditionally: success, per-item failure, cancellation, or a
	// fatal packaging error all pass through here.
	defer ws.Release()

	// --- Conversion ---
	result := NewRunner(&opts, opts.Logger).Run(ctx, entries, ws)
	result.Summary.InputKind = input.Kind
	result.Summary.ProfileUsed = opts.ProfileName
	result.Summary.ConfigFilePath = opts.ConfigFilePath
	result.Summary.PreserveHierarchy = opts.PreserveHierarchy

	defer func() {
		if hookErr := opts.EventHooks.OnRunComplete(result); hookErr != nil {
			logger.Warn("Event hook OnRunComplete returned an error", slog.String("error", hookErr.Error()))
		}
	}()

	// --- Packaging ---
	archive, err := NewPackager(opts.Logger).Package(result, opts.PreserveHierarchy)
	if err != nil {
		logger.Error("Packaging failed", slog.String("error", err.Error()))
		return nil, result, err
	}

	logger.Info("Batch conversion finished",
		slog.Int("total", result.Summary.TotalItems),
		slog.Int("succeeded", result.Summary.Succeeded()),
		slog.Int("failed", result.Summary.FailedCount),
		slog.Bool("cancelled", result.Summary.Cancelled),
	)
	return archive, result, nil
}

// --- END OF FINAL REVISED FILE pkg/batch/batch.go ---

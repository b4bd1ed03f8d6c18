// --- START OF FINAL REVISED FILE pkg/batch/runner.go ---
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"time"
)

// engineMu is the process-wide mutual exclusion around the external engine.
// The engine is a single, stateful, non-reentrant instance: at most one
// conversion call may be in flight at any time, even when the surrounding
// system overlaps multiple Runner.Run invocations. The lock is held for the
// duration of one conversion call only, never across a whole batch, so a
// failure on item N does not block another run beyond evaluating item N.
var engineMu sync.Mutex

// Classify maps a relative path to its document kind by extension,
// case-insensitively.
func Classify(relPath string) DocKind {
	ext := strings.ToLower(path.Ext(relPath))
	switch {
	case ext == PdfExtension:
		return KindPdf
	default:
		if _, ok := wordExtensions[ext]; ok {
			return KindWord
		}
		if _, ok := powerpointExtensions[ext]; ok {
			return KindPowerpoint
		}
		return KindUnsupported
	}
}

// Runner is the batch orchestrator: it walks the collected entries in order,
// dispatches supported documents to the engine under the serialized-access
// discipline, and records one Outcome per entry. Item-scoped failures never
// interrupt the loop.
type Runner struct {
	opts   *Options
	engine Engine
	hooks  Hooks
	logger *slog.Logger
}

// NewRunner creates a Runner for the given (already validated) options.
func NewRunner(opts *Options, loggerHandler slog.Handler) *Runner { // minimal comment
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	hooks := opts.EventHooks
	if hooks == nil {
		hooks = &NoOpHooks{}
	}
	return &Runner{
		opts:   opts,
		engine: opts.Engine,
		hooks:  hooks,
		logger: slog.New(loggerHandler).With(slog.String("component", "runner")),
	}
}

// Run processes every entry in collection order and returns the aggregate
// Result. Cancellation is cooperative and checked between items only — the
// engine call itself is opaque — so a cancelled run returns the outcomes
// accumulated so far with Summary.Cancelled set. The invariant
// len(Result.Outcomes) == number of entries holds except when cancelled early.
func (r *Runner) Run(ctx context.Context, entries []SourceEntry, ws *Workspace) Result {
	startTime := time.Now()
	r.logger.Info("Starting batch run", slog.Int("items", len(entries)), slog.String("workspace", ws.Dir()))

	result := Result{
		Outcomes: make([]Outcome, 0, len(entries)),
		Failures: make([]Failure, 0, 8),
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			r.logger.Info("Batch run cancelled", slog.String("reason", ctx.Err().Error()),
				slog.Int("completed", len(result.Outcomes)), slog.Int("total", len(entries)))
			result.Summary.Cancelled = true
		default:
		}
		if result.Summary.Cancelled {
			break
		}

		itemStart := time.Now()
		if hookErr := r.hooks.OnItemStatusUpdate(entry.Item.RelPath, StatusProcessing, "", 0); hookErr != nil {
			r.logger.Warn("Event hook OnItemStatusUpdate (processing) failed", slog.String("path", entry.Item.RelPath), slog.String("error", hookErr.Error()))
		}

		outcome := r.processEntry(ctx, entry, ws)
		outcome.DurationMs = time.Since(itemStart).Milliseconds()
		result.Outcomes = append(result.Outcomes, outcome)

		message := ""
		if outcome.Failed() {
			message = outcome.FailureMessage
			result.Failures = append(result.Failures, Failure{
				Path:    outcome.Path,
				Kind:    outcome.FailureKind,
				Message: outcome.FailureMessage,
			})
		}
		if hookErr := r.hooks.OnItemStatusUpdate(outcome.Path, outcome.Status, message, time.Since(itemStart)); hookErr != nil {
			r.logger.Warn("Event hook OnItemStatusUpdate (final) failed", slog.String("path", outcome.Path), slog.String("error", hookErr.Error()))
		}
	}

	result.Summary.TotalItems = len(result.Outcomes)
	for _, o := range result.Outcomes {
		switch o.Status {
		case StatusConverted:
			result.Summary.ConvertedCount++
		case StatusCopied:
			result.Summary.CopiedCount++
		case StatusFailed:
			result.Summary.FailedCount++
		}
	}
	result.Summary.DurationSeconds = time.Since(startTime).Seconds()
	result.Summary.Timestamp = time.Now().UTC()
	result.Summary.SchemaVersion = SummarySchemaVersion

	r.logger.Info("Batch run finished",
		slog.Int("converted", result.Summary.ConvertedCount),
		slog.Int("copied", result.Summary.CopiedCount),
		slog.Int("failed", result.Summary.FailedCount),
		slog.Bool("cancelled", result.Summary.Cancelled),
		slog.Duration("duration", time.Since(startTime)),
	)
	return result
}

// processEntry evaluates a single entry and produces its Outcome. All
// item-scoped errors are folded into the Outcome; nothing escapes.
func (r *Runner) processEntry(ctx context.Context, entry SourceEntry, ws *Workspace) Outcome {
	relPath := entry.Item.RelPath
	logArgs := []any{slog.String("path", relPath)}

	// Entries that already failed during collection keep their slot in the
	// ordered outcome sequence.
	if entry.Failed() {
		r.logger.Warn("Recording collection-stage failure", append(logArgs, slog.String("error", entry.Err.Error()))...)
		return failedOutcome(relPath, KindUnsupported, entry.Failure, entry.Err)
	}

	kind := Classify(relPath)
	switch kind {
	case KindUnsupported:
		r.logger.Debug("Unsupported format", logArgs...)
		return failedOutcome(relPath, kind, FailureUnsupportedFormat,
			fmt.Errorf("%w: %q", ErrUnsupportedFormat, path.Ext(relPath)))

	case KindPdf:
		if r.opts.ValidatePassthrough {
			if err := ValidatePDF(entry.Item.Content); err != nil {
				r.logger.Warn("Passthrough PDF failed validation", append(logArgs, slog.String("error", err.Error()))...)
				return failedOutcome(relPath, kind, FailureInvalidPdf, err)
			}
		}
		r.logger.Debug("Copying PDF through unchanged", logArgs...)
		return Outcome{
			Path:       relPath,
			OutputPath: relPath, // passthrough keeps its original name
			Kind:       kind,
			Status:     StatusCopied,
			Bytes:      entry.Item.Content,
			SizeBytes:  int64(len(entry.Item.Content)),
		}

	default: // KindWord, KindPowerpoint
		pdfBytes, err := r.convertViaEngine(ctx, entry.Item, kind, ws)
		if err != nil {
			// A single bad document never aborts the batch; the loop continues.
			r.logger.Warn("Conversion failed", append(logArgs, slog.String("kind", string(kind)), slog.String("error", err.Error()))...)
			return failedOutcome(relPath, kind, failureKindFor(err), err)
		}
		r.logger.Debug("Converted document", append(logArgs, slog.Int("pdfBytes", len(pdfBytes)))...)
		return Outcome{
			Path:       relPath,
			OutputPath: SwapExtension(relPath),
			Kind:       kind,
			Status:     StatusConverted,
			Bytes:      pdfBytes,
			SizeBytes:  int64(len(pdfBytes)),
		}
	}
}

// convertViaEngine stages the item's bytes into the workspace, performs one
// serialized engine call, reads back the produced PDF, and removes the staged
// files. The engine lock is held only for the Convert call itself.
func (r *Runner) convertViaEngine(ctx context.Context, item SourceItem, kind DocKind, ws *Workspace) ([]byte, error) {
	srcPath := ws.StagePath(strings.ToLower(path.Ext(item.RelPath)))
	dstPath := strings.TrimSuffix(srcPath, path.Ext(srcPath)) + PdfExtension

	if err := os.WriteFile(srcPath, item.Content, 0o600); err != nil {
		return nil, fmt.Errorf("%w: writing staged input: %v", ErrStageFailed, err)
	}
	defer func() {
		_ = os.Remove(srcPath)
		_ = os.Remove(dstPath)
	}()

	callCtx := ctx
	if r.opts.EngineTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.opts.EngineTimeout)
		defer cancel()
	}

	engineMu.Lock()
	err := r.engine.Convert(callCtx, kind, srcPath, dstPath)
	engineMu.Unlock()
	if err != nil {
		if callCtx.Err() != nil && !errors.Is(err, ErrEngineTimeout) {
			return nil, fmt.Errorf("%w: %v", ErrEngineTimeout, err)
		}
		if !errors.Is(err, ErrEngineFailure) {
			return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
		}
		return nil, err
	}

	pdfBytes, readErr := os.ReadFile(dstPath)
	if readErr != nil {
		return nil, fmt.Errorf("%w: engine reported success but produced no output: %v", ErrEngineFailure, readErr)
	}
	if r.opts.VerifyEngineOutput {
		if vErr := ValidatePDF(pdfBytes); vErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrEngineFailure, vErr)
		}
	}
	return pdfBytes, nil
}

// failedOutcome builds a Failed outcome. Failed items contribute no output
// bytes and no output-tree entry, but keep their slot in the ordered sequence.
func failedOutcome(relPath string, kind DocKind, failure FailureKind, err error) Outcome { // minimal comment
	return Outcome{
		Path:           relPath,
		Kind:           kind,
		Status:         StatusFailed,
		FailureKind:    failure,
		FailureMessage: err.Error(),
	}
}

// failureKindFor maps an engine-path error to its FailureKind category.
func failureKindFor(err error) FailureKind { // minimal comment
	if errors.Is(err, ErrStageFailed) {
		return FailureStaging
	}
	// Everything else on the engine path, wrapped or not, is an engine failure.
	return FailureEngine
}

// --- END OF FINAL REVISED FILE pkg/batch/runner.go ---

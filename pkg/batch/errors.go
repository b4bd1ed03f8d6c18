// --- START OF FINAL REVISED FILE pkg/batch/errors.go ---
package batch

import (
	"errors"
	"fmt"
)

// --- Exported Error Variables ---
// These errors represent specific categories of issues that might be returned
// directly by ConvertBatch or recorded inside per-item Outcomes. Library users
// can check against these using errors.Is.

var (
	// ErrUnsafePath indicates a relative path extracted from untrusted input
	// (typically an archive entry) is absolute, contains parent-directory
	// segments, or would otherwise resolve outside the sandbox root.
	// Item-scoped: recorded in the item's Outcome, never fatal to the batch.
	ErrUnsafePath = errors.New("unsafe relative path")

	// ErrCollection indicates the whole input is unreadable or invalid. This is
	// fatal to the request: no Outcomes are produced. Individual bad entries
	// inside an otherwise valid input degrade to per-item failures instead.
	ErrCollection = errors.New("input collection failed")

	// ErrInvalidArchive indicates the supplied bytes are not a readable archive.
	// errors.Is(err, ErrCollection) is also true.
	ErrInvalidArchive = fmt.Errorf("%w: not a valid zip archive", ErrCollection)

	// ErrEmptyInput indicates the input contained no file entries at all.
	// errors.Is(err, ErrCollection) is also true.
	ErrEmptyInput = fmt.Errorf("%w: input contains no files", ErrCollection)

	// ErrUnsupportedFormat indicates an item's extension is none of the
	// supported document kinds. Item-scoped, non-fatal; no engine call is made.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEngineFailure is the general category for a failed conversion call.
	// Item-scoped, non-fatal: the loop continues with the next item.
	// Use errors.Is to check for this category, or check the more specific
	// ErrEngineUnavailable / ErrDocumentCorrupt / ErrEngineTimeout.
	ErrEngineFailure = errors.New("engine conversion failed")

	// ErrEngineUnavailable indicates the external engine could not be reached
	// or started at all. errors.Is(err, ErrEngineFailure) is also true.
	ErrEngineUnavailable = fmt.Errorf("%w: engine unavailable", ErrEngineFailure)

	// ErrDocumentCorrupt indicates the engine rejected the staged document.
	// errors.Is(err, ErrEngineFailure) is also true.
	ErrDocumentCorrupt = fmt.Errorf("%w: document corrupt or unreadable", ErrEngineFailure)

	// ErrEngineTimeout indicates the conversion call exceeded the configured
	// per-document timeout. errors.Is(err, ErrEngineFailure) is also true.
	ErrEngineTimeout = fmt.Errorf("%w: engine call timed out", ErrEngineFailure)

	// ErrStageFailed indicates the item's bytes could not be written into, or
	// the produced PDF read back from, the staging workspace. Item-scoped.
	ErrStageFailed = errors.New("workspace staging failed")

	// ErrPackaging indicates the final output archive could not be produced.
	// Fatal to the request; the per-item Outcomes are still returned.
	ErrPackaging = errors.New("failed to package results")

	// ErrEmptyResult indicates there were no successful outcomes to package.
	// errors.Is(err, ErrPackaging) is also true.
	ErrEmptyResult = fmt.Errorf("%w: no successful outcomes to package", ErrPackaging)

	// ErrWorkspace indicates the staging workspace could not be created.
	// Fatal to the request.
	ErrWorkspace = errors.New("failed to acquire workspace")

	// ErrConfigValidation indicates that the provided Options struct failed
	// validation checks performed at the beginning of ConvertBatch.
	// This is returned directly as a fatal error.
	ErrConfigValidation = errors.New("invalid configuration options provided")
)

// --- END OF FINAL REVISED FILE pkg/batch/errors.go ---

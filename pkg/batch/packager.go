// --- START OF FINAL REVISED FILE pkg/batch/packager.go ---
package batch

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
)

// Packager serializes the successful outcomes of a batch run into a single
// downloadable zip archive.
type Packager struct {
	logger *slog.Logger
}

// NewPackager creates a Packager logging through the given handler.
func NewPackager(loggerHandler slog.Handler) *Packager { // minimal comment
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	return &Packager{logger: slog.New(loggerHandler).With(slog.String("component", "packager"))}
}

// Package writes every successful outcome into a zip archive and returns its
// bytes. With preserveHierarchy, each entry sits at its (possibly
// multi-segment) output path, reproducing the input tree with extensions
// swapped to .pdf where converted. Without it, entries are flattened to base
// names; colliding names get a deterministic numeric suffix before the
// extension, based on encounter order. Failed outcomes contribute no entry.
//
// Fails with ErrEmptyResult when there is nothing to package, and ErrPackaging
// when the underlying archive writer fails — the one case where the whole
// operation is fatal rather than partial.
func (p *Packager) Package(result Result, preserveHierarchy bool) ([]byte, error) {
	successes := 0
	for _, o := range result.Outcomes {
		if !o.Failed() {
			successes++
		}
	}
	if successes == 0 {
		p.logger.Error("No successful outcomes to package", slog.Int("total", len(result.Outcomes)))
		return nil, ErrEmptyResult
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	taken := make(map[string]int, successes)

	for _, o := range result.Outcomes {
		if o.Failed() {
			continue
		}
		name := o.OutputPath
		if !preserveHierarchy {
			name = path.Base(name)
		}
		name = deduplicateName(name, taken)

		w, err := zw.Create(name)
		if err != nil {
			_ = zw.Close()
			p.logger.Error("Failed to create archive entry", slog.String("entry", name), slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: creating entry %q: %v", ErrPackaging, name, err)
		}
		if _, err := w.Write(o.Bytes); err != nil {
			_ = zw.Close()
			p.logger.Error("Failed to write archive entry", slog.String("entry", name), slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: writing entry %q: %v", ErrPackaging, name, err)
		}
	}

	if err := zw.Close(); err != nil {
		p.logger.Error("Failed to finalize archive", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: finalizing archive: %v", ErrPackaging, err)
	}
	p.logger.Debug("Packaged results", slog.Int("entries", successes), slog.Int("archiveBytes", buf.Len()), slog.Bool("preserveHierarchy", preserveHierarchy))
	return buf.Bytes(), nil
}

// deduplicateName reserves name in taken, inserting "-N" before the extension
// on collision. The counter advances per base name, so the second "a.pdf"
// becomes "a-1.pdf", the third "a-2.pdf", regardless of what else is taken.
func deduplicateName(name string, taken map[string]int) string {
	if _, exists := taken[name]; !exists {
		taken[name] = 0
		return name
	}
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for {
		taken[name]++
		candidate := fmt.Sprintf("%s-%d%s", stem, taken[name], ext)
		if _, exists := taken[candidate]; !exists {
			taken[candidate] = 0
			return candidate
		}
	}
}

// --- END OF FINAL REVISED FILE pkg/batch/packager.go ---

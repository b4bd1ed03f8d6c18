// --- START OF FINAL REVISED FILE pkg/batch/collector.go ---
package batch

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Collector turns an InputSpec into the ordered sequence of SourceEntry the
// batch runner consumes. Ordering follows the order in which the archive or
// caller presented the files; this becomes the deterministic processing and
// reporting order.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a Collector logging through the given handler.
func NewCollector(loggerHandler slog.Handler) *Collector { // minimal comment
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(io.Discard, nil)
	}
	return &Collector{logger: slog.New(loggerHandler).With(slog.String("component", "collector"))}
}

// Collect produces the ordered entry sequence for the given input.
//
// Only conditions that invalidate the whole input are returned as errors
// (ErrInvalidArchive, ErrEmptyInput — both matching ErrCollection). An unsafe
// or unreadable individual entry degrades to a pre-failed SourceEntry that the
// runner records as a Failed outcome, so one bad entry never sinks the batch.
func (c *Collector) Collect(input InputSpec) ([]SourceEntry, error) {
	switch input.Kind {
	case InputLooseFiles:
		return c.collectNamed(input.Files, true)
	case InputFileSet:
		return c.collectNamed(input.Files, false)
	case InputArchive:
		return c.collectArchive(input.ArchiveBytes)
	default:
		return nil, fmt.Errorf("%w: unknown input kind %q", ErrCollection, input.Kind)
	}
}

// collectNamed handles the LooseFiles and FileSet variants. flatten selects
// base-name flattening (loose uploads) versus declared-path preservation.
func (c *Collector) collectNamed(files []NamedFile, flatten bool) ([]SourceEntry, error) { // minimal comment
	if len(files) == 0 {
		return nil, ErrEmptyInput
	}
	entries := make([]SourceEntry, 0, len(files))
	for _, f := range files {
		var (
			rel string
			err error
		)
		if flatten {
			rel, err = BaseName(f.Name)
		} else {
			rel, err = NormalizePath(f.Name)
		}
		if err != nil {
			c.logger.Warn("Rejecting unsafe file name", slog.String("name", f.Name), slog.String("error", err.Error()))
			entries = append(entries, SourceEntry{
				Item:    SourceItem{RelPath: f.Name},
				Err:     err,
				Failure: FailureUnsafePath,
			})
			continue
		}
		entries = append(entries, SourceEntry{Item: SourceItem{RelPath: rel, Content: f.Content}})
	}
	c.logger.Debug("Collected named files", slog.Int("count", len(entries)), slog.Bool("flatten", flatten))
	return entries, nil
}

// collectArchive enumerates a zip archive's file entries in stored order.
func (c *Collector) collectArchive(data []byte) ([]SourceEntry, error) { // minimal comment
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		c.logger.Error("Input is not a readable zip archive", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	entries := make([]SourceEntry, 0, len(zr.File))
	for _, zf := range zr.File {
		// Directory markers carry no content; the hierarchy is reconstructed
		// from the file entries' own paths.
		if zf.FileInfo().IsDir() || strings.HasSuffix(zf.Name, "/") {
			c.logger.Debug("Skipping directory marker entry", slog.String("entry", zf.Name))
			continue
		}
		rel, normErr := NormalizePath(zf.Name)
		if normErr != nil {
			c.logger.Warn("Rejecting unsafe archive entry", slog.String("entry", zf.Name), slog.String("error", normErr.Error()))
			entries = append(entries, SourceEntry{
				Item:    SourceItem{RelPath: zf.Name},
				Err:     normErr,
				Failure: FailureUnsafePath,
			})
			continue
		}
		content, readErr := readArchiveEntry(zf)
		if readErr != nil {
			c.logger.Warn("Failed to read archive entry", slog.String("entry", rel), slog.String("error", readErr.Error()))
			entries = append(entries, SourceEntry{
				Item:    SourceItem{RelPath: rel},
				Err:     fmt.Errorf("reading archive entry %q: %w", rel, readErr),
				Failure: FailureEntryUnreadable,
			})
			continue
		}
		entries = append(entries, SourceEntry{Item: SourceItem{RelPath: rel, Content: content}})
	}

	if len(entries) == 0 {
		c.logger.Error("Archive contains no file entries")
		return nil, ErrEmptyInput
	}
	c.logger.Debug("Collected archive entries", slog.Int("count", len(entries)))
	return entries, nil
}

// readArchiveEntry opens and fully reads one zip entry.
func readArchiveEntry(zf *zip.File) ([]byte, error) { // minimal comment
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return data, nil
}

// --- END OF FINAL REVISED FILE pkg/batch/collector.go ---

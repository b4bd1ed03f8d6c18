// --- START OF FINAL REVISED FILE pkg/batch/report.go ---
package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Result summarizes a single batch run: one Outcome per collected entry, in
// collection order, plus the aggregated Summary. Outcomes are never mutated
// after the runner records them.
type Result struct {
	Summary  Summary   `json:"summary" yaml:"summary"`
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
	Failures []Failure `json:"failures" yaml:"failures"`
}

// Summary contains aggregated statistics for a batch run.
type Summary struct {
	InputKind         InputKind `json:"inputKind" yaml:"inputKind"`
	ProfileUsed       string    `json:"profileUsed,omitempty" yaml:"profileUsed,omitempty"`
	ConfigFilePath    string    `json:"configFilePath,omitempty" yaml:"configFilePath,omitempty"`
	TotalItems        int       `json:"totalItems" yaml:"totalItems"`
	ConvertedCount    int       `json:"convertedCount" yaml:"convertedCount"`
	CopiedCount       int       `json:"copiedCount" yaml:"copiedCount"`
	FailedCount       int       `json:"failedCount" yaml:"failedCount"`
	Cancelled         bool      `json:"cancelled" yaml:"cancelled"`
	PreserveHierarchy bool      `json:"preserveHierarchy" yaml:"preserveHierarchy"`
	DurationSeconds   float64   `json:"durationSeconds" yaml:"durationSeconds"`
	Timestamp         time.Time `json:"timestamp" yaml:"timestamp"`
	SchemaVersion     string    `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
}

// Succeeded returns converted + copied.
func (s Summary) Succeeded() int { return s.ConvertedCount + s.CopiedCount }

// Outcome records the per-item result of the batch. Invariants: Bytes is
// present iff the status is converted or copied; FailureKind/FailureMessage
// are present iff the status is failed.
type Outcome struct {
	Path           string      `json:"path" yaml:"path"`
	OutputPath     string      `json:"outputPath,omitempty" yaml:"outputPath,omitempty"`
	Kind           DocKind     `json:"kind" yaml:"kind"`
	Status         Status      `json:"status" yaml:"status"`
	Bytes          []byte      `json:"-" yaml:"-"`
	SizeBytes      int64       `json:"sizeBytes,omitempty" yaml:"sizeBytes,omitempty"`
	DurationMs     int64       `json:"durationMs" yaml:"durationMs"`
	FailureKind    FailureKind `json:"failureKind,omitempty" yaml:"failureKind,omitempty"`
	FailureMessage string      `json:"failureMessage,omitempty" yaml:"failureMessage,omitempty"`
}

// Failed reports whether this outcome represents an item-scoped failure.
func (o Outcome) Failed() bool { return o.Status == StatusFailed }

// Failure is the per-file diagnostic entry in the Summary's failure listing.
// The engine's failure modes are opaque, so this listing is the primary
// artifact a caller has for telling "this file failed and why" apart from
// "the whole request failed".
type Failure struct {
	Path    string      `json:"path" yaml:"path"`
	Kind    FailureKind `json:"kind" yaml:"kind"`
	Message string      `json:"message" yaml:"message"`
}

// RenderText writes the human-readable summary to w, listing each failed item
// with its original relative path and failure kind.
func (r Result) RenderText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Items: %d  Converted: %d  Copied: %d  Failed: %d  (%.2fs)\n",
		r.Summary.TotalItems, r.Summary.ConvertedCount, r.Summary.CopiedCount,
		r.Summary.FailedCount, r.Summary.DurationSeconds); err != nil {
		return err
	}
	if r.Summary.Cancelled {
		if _, err := fmt.Fprintln(w, "Run cancelled before all items were processed."); err != nil {
			return err
		}
	}
	for _, f := range r.Failures {
		if _, err := fmt.Fprintf(w, "  FAILED %s (%s): %s\n", f.Path, f.Kind, f.Message); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the full result as indented JSON.
func (r Result) RenderJSON(w io.Writer) error { // minimal comment
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderYAML writes the full result as YAML.
func (r Result) RenderYAML(w io.Writer) error { // minimal comment
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// --- END OF FINAL REVISED FILE pkg/batch/report.go ---

// --- START OF FINAL REVISED FILE pkg/batch/types.go ---
package batch

// Status defines the possible processing states of a batch item.
type Status string

// Constants representing the defined item processing statuses.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusConverted  Status = "converted"
	StatusCopied     Status = "copied"
	StatusFailed     Status = "failed"
)

// DocKind classifies an input document by its file extension.
type DocKind string

// Constants representing the recognized document kinds.
const (
	KindWord        DocKind = "word"
	KindPowerpoint  DocKind = "powerpoint"
	KindPdf         DocKind = "pdf"
	KindUnsupported DocKind = "unsupported"
)

// FailureKind categorizes why an individual item failed without aborting the batch.
type FailureKind string

const (
	FailureUnsafePath        FailureKind = "unsafe_path"
	FailureEntryUnreadable   FailureKind = "entry_unreadable"
	FailureUnsupportedFormat FailureKind = "unsupported_format"
	FailureEngine            FailureKind = "engine_failure"
	FailureStaging           FailureKind = "staging_failure"
	FailureInvalidPdf        FailureKind = "invalid_pdf"
)

// InputKind tags the variant carried by an InputSpec.
type InputKind string

const (
	InputLooseFiles InputKind = "looseFiles"
	InputArchive    InputKind = "archive"
	InputFileSet    InputKind = "fileSet"
)

// OutputFormat defines the format for the final summary report printed to standard output when TUI is disabled.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// --- END OF FINAL REVISED FILE pkg/batch/types.go ---

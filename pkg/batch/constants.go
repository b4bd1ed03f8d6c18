// --- START OF FINAL REVISED FILE pkg/batch/constants.go ---
package batch

import "time"

// Constants defining default values for various configuration options.
// These are used when setting up Viper defaults in the configuration loading process.
const (
	// DefaultPreserveHierarchy keeps the original folder structure in the output archive.
	DefaultPreserveHierarchy = true
	// DefaultTuiEnabled is the default state for the Terminal UI.
	DefaultTuiEnabled = true
	// DefaultVerbose is the default state for verbose logging.
	DefaultVerbose = false
	// DefaultOutputFormat is the default format for the final summary report.
	DefaultOutputFormat = OutputFormatText
	// DefaultEngineTimeoutString is the default per-document engine timeout as a duration string.
	DefaultEngineTimeoutString = "2m"
	// DefaultEngineTimeout is the parsed default per-document engine timeout.
	// A document the engine never finishes would otherwise stall the whole batch.
	DefaultEngineTimeout = 2 * time.Minute
	// DefaultValidatePassthrough controls whether existing PDFs are sanity-checked before copying.
	DefaultValidatePassthrough = false
	// DefaultVerifyEngineOutput controls whether engine-produced files are parsed as PDFs before acceptance.
	DefaultVerifyEngineOutput = true
	// DefaultArchiveName is the file name used for the output archive when none is given.
	// Matches the download name users of the original web form received.
	DefaultArchiveName = "converted_files.zip"
)

// DefaultEngineCommand is the default external converter invocation (LibreOffice headless).
var DefaultEngineCommand = []string{"soffice"}

// Extension sets used for case-insensitive classification. See Classify in runner.go.
var (
	wordExtensions       = map[string]struct{}{".doc": {}, ".docx": {}}
	powerpointExtensions = map[string]struct{}{".ppt": {}, ".pptx": {}}
)

// PdfExtension is the extension given to converted outputs and recognized for passthrough.
const PdfExtension = ".pdf"

// Constants related to report schema.
const (
	// SummarySchemaVersion indicates the version of the JSON/YAML summary structure.
	SummarySchemaVersion = "1.0"
)

// workspacePrefix names staging directories so stray ones are recognizable in the temp dir.
const workspacePrefix = "doc2pdf-"

// --- END OF FINAL REVISED FILE pkg/batch/constants.go ---

// --- START OF FINAL REVISED FILE internal/cli/cli_test.go ---
package cli

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/manasrathbsw/office-doc2pdf/internal/testutil"
	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// discardLogger returns a logger that swallows all output. // minimal comment
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newConvertingEngine returns a MockEngine whose Convert writes a fixed
// PDF-looking payload to dstPath and succeeds.
func newConvertingEngine(t *testing.T) *testutil.MockEngine {
	t.Helper()
	eng := new(testutil.MockEngine)
	eng.On("Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			dstPath := args.String(3)
			require.NoError(t, os.WriteFile(dstPath, []byte("%PDF-1.7 stub conversion"), 0o600))
		}).
		Return(nil)
	return eng
}

// writeFile creates a file with content under dir, creating parents as needed.
func writeFile(t *testing.T, dir, rel string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	testutil.CreateDummyFile(t, path, string(content))
	return path
}

// namesOf extracts the declared names from an InputSpec's file list.
func namesOf(spec batch.InputSpec) []string { // minimal comment
	names := make([]string, len(spec.Files))
	for i, f := range spec.Files {
		names[i] = f.Name
	}
	return names
}

func TestBuildInputSpec_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.docx", []byte("doc a"))
	writeFile(t, dir, "sub/b.pptx", []byte("deck b"))
	writeFile(t, dir, "README.md", []byte("skip me"))
	writeFile(t, dir, "run.log", []byte("skip me too"))
	writeFile(t, dir, ".hidden.docx", []byte("hidden file"))
	writeFile(t, dir, ".git/config.docx", []byte("hidden dir"))

	spec, err := buildInputSpec([]string{dir}, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, batch.InputFileSet, spec.Kind)
	assert.ElementsMatch(t, []string{"a.docx", "sub/b.pptx"}, namesOf(spec))
	for _, f := range spec.Files {
		if f.Name == "a.docx" {
			assert.Equal(t, []byte("doc a"), f.Content)
		}
	}
}

func TestBuildInputSpec_ZipFile(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("inner.docx")
	require.NoError(t, err)
	_, err = w.Write([]byte("zipped doc"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	zipPath := writeFile(t, dir, "bundle.zip", buf.Bytes())

	spec, err := buildInputSpec([]string{zipPath}, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, batch.InputArchive, spec.Kind)
	assert.Equal(t, buf.Bytes(), spec.ArchiveBytes)
	assert.Empty(t, spec.Files)
}

func TestBuildInputSpec_LooseFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "report.docx", []byte("doc content"))
	pathB := writeFile(t, dir, "nested/deck.pptx", []byte("deck content"))

	spec, err := buildInputSpec([]string{pathA, pathB}, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, batch.InputLooseFiles, spec.Kind)
	// Loose files are flattened to their base names.
	assert.Equal(t, []string{"report.docx", "deck.pptx"}, namesOf(spec))
}

func TestBuildInputSpec_SingleRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "solo.docx", []byte("solo"))

	spec, err := buildInputSpec([]string{path}, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, batch.InputLooseFiles, spec.Kind)
	require.Len(t, spec.Files, 1)
	assert.Equal(t, "solo.docx", spec.Files[0].Name)
}

func TestBuildInputSpec_MissingInput(t *testing.T) {
	_, err := buildInputSpec([]string{"/nonexistent/input.docx"}, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrCollection)
}

// stubStderrTerminal forces the interactivity probe for the duration of a test.
func stubStderrTerminal(t *testing.T, isTTY bool) {
	t.Helper()
	orig := stderrIsTerminal
	stderrIsTerminal = func() bool { return isTTY }
	t.Cleanup(func() { stderrIsTerminal = orig })
}

// TestSelectUIMode verifies the presentation layer follows stderr's terminal
// state, so redirecting stdout (e.g. `... > report.json`) does not demote an
// interactive run to plain logs.
func TestSelectUIMode(t *testing.T) {
	tests := []struct {
		name       string
		stderrTTY  bool
		tuiEnabled bool
		verbose    bool
		want       uiMode
	}{
		{"InteractiveWithTUI", true, true, false, uiModeTUI},
		{"InteractiveNoTUI", true, false, false, uiModeProgressBar},
		{"InteractiveVerbose", true, true, true, uiModePlain},
		{"PipedStderr", false, true, false, uiModePlain},
		{"PipedStderrNoTUI", false, false, false, uiModePlain},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stubStderrTerminal(t, tc.stderrTTY)
			got := selectUIMode(batch.Options{TuiEnabled: tc.tuiEnabled, Verbose: tc.verbose})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRun_EndToEnd(t *testing.T) {
	stubStderrTerminal(t, false)
	dir := t.TempDir()
	writeFile(t, dir, "in/report.docx", []byte("word bytes"))
	writeFile(t, dir, "in/notes.pdf", []byte("%PDF-1.4 existing pdf"))
	outputPath := filepath.Join(dir, "out", "converted.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(outputPath), 0o755))

	eng := newConvertingEngine(t)
	opts := batch.Options{
		InputPaths:         []string{filepath.Join(dir, "in")},
		OutputPath:         outputPath,
		AppVersion:         "test",
		TuiEnabled:         false,
		PreserveHierarchy:  true,
		OutputFormat:       batch.OutputFormatText,
		EngineCommand:      batch.DefaultEngineCommand,
		VerifyEngineOutput: false,
		Logger:             slog.NewTextHandler(io.Discard, nil),
		Engine:             eng,
	}

	err := Run(context.Background(), opts, discardLogger())
	require.NoError(t, err)
	eng.AssertNumberOfCalls(t, "Convert", 1) // Only the Word document should hit the engine

	// The output archive must exist and contain both results.
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"report.pdf", "notes.pdf"}, names)
}

func TestRun_InputReadFailure(t *testing.T) {
	stubStderrTerminal(t, false)
	dir := t.TempDir()
	eng := new(testutil.MockEngine)
	opts := batch.Options{
		InputPaths:    []string{filepath.Join(dir, "missing.docx")},
		OutputPath:    filepath.Join(dir, "out.zip"),
		OutputFormat:  batch.OutputFormatText,
		EngineCommand: batch.DefaultEngineCommand,
		Logger:        slog.NewTextHandler(io.Discard, nil),
		Engine:        eng,
	}

	err := Run(context.Background(), opts, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrCollection)
	eng.AssertNotCalled(t, "Convert")
}

// --- END OF FINAL REVISED FILE internal/cli/cli_test.go ---

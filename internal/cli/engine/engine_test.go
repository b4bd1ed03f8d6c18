// --- START OF FINAL REVISED FILE internal/cli/engine/engine_test.go ---
package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/manasrathbsw/office-doc2pdf/pkg/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createStubEngineScript writes an executable shell script standing in for the
// soffice binary and returns its path.
func createStubEngineScript(t *testing.T, content string) string { // minimal comment
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping shell-script engine stub test on Windows")
	}
	scriptPath := filepath.Join(t.TempDir(), "fake-soffice.sh")
	script := "#!/bin/sh\n" + content
	require.NoError(t, os.WriteFile(scriptPath, []byte(script), 0o755))
	return scriptPath
}

// okStubScript mimics soffice success: it finds the --outdir value and the
// input path, then writes <outdir>/<stem>.pdf.
const okStubScript = `
outdir=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "--outdir" ]; then outdir="$arg"; fi
  prev="$arg"
  src="$arg"
done
stem=$(basename "$src")
stem="${stem%.*}"
printf '%%PDF-1.7 stub output' > "$outdir/$stem.pdf"
exit 0
`

func stagePaths(t *testing.T) (src, dst string) {
	t.Helper()
	dir := t.TempDir()
	src = filepath.Join(dir, "doc-input.docx")
	dst = filepath.Join(dir, "doc-input.pdf")
	require.NoError(t, os.WriteFile(src, []byte("fake word document"), 0o600))
	return src, dst
}

// TestConvert_Success verifies the stub engine's output lands at dstPath.
func TestConvert_Success(t *testing.T) {
	script := createStubEngineScript(t, okStubScript)
	eng := New([]string{script}, nil)
	src, dst := stagePaths(t)

	err := eng.Convert(context.Background(), batch.KindWord, src, dst)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "%PDF-")
}

// TestConvert_NonZeroExit verifies a failing engine maps to ErrEngineFailure
// carrying the process's stderr.
func TestConvert_NonZeroExit(t *testing.T) {
	script := createStubEngineScript(t, `echo "source file could not be loaded" >&2; exit 1`)
	eng := New([]string{script}, nil)
	src, dst := stagePaths(t)

	err := eng.Convert(context.Background(), batch.KindWord, src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrEngineFailure))
	assert.Contains(t, err.Error(), "could not be loaded")
}

// TestConvert_CleanExitWithoutOutput verifies the silent-failure mode (exit 0,
// no file produced) maps to ErrDocumentCorrupt.
func TestConvert_CleanExitWithoutOutput(t *testing.T) {
	script := createStubEngineScript(t, `exit 0`)
	eng := New([]string{script}, nil)
	src, dst := stagePaths(t)

	err := eng.Convert(context.Background(), batch.KindWord, src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrDocumentCorrupt))
	assert.True(t, errors.Is(err, batch.ErrEngineFailure), "corrupt-document errors belong to the engine category")
}

// TestConvert_BinaryNotFound verifies a missing engine binary maps to
// ErrEngineUnavailable.
func TestConvert_BinaryNotFound(t *testing.T) { // Minimal comment
	eng := New([]string{"definitely-not-a-real-soffice-binary"}, nil)
	src, dst := stagePaths(t)

	err := eng.Convert(context.Background(), batch.KindWord, src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrEngineUnavailable))
}

// TestConvert_ContextTimeout verifies a stalled engine process is killed and
// reported as ErrEngineTimeout.
func TestConvert_ContextTimeout(t *testing.T) {
	script := createStubEngineScript(t, `sleep 10`)
	eng := New([]string{script}, nil)
	src, dst := stagePaths(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := eng.Convert(ctx, batch.KindWord, src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrEngineTimeout))
}

// TestConvert_UnknownKind verifies kinds without an export filter are rejected
// before any process is spawned.
func TestConvert_UnknownKind(t *testing.T) { // Minimal comment
	eng := New([]string{"unused"}, nil)
	src, dst := stagePaths(t)

	err := eng.Convert(context.Background(), batch.KindUnsupported, src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, batch.ErrEngineFailure))
}

// TestConvert_CommandArgsPreserved verifies argv[1:] of the configured command
// survives as a prefix of the engine invocation.
func TestConvert_CommandArgsPreserved(t *testing.T) {
	script := createStubEngineScript(t, `
if [ "$1" != "--custom-flag" ]; then
  echo "missing custom flag" >&2
  exit 2
fi
shift
`+okStubScript)
	eng := New([]string{script, "--custom-flag"}, nil)
	src, dst := stagePaths(t)

	err := eng.Convert(context.Background(), batch.KindPowerpoint, src, dst)
	require.NoError(t, err)
}

// TestLimitedWriter verifies excess bytes are dropped without erroring.
func TestLimitedWriter(t *testing.T) {
	var sink testBuffer
	lw := newLimitedWriter(&sink, 5)

	n, err := lw.Write([]byte("abcdefgh"))
	require.NoError(t, err)
	assert.Equal(t, 8, n, "the writer must report full consumption")
	assert.Equal(t, "abcde", sink.String())

	n, err = lw.Write([]byte("xyz"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abcde", sink.String(), "writes past the limit are discarded")
}

type testBuffer struct {
	data []byte
}

func (b *testBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *testBuffer) String() string { return string(b.data) }

// --- END OF FINAL REVISED FILE internal/cli/engine/engine_test.go ---

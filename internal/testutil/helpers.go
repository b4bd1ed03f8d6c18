// --- START OF FINAL REVISED FILE internal/testutil/helpers.go ---
package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDummyFile creates a dummy file with specified content at the given path,
// ensuring parent directories exist. It uses require assertions for test setup.
func CreateDummyFile(t *testing.T, path string, content string) {
	t.Helper()
	fullPath := filepath.Clean(path)
	dir := filepath.Dir(fullPath)
	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err, "Failed to create directory %s for dummy file", dir)
	err = os.WriteFile(fullPath, []byte(content), 0644)
	require.NoError(t, err, "Failed to write dummy file %s", fullPath)
}

// CreateDummyDir ensures a directory exists at the given path, creating parents if needed.
func CreateDummyDir(t *testing.T, path string) {
	t.Helper()
	fullPath := filepath.Clean(path)
	err := os.MkdirAll(fullPath, 0755)
	require.NoError(t, err, "Failed to create dummy directory %s", fullPath)
}

// BuildZipArchive builds an in-memory zip archive with the given entries,
// written in the order names appear. A nil content slice creates an empty
// entry (useful for directory markers ending in "/").
func BuildZipArchive(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err, "Failed to create archive entry %s", name)
		if content := entries[name]; len(content) > 0 {
			_, err = w.Write(content)
			require.NoError(t, err, "Failed to write archive entry %s", name)
		}
	}
	require.NoError(t, zw.Close(), "Failed to finalize archive")
	return buf.Bytes()
}

// ReadZipArchive opens an in-memory zip archive and returns its entry names in
// stored order along with a name-to-content map.
func ReadZipArchive(t *testing.T, data []byte) ([]string, map[string][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err, "Failed to open archive")

	names := make([]string, 0, len(zr.File))
	contents := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err, "Failed to open archive entry %s", f.Name)
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err, "Failed to read archive entry %s", f.Name)
		names = append(names, f.Name)
		contents[f.Name] = b.Bytes()
	}
	return names, contents
}

// --- END OF FINAL REVISED FILE internal/testutil/helpers.go ---

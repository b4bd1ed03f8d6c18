// --- START OF FINAL REVISED FILE pkg/batch/path.go ---
package batch

import (
	"fmt"
	"path"
	"strings"
)

// NormalizePath validates and normalizes a relative path taken from untrusted
// input (archive entry names, browser-declared folder paths). It is a pure
// function: forward slashes, redundant separators collapsed, "." and ".."
// segments resolved. Any path that is rooted, drive-lettered, or resolves
// outside an implicit sandbox root fails with ErrUnsafePath, because archive
// contents must never be able to place files outside the output tree.
func NormalizePath(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	// Archives built on Windows store backslash separators.
	s := strings.ReplaceAll(raw, `\`, "/")
	if strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("%w: absolute path %q", ErrUnsafePath, raw)
	}
	if len(s) >= 2 && s[1] == ':' {
		return "", fmt.Errorf("%w: drive-qualified path %q", ErrUnsafePath, raw)
	}
	cleaned := path.Clean(s)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: path %q escapes the sandbox root", ErrUnsafePath, raw)
	}
	return cleaned, nil
}

// BaseName returns the final path element of a (possibly separator-bearing)
// file name, normalized. Used by the loose-files input mode, which flattens
// every upload to a single directory level.
func BaseName(raw string) (string, error) { // minimal comment
	normalized, err := NormalizePath(raw)
	if err != nil {
		return "", err
	}
	base := path.Base(normalized)
	if base == "." || base == "/" || base == "" {
		return "", fmt.Errorf("%w: no file name in %q", ErrUnsafePath, raw)
	}
	return base, nil
}

// SwapExtension replaces relPath's extension with ".pdf", or appends it when
// the name has no extension. relPath is expected to be normalized.
func SwapExtension(relPath string) string {
	ext := path.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + PdfExtension
}

// --- END OF FINAL REVISED FILE pkg/batch/path.go ---

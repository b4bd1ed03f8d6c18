// --- START OF FINAL REVISED FILE pkg/batch/input.go ---
package batch

// NamedFile pairs a caller-supplied file name (possibly carrying path
// separators) with its raw content.
type NamedFile struct {
	Name    string
	Content []byte
}

// InputSpec is the tagged variant over the three supported input modes.
// Construct via LooseFiles, Archive, or FileSet; the zero value is invalid.
//
// Folder drag-and-drop and ZIP upload in the original form are simply two
// realizations of this variant: a browser-reported relative path becomes a
// FileSet entry, an uploaded archive becomes an Archive spec.
type InputSpec struct {
	Kind         InputKind
	Files        []NamedFile // LooseFiles / FileSet variants
	ArchiveBytes []byte      // Archive variant
}

// LooseFiles builds an InputSpec for individually uploaded files. Names are
// flattened to their base name; no directory structure is inferred.
func LooseFiles(files ...NamedFile) InputSpec {
	return InputSpec{Kind: InputLooseFiles, Files: files}
}

// Archive builds an InputSpec around raw zip archive bytes. Entries are
// enumerated in stored order; their paths are untrusted and sanitized.
func Archive(data []byte) InputSpec {
	return InputSpec{Kind: InputArchive, ArchiveBytes: data}
}

// FileSet builds an InputSpec for files whose path-within-folder is already
// known to the caller (e.g., a browser-reported relative path, or a local
// directory walk). Declared paths are still sanitized.
func FileSet(files ...NamedFile) InputSpec {
	return InputSpec{Kind: InputFileSet, Files: files}
}

// SourceItem is one collected input document: a sanitized relative path plus
// its raw bytes. Immutable; consumed exactly once by the batch runner.
type SourceItem struct {
	RelPath string
	Content []byte
}

// SourceEntry is one slot in the ordered collection sequence. Either Item is
// valid (Err == nil), or the entry pre-failed during collection (unsafe path,
// unreadable archive entry) and carries the failure that the runner will
// record as a Failed outcome — keeping collection order intact either way.
type SourceEntry struct {
	Item    SourceItem
	Err     error
	Failure FailureKind
}

// Failed reports whether this entry pre-failed during collection.
func (e SourceEntry) Failed() bool { return e.Err != nil }

// --- END OF FINAL REVISED FILE pkg/batch/input.go ---

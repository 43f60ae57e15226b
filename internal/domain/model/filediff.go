package model

// FileStatus is the change kind GitHub reports for a file in a pull request.
type FileStatus string

const (
	FileStatusAdded     FileStatus = "added"
	FileStatusModified  FileStatus = "modified"
	FileStatusRemoved   FileStatus = "removed"
	FileStatusRenamed   FileStatus = "renamed"
	FileStatusCopied    FileStatus = "copied"
	FileStatusChanged   FileStatus = "changed"
	FileStatusUnchanged FileStatus = "unchanged"
)

// Valid reports whether s is a status the API is documented to return.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusAdded, FileStatusModified, FileStatusRemoved, FileStatusRenamed,
		FileStatusCopied, FileStatusChanged, FileStatusUnchanged:
		return true
	}
	return false
}

// FileDiff is one changed file. Patch is empty for binary files and for
// renames without content changes.
type FileDiff struct {
	Filename string
	Status   FileStatus
	Patch    string
}

// NewFileDiff validates a file record.
func NewFileDiff(filename, status, patch string) (FileDiff, error) {
	if filename == "" {
		return FileDiff{}, missingField("file", "filename")
	}
	if status == "" {
		return FileDiff{}, missingField("file "+filename, "status")
	}
	fs := FileStatus(status)
	if !fs.Valid() {
		return FileDiff{}, &SchemaError{Record: "file " + filename, Field: "status", Reason: "has unknown value " + status}
	}
	return FileDiff{Filename: filename, Status: fs, Patch: patch}, nil
}

// HasPatch reports whether the file carries a textual diff.
func (f FileDiff) HasPatch() bool {
	return f.Patch != ""
}

// Rows parses the file's patch into annotated diff rows.
func (f FileDiff) Rows() []DiffRow {
	return ParsePatch(f.Patch)
}

package types

import "fmt"

// StubFileName is the reserved sentinel placed inside a repo directory that
// is tracked as a whole. It never appears on the system side.
const StubFileName = ".configma.stub"

// EntryKind distinguishes the two kinds of tracked entries.
type EntryKind int

const (
	// EntryFile is a single tracked file.
	EntryFile EntryKind = iota
	// EntryStubDir is a directory linked wholesale, marked by StubFileName.
	EntryStubDir
)

// String returns the human-readable name of the kind
func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryStubDir:
		return "directory"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// MarshalText renders the kind for JSON/YAML output
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TrackedEntry is one tracked path inside a profile.
type TrackedEntry struct {
	// Rel is the slash-separated path relative to the profile root.
	Rel  string
	Kind EntryKind
}

// IsDir reports whether the entry is a stub directory
func (e TrackedEntry) IsDir() bool {
	return e.Kind == EntryStubDir
}

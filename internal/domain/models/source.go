package models

import "strings"

// MaxTreeEntries caps the number of tree entries handed to the analysis prompts.
const MaxTreeEntries = 300

type (
	// EntryKind distinguishes files from directories in a ProjectTree.
	EntryKind string

	// TreeEntry is one path of the repository tree.
	TreeEntry struct {
		Path string
		Kind EntryKind
	}

	// ProjectTree is the ordered, capped list of repository paths.
	ProjectTree struct {
		Entries []TreeEntry
	}

	// DiffBundle keeps the raw unified diff next to its self-reference-free variant.
	DiffBundle struct {
		Raw      string
		Filtered string
	}
)

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

// String renders one path per line, directories with a trailing slash.
func (t *ProjectTree) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, e := range t.Entries {
		sb.WriteString(e.Path)
		if e.Kind == KindDirectory {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Len is nil-safe.
func (t *ProjectTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

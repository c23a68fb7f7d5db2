// Package diff removes the orchestrator's own sources from diff and tree data,
// so a change to the agent itself is never analysed by the agent.
package diff

import (
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/domain/models"
	"github.com/Tomas-vilte/MateRisk/internal/regex"
)

// DefaultSelfDirectory is the repository directory holding the agent.
const DefaultSelfDirectory = "pr-risk-agent"

// FilterSelfReferences drops every per-file segment whose header names selfDir
// on either side of the comparison. Text before the first marker is kept.
// Filtering twice gives the same result as filtering once.
func FilterSelfReferences(raw, selfDir string) string {
	prefix := normalizeDir(selfDir)
	if prefix == "" || !strings.Contains(raw, regex.DiffFileMarker) {
		return raw
	}

	segments := strings.Split(raw, regex.DiffFileMarker)
	kept := make([]string, 0, len(segments))
	kept = append(kept, segments[0])
	for _, seg := range segments[1:] {
		if touchesDir(header(seg), prefix) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, regex.DiffFileMarker)
}

// TouchesSelf reports whether any segment of raw changes a file under selfDir.
func TouchesSelf(raw, selfDir string) bool {
	prefix := normalizeDir(selfDir)
	if prefix == "" {
		return false
	}
	for _, seg := range strings.Split(raw, regex.DiffFileMarker)[1:] {
		if touchesDir(header(seg), prefix) {
			return true
		}
	}
	return false
}

// FilterTree drops entries under selfDir and caps the result at models.MaxTreeEntries.
func FilterTree(entries []models.TreeEntry, selfDir string) *models.ProjectTree {
	prefix := normalizeDir(selfDir)
	out := make([]models.TreeEntry, 0, min(len(entries), models.MaxTreeEntries))
	for _, e := range entries {
		if len(out) == models.MaxTreeEntries {
			break
		}
		if IsSelfPath(e.Path, prefix) {
			continue
		}
		out = append(out, e)
	}
	return &models.ProjectTree{Entries: out}
}

// IsSelfPath reports whether path is selfDir itself or lives below it.
func IsSelfPath(path, selfDir string) bool {
	prefix := normalizeDir(selfDir)
	if prefix == "" {
		return false
	}
	p := strings.TrimPrefix(path, "/")
	return p == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(p, prefix)
}

// header returns the first line of a segment, e.g. "a/x.go b/x.go".
func header(segment string) string {
	if i := strings.IndexByte(segment, '\n'); i >= 0 {
		return segment[:i]
	}
	return segment
}

func touchesDir(header, prefix string) bool {
	return strings.HasPrefix(header, "a/"+prefix) || strings.Contains(header, " b/"+prefix)
}

func normalizeDir(dir string) string {
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" {
		return ""
	}
	return dir + "/"
}

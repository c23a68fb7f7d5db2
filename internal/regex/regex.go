package regex

import "regexp"

var (
	// Ticket patterns
	TicketKey          = regexp.MustCompile(`(?i)\b([A-Z][A-Z0-9]*-\d+)\b`)
	TicketKeyExact     = regexp.MustCompile(`^[A-Z][A-Z0-9]*-\d+$`)
	AcceptanceCriteria = regexp.MustCompile(`(?i:acceptance[ \t]+criteria)[ \t]*:?[ \t]*\n?((?s:.*?))(?:\n[ \t]*\n|\n#+[ \t]|\n[A-Z][A-Za-z ]*:|\z)`)

	// Markdown subset understood by the document converter
	BlankLine = regexp.MustCompile(`\n[ \t]*\n`)
	BoldSpan  = regexp.MustCompile(`\*\*(.+?)\*\*`)

	// AI and JSON parsing
	MarkdownJSONBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")
	JSONString        = regexp.MustCompile(`"(?:\\.|[^"\\])*"`)
)

// DiffFileMarker starts every per-file segment of a unified git diff.
const DiffFileMarker = "diff --git "

// Package adf builds Atlassian Document Format trees, the rich-document wire
// format of the Jira Cloud comment API.
//
// Only a small markdown subset is understood: blank lines separate paragraphs,
// every non-empty line becomes its own paragraph node and **bold** spans become
// runs marked "strong". Any other markdown (headings, lists, links, italics)
// is kept as literal text.
package adf

import (
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/regex"
)

const (
	TypeDoc       = "doc"
	TypeParagraph = "paragraph"
	TypeText      = "text"
	MarkStrong    = "strong"
)

type (
	// Mark decorates a text node.
	Mark struct {
		Type string `json:"type"`
	}

	// Node is any ADF node. Text nodes carry Text and Marks, block nodes carry Content.
	Node struct {
		Type    string `json:"type"`
		Text    string `json:"text,omitempty"`
		Marks   []Mark `json:"marks,omitempty"`
		Content []Node `json:"content,omitempty"`
	}

	// Document is the ADF root node.
	Document struct {
		Type    string `json:"type"`
		Version int    `json:"version"`
		Content []Node `json:"content"`
	}
)

// FromMarkdown converts text into a Document. Input with no non-empty line yields
// a single paragraph holding the raw input, so the result is never empty. Empty
// input gives an empty paragraph, since text nodes must not be empty.
func FromMarkdown(text string) Document {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var paragraphs []Node
	for _, block := range regex.BlankLine.Split(normalized, -1) {
		for _, line := range strings.Split(block, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			paragraphs = append(paragraphs, Paragraph(parseInline(line)...))
		}
	}

	if len(paragraphs) == 0 {
		paragraphs = []Node{Paragraph()}
		if text != "" {
			paragraphs[0].Content = []Node{Text(text)}
		}
	}

	return Document{
		Type:    TypeDoc,
		Version: 1,
		Content: paragraphs,
	}
}

// parseInline scans line once, left to right, emitting plain and strong runs in order.
func parseInline(line string) []Node {
	matches := regex.BoldSpan.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return []Node{Text(line)}
	}

	runs := make([]Node, 0, len(matches)*2+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			runs = append(runs, Text(line[last:m[0]]))
		}
		runs = append(runs, Strong(line[m[2]:m[3]]))
		last = m[1]
	}
	if last < len(line) {
		runs = append(runs, Text(line[last:]))
	}
	return runs
}

// Paragraph wraps runs in a paragraph node.
func Paragraph(runs ...Node) Node {
	return Node{Type: TypeParagraph, Content: runs}
}

// Text builds a plain text run.
func Text(s string) Node {
	return Node{Type: TypeText, Text: s}
}

// Strong builds a bold text run.
func Strong(s string) Node {
	return Node{Type: TypeText, Text: s, Marks: []Mark{{Type: MarkStrong}}}
}

// IsStrong reports whether n carries the strong mark.
func (n Node) IsStrong() bool {
	for _, m := range n.Marks {
		if m.Type == MarkStrong {
			return true
		}
	}
	return false
}

package jira

import (
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/regex"
)

// nested block nodes start on a new line when flattened
var lineBlocks = map[string]bool{
	"paragraph":   true,
	"heading":     true,
	"listItem":    true,
	"codeBlock":   true,
	"blockquote":  true,
	"tableRow":    true,
	"mediaSingle": true,
}

// ExtractDescription turns a Jira description field into plain text. A string is
// returned as is; an ADF document is flattened depth-first, concatenating every
// text node and joining top-level blocks with newlines. Headings keep a markdown
// "#" prefix per level so section boundaries survive. Anything else yields "".
func ExtractDescription(field interface{}) string {
	switch v := field.(type) {
	case string:
		return v
	case map[string]interface{}:
		blocks, _ := v["content"].([]interface{})
		lines := make([]string, 0, len(blocks))
		for _, b := range blocks {
			var sb strings.Builder
			flatten(b, &sb)
			if text := strings.TrimRight(sb.String(), "\n"); text != "" {
				lines = append(lines, text)
			}
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}

func flatten(node interface{}, sb *strings.Builder) {
	n, ok := node.(map[string]interface{})
	if !ok {
		return
	}

	nodeType, _ := n["type"].(string)
	switch nodeType {
	case "text":
		text, _ := n["text"].(string)
		sb.WriteString(text)
		return
	case "hardBreak":
		sb.WriteString("\n")
		return
	case "heading":
		sb.WriteString(strings.Repeat("#", headingLevel(n)) + " ")
	}

	children, _ := n["content"].([]interface{})
	for _, child := range children {
		if c, ok := child.(map[string]interface{}); ok {
			if t, _ := c["type"].(string); lineBlocks[t] {
				breakLine(sb)
			}
		}
		flatten(child, sb)
	}
}

func headingLevel(n map[string]interface{}) int {
	attrs, _ := n["attrs"].(map[string]interface{})
	level, _ := attrs["level"].(float64)
	if level < 1 || level > 6 {
		return 1
	}
	return int(level)
}

func breakLine(sb *strings.Builder) {
	if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}
}

// ExtractAcceptanceCriteria returns the body of the "Acceptance Criteria" section
// of text, or "" when there is none.
func ExtractAcceptanceCriteria(text string) string {
	m := regex.AcceptanceCriteria.FindStringSubmatch(strings.ReplaceAll(text, "\r\n", "\n"))
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

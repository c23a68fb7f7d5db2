package parser

import (
	"encoding/json"
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/regex"
)

// ExtractJSON attempts to extract a valid JSON object from text, handling markdown code blocks
// and extra prose some models add around the answer. The largest valid candidate wins.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	var bestMarkdown string
	for _, m := range regex.MarkdownJSONBlock.FindAllStringSubmatch(text, -1) {
		if len(m) < 2 {
			continue
		}
		sanitized := SanitizeJSON(strings.TrimSpace(m[1]))
		if isObject(sanitized) && len(sanitized) > len(bestMarkdown) {
			bestMarkdown = sanitized
		}
	}
	if bestMarkdown != "" {
		return bestMarkdown
	}

	var bestBlock string
	for i := 0; i < len(text); {
		startIdx := strings.IndexByte(text[i:], '{')
		if startIdx == -1 {
			break
		}
		startIdx += i

		endIdx := matchingBrace(text, startIdx)
		if endIdx == -1 {
			i = startIdx + 1
			continue
		}

		sanitized := SanitizeJSON(text[startIdx : endIdx+1])
		if isObject(sanitized) && len(sanitized) > len(bestBlock) {
			bestBlock = sanitized
		}
		i = endIdx + 1
	}

	if bestBlock != "" {
		return bestBlock
	}

	return SanitizeJSON(text)
}

// matchingBrace returns the index of the brace closing the one at start, or -1.
func matchingBrace(text string, start int) int {
	count := 0
	inString := false
	escaped := false

	for j := start; j < len(text); j++ {
		char := text[j]
		if escaped {
			escaped = false
			continue
		}
		if char == '\\' {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch char {
		case '{':
			count++
		case '}':
			count--
			if count == 0 {
				return j
			}
		}
	}
	return -1
}

func isObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

// SanitizeJSON cleans malformed JSON that LLMs sometimes generate,
// such as unescaped newlines within string literals.
func SanitizeJSON(s string) string {
	return regex.JSONString.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "\n", "\\n")
	})
}

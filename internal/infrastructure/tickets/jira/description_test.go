package jira

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestExtractDescription(t *testing.T) {
	t.Run("plain string is returned as is", func(t *testing.T) {
		assert.Equal(t, "hello", ExtractDescription("hello"))
	})

	t.Run("nil yields empty", func(t *testing.T) {
		assert.Equal(t, "", ExtractDescription(nil))
	})

	t.Run("lists put each item on its own line", func(t *testing.T) {
		doc := decode(t, `{"type":"doc","content":[
			{"type":"heading","content":[{"type":"text","text":"Scope"}]},
			{"type":"bulletList","content":[
				{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"one"}]}]},
				{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"two"},{"type":"text","text":" more"}]}]}
			]}
		]}`)

		assert.Equal(t, "# Scope\none\ntwo more", ExtractDescription(doc))
	})

	t.Run("headings keep their level", func(t *testing.T) {
		doc := decode(t, `{"type":"doc","content":[
			{"type":"heading","attrs":{"level":3},"content":[{"type":"text","text":"Notes"}]},
			{"type":"paragraph","content":[{"type":"text","text":"body"}]}
		]}`)

		assert.Equal(t, "### Notes\nbody", ExtractDescription(doc))
	})

	t.Run("unknown nodes are walked for text", func(t *testing.T) {
		doc := decode(t, `{"type":"doc","content":[
			{"type":"panel","content":[{"type":"paragraph","content":[{"type":"text","text":"inside"}]}]},
			{"type":"rule"}
		]}`)

		assert.Equal(t, "inside", ExtractDescription(doc))
	})
}

func TestExtractAcceptanceCriteria(t *testing.T) {
	t.Run("section ends at a blank line", func(t *testing.T) {
		text := "Intro\nAcceptance criteria:\n- a\n- b\n\nNotes"
		assert.Equal(t, "- a\n- b", ExtractAcceptanceCriteria(text))
	})

	t.Run("section ends at the next heading", func(t *testing.T) {
		text := "## Acceptance Criteria\nworks\n## Design\nx"
		assert.Equal(t, "works", ExtractAcceptanceCriteria(text))
	})

	t.Run("section ends at the next capitalised label", func(t *testing.T) {
		text := "ACCEPTANCE CRITERIA: it loads\nOut of scope: mobile"
		assert.Equal(t, "it loads", ExtractAcceptanceCriteria(text))
	})

	t.Run("absence yields empty", func(t *testing.T) {
		assert.Equal(t, "", ExtractAcceptanceCriteria("nothing to see"))
	})
}

func TestExtractAcceptanceCriteria_FromADF(t *testing.T) {
	doc := decode(t, `{"type":"doc","version":1,"content":[
		{"type":"paragraph","content":[{"type":"text","text":"Users need login."}]},
		{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Acceptance Criteria"}]},
		{"type":"bulletList","content":[
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"User can log in"}]}]}
		]},
		{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Out of scope"}]},
		{"type":"paragraph","content":[{"type":"text","text":"Payments"}]}
	]}`)

	criteria := ExtractAcceptanceCriteria(ExtractDescription(doc))

	assert.Equal(t, "User can log in", criteria)
}

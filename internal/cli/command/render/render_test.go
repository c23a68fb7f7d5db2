package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRenderCommand(t *testing.T) {
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	dir := t.TempDir()

	analysis := writeFile(t, dir, "analysis.json", "```json\n{\"risk\":{\"score\":\"HIGH\",\"reasoning\":\"Auth rewrite\"}}\n```")
	tests := writeFile(t, dir, "tests.json", `{"testCases":[{"title":"Login","steps":["open"],"priority":"LOW"}]}`)
	event := writeFile(t, dir, "event.json", `{"action":"opened","pull_request":{"number":9,"title":"Rewrite auth","base":{"ref":"main"},"head":{"ref":"auth"}},"repository":{"name":"shop","owner":{"login":"acme"}}}`)

	t.Run("should print the report", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		cmd := NewRenderCommand(strings.NewReader(""), stdout, new(bytes.Buffer)).CreateCommand(trans, &config.Config{})

		err := cmd.Run(context.Background(), []string{"render", "--analysis", analysis, "--tests", tests, "--event", event, "--ticket", "PROJ-5"})

		require.NoError(t, err)
		html := stdout.String()
		assert.Contains(t, html, "Auth rewrite")
		assert.Contains(t, html, "Rewrite auth")
		assert.Contains(t, html, "PROJ-5")
		assert.Contains(t, html, "1. Login")
	})

	t.Run("should write the report to a file in another language", func(t *testing.T) {
		out := filepath.Join(dir, "report.html")
		cmd := NewRenderCommand(strings.NewReader(""), new(bytes.Buffer), new(bytes.Buffer)).CreateCommand(trans, &config.Config{})

		err := cmd.Run(context.Background(), []string{"render", "--analysis", analysis, "--output", out, "--lang", "es"})

		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "No se generaron casos de prueba.")
	})

	t.Run("should fail on unreadable analysis", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.json", "no json here")
		cmd := NewRenderCommand(strings.NewReader(""), new(bytes.Buffer), new(bytes.Buffer)).CreateCommand(trans, &config.Config{})

		err := cmd.Run(context.Background(), []string{"render", "--analysis", bad})

		assert.Error(t, err)
	})
}

package gate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	"github.com/Tomas-vilte/MateRisk/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGate(t *testing.T, payload string) (Decision, error) {
	t.Helper()
	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	cmd := NewGateCommand(strings.NewReader(payload), stdout, new(bytes.Buffer)).CreateCommand(trans, &config.Config{})
	if err := cmd.Run(context.Background(), []string{"gate"}); err != nil {
		return Decision{}, err
	}

	var d Decision
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &d))
	return d, nil
}

func TestGateCommand(t *testing.T) {
	t.Run("should trigger on a merged pull request", func(t *testing.T) {
		d, err := runGate(t, `{"action":"closed","pull_request":{"merged":true,"number":4,"title":"OPS-2 hotfix","base":{"ref":"master"},"head":{"ref":"fix"}},"repository":{"name":"api","owner":{"login":"acme"}}}`)

		require.NoError(t, err)
		assert.True(t, d.Triggered)
		assert.Empty(t, d.Reason)
		assert.Equal(t, "acme/api", d.Repo)
		assert.Equal(t, "OPS-2", d.TicketKey)
	})

	t.Run("should explain why an event is skipped", func(t *testing.T) {
		d, err := runGate(t, `{"action":"closed","pull_request":{"merged":false,"base":{"ref":"main"}}}`)

		require.NoError(t, err)
		assert.False(t, d.Triggered)
		assert.Equal(t, "pull request closed without merge", d.Reason)
	})

	t.Run("should fail on malformed payloads", func(t *testing.T) {
		_, err := runGate(t, "[")

		assert.Error(t, err)
	})
}

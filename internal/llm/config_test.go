package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize_Defaults(t *testing.T) {
	cfg := Config{APIKey: "sk-test"}
	cfg.normalize()

	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestConfigNormalize_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		APIKey:  "sk-test",
		Model:   "claude-3-5-haiku-latest",
		Timeout: 10 * time.Second,
	}
	cfg.normalize()

	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestNewClaudeClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClaudeClient(Config{})
	assert.Error(t, err)
}

func TestNewClaudeClient_ReportsAvailable(t *testing.T) {
	client, err := NewClaudeClient(Config{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.True(t, client.Available())
	assert.Equal(t, DefaultModel, client.Model())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvPort, EnvDebug, EnvAnthropicKey, EnvClaudeModel,
		EnvGoogleClientID, EnvGoogleSecret, EnvAllowedDomain,
		EnvSessionSecret, EnvBucket, EnvCredentialsFile, EnvBaseURL, EnvStaticDir,
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, DefaultDomain, cfg.AllowedEmailDomain)
	assert.Equal(t, DefaultBucket, cfg.Bucket)
	assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
	assert.Equal(t, "http://localhost:5003", cfg.BaseURL)
	assert.NotEmpty(t, cfg.SessionSecret, "session secret is generated when unset")
	assert.False(t, cfg.OAuthConfigured())
	assert.False(t, cfg.ClaudeConfigured())
}

func TestLoad_ExplicitValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvAnthropicKey, "sk-test")
	t.Setenv(EnvGoogleClientID, "client-id")
	t.Setenv(EnvAllowedDomain, "example.com")
	t.Setenv(EnvBaseURL, "https://roles.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.ClaudeConfigured())
	assert.True(t, cfg.OAuthConfigured())
	assert.Equal(t, "example.com", cfg.AllowedEmailDomain)
	assert.Equal(t, "https://roles.example.com", cfg.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "dev@example.com", cfg.DevIdentityEmail())
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_PortOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestNewSessionConfig(t *testing.T) {
	cfg := &Config{SessionSecret: "secret"}
	sess := NewSessionConfig(cfg)

	assert.Equal(t, "secret", sess.Secret)
	assert.Equal(t, DefaultSessionLifetime, sess.Lifetime)
}

func TestCatalog(t *testing.T) {
	assert.Len(t, ExperienceLevels, 6)
	assert.Equal(t, "entry", ExperienceLevels[0].Value)
	assert.Contains(t, Departments, "Underwriting")
	assert.Len(t, StandardBenefits, 10)
	assert.Contains(t, CompanyDescription, "Evanston, IL")
}

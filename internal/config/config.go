// Package config provides environment-based configuration for the server,
// plus the static form catalog served to the frontend.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// Defaults for optional environment variables.
const (
	DefaultPort        = 5003
	DefaultDomain      = "brite.co"
	DefaultBucket      = "britetalent-data"
	DefaultStaticDir   = "web"
	DefaultBaseURLFmt  = "http://localhost:%d"
	EnvPort            = "PORT"
	EnvDebug           = "DEBUG"
	EnvAnthropicKey    = "ANTHROPIC_API_KEY"
	EnvClaudeModel     = "CLAUDE_MODEL"
	EnvGoogleClientID  = "GOOGLE_CLIENT_ID"
	EnvGoogleSecret    = "GOOGLE_CLIENT_SECRET"
	EnvAllowedDomain   = "ALLOWED_EMAIL_DOMAIN"
	EnvSessionSecret   = "SESSION_SECRET"
	EnvBucket          = "GCS_BUCKET"
	EnvCredentialsFile = "GCS_CREDENTIALS_FILE"
	EnvBaseURL         = "BASE_URL"
	EnvStaticDir       = "STATIC_DIR"
)

// Config holds the full server configuration.
type Config struct {
	Port  int
	Debug bool

	AnthropicAPIKey string
	ClaudeModel     string

	GoogleClientID     string
	GoogleClientSecret string
	AllowedEmailDomain string
	SessionSecret      string

	Bucket          string
	CredentialsFile string
	BaseURL         string
	StaticDir       string
}

// Load builds a Config from environment variables. All variables are
// optional: missing credentials degrade the corresponding feature rather
// than failing startup.
func Load() (*Config, error) {
	cfg := &Config{
		AnthropicAPIKey:    os.Getenv(EnvAnthropicKey),
		ClaudeModel:        os.Getenv(EnvClaudeModel),
		GoogleClientID:     os.Getenv(EnvGoogleClientID),
		GoogleClientSecret: os.Getenv(EnvGoogleSecret),
		AllowedEmailDomain: os.Getenv(EnvAllowedDomain),
		SessionSecret:      os.Getenv(EnvSessionSecret),
		Bucket:             os.Getenv(EnvBucket),
		CredentialsFile:    os.Getenv(EnvCredentialsFile),
		BaseURL:            os.Getenv(EnvBaseURL),
		StaticDir:          os.Getenv(EnvStaticDir),
	}

	cfg.Port = DefaultPort
	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: %q", EnvPort, portStr)
		}
		cfg.Port = port
	}

	cfg.Debug = strings.EqualFold(os.Getenv(EnvDebug), "true")

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.AllowedEmailDomain == "" {
		c.AllowedEmailDomain = DefaultDomain
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf(DefaultBaseURLFmt, c.Port)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.SessionSecret == "" {
		c.SessionSecret = randomSecret()
		log.Printf("[CONFIG] %s not set, generated an ephemeral secret; sessions will not survive restarts", EnvSessionSecret)
	}
}

// OAuthConfigured reports whether Google sign-in can be enabled. Without a
// client ID the server falls back to a fixed development identity.
func (c *Config) OAuthConfigured() bool {
	return c.GoogleClientID != ""
}

// ClaudeConfigured reports whether generation endpoints have credentials.
func (c *Config) ClaudeConfigured() bool {
	return c.AnthropicAPIKey != ""
}

// DevIdentityEmail is the identity assigned to all requests when OAuth is
// not configured.
func (c *Config) DevIdentityEmail() string {
	return "dev@" + c.AllowedEmailDomain
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; there is no
		// reasonable recovery.
		panic(fmt.Sprintf("failed to generate session secret: %v", err))
	}
	return hex.EncodeToString(buf)
}

package config

import "time"

// DefaultSessionLifetime matches the browser cookie lifetime of 7 days.
const DefaultSessionLifetime = 7 * 24 * time.Hour

// SessionConfig holds parameters for signed session cookies.
type SessionConfig struct {
	Secret   string
	Lifetime time.Duration
}

// NewSessionConfig derives session parameters from the loaded configuration.
func NewSessionConfig(cfg *Config) SessionConfig {
	return SessionConfig{
		Secret:   cfg.SessionSecret,
		Lifetime: DefaultSessionLifetime,
	}
}

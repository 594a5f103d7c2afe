// Package llm provides the Claude generation client and its configuration.
package llm

import "time"

// DefaultModel is the Claude model used when none is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// DefaultTimeout bounds a single generation call so a hung upstream cannot
// stall a request worker indefinitely.
const DefaultTimeout = 120 * time.Second

// Config holds the generation client configuration.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// normalize fills unset fields with defaults.
func (c *Config) normalize() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

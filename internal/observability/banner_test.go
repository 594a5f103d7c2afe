package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintStartup(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStartup(StartupInfo{
		App:             "BriteRoles",
		Port:            5003,
		Debug:           false,
		ClaudeReady:     true,
		Model:           "claude-sonnet-4-20250514",
		OAuthConfigured: false,
		StoreReady:      true,
		Bucket:          "britetalent-data",
		AllowedDomain:   "brite.co",
	})

	out := buf.String()
	assert.Contains(t, out, "BRITEROLES")
	assert.Contains(t, out, "Port:     5003")
	assert.Contains(t, out, "disabled (local dev)")
	assert.Contains(t, out, "gs://britetalent-data")
}

func TestPrintStartup_Degraded(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintStartup(StartupInfo{
		App:           "BriteRoles",
		Port:          5003,
		AllowedDomain: "brite.co",
	})

	out := buf.String()
	assert.Contains(t, out, "missing ANTHROPIC_API_KEY")
	assert.Contains(t, out, "Storage:  unavailable")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

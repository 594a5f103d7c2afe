// Package observability provides formatted startup output for the server.
package observability

import (
	"fmt"
	"io"
	"strings"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted console output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// StartupInfo summarizes the server state announced at boot.
type StartupInfo struct {
	App             string
	Port            int
	Debug           bool
	ClaudeReady     bool
	Model           string
	OAuthConfigured bool
	StoreReady      bool
	Bucket          string
	AllowedDomain   string
}

// PrintStartup prints the boot banner with feature availability.
func (p *Printer) PrintStartup(info StartupInfo) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Port:     %d\n", info.Port))
	sb.WriteString(fmt.Sprintf("Debug:    %v\n", info.Debug))
	sb.WriteString(fmt.Sprintf("Claude:   %s\n", readiness(info.ClaudeReady, info.Model, "missing ANTHROPIC_API_KEY")))
	sb.WriteString(fmt.Sprintf("OAuth:    %s\n", readiness(info.OAuthConfigured, "@"+info.AllowedDomain+" only", "disabled (local dev)")))
	sb.WriteString(fmt.Sprintf("Storage:  %s", readiness(info.StoreReady, "gs://"+info.Bucket, "unavailable")))

	p.printBox(strings.ToUpper(info.App), sb.String())
}

func readiness(ready bool, detail, fallback string) string {
	if ready {
		return "ready (" + detail + ")"
	}
	return fallback
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

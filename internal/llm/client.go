package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Result holds the outcome of a single generation call.
type Result struct {
	Content      string
	Model        string
	Tokens       int
	CostEstimate string
	LatencyMS    int64
}

// Client is an abstraction over the text-generation provider.
type Client interface {
	// Generate runs one synchronous completion call. No retries, no streaming.
	Generate(ctx context.Context, prompt, systemPrompt string, temperature float64, maxTokens int) (*Result, error)
	// Available reports whether the client was initialized with credentials.
	// Callers should check this before Generate to short-circuit with a fixed
	// status instead of paying call latency.
	Available() bool
	// Model returns the configured model identifier.
	Model() string
}

// ClaudeClient implements Client for the Anthropic Messages API.
type ClaudeClient struct {
	client anthropic.Client
	config Config
}

// NewClaudeClient creates a new Claude client. The API key is required; a
// client constructed without one reports unavailable and fails every call
// fast rather than attempting the network request.
func NewClaudeClient(cfg Config) (*ClaudeClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	cfg.normalize()

	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		config: cfg,
	}, nil
}

// Available reports whether the client holds credentials.
func (c *ClaudeClient) Available() bool {
	return c.config.APIKey != ""
}

// Model returns the configured Claude model identifier.
func (c *ClaudeClient) Model() string {
	return c.config.Model
}

// Generate runs a single Messages API call and records wall-clock latency,
// token usage, and a cost estimate from the pricing table. Upstream failures
// of any kind collapse to one error carrying the upstream message.
func (c *ClaudeClient) Generate(ctx context.Context, prompt, systemPrompt string, temperature float64, maxTokens int) (*Result, error) {
	if !c.Available() {
		return nil, fmt.Errorf("claude client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(prompt),
				},
			},
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Type: "text", Text: systemPrompt},
		}
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude generation failed: %w", err)
	}
	latency := time.Since(start).Milliseconds()

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	inputTokens := int(resp.Usage.InputTokens)
	outputTokens := int(resp.Usage.OutputTokens)

	return &Result{
		Content:      strings.TrimSpace(content.String()),
		Model:        string(resp.Model),
		Tokens:       inputTokens + outputTokens,
		CostEstimate: FormatCost(CalculateCost(string(resp.Model), inputTokens, outputTokens)),
		LatencyMS:    latency,
	}, nil
}

package llm

import "fmt"

// ModelPricing contains per-token pricing for Claude models.
// Prices are in USD per million tokens.
type ModelPricing struct {
	InputPrice  float64
	OutputPrice float64
}

// modelPricing maps model identifiers to pricing.
// Source: https://www.anthropic.com/pricing
var modelPricing = map[string]ModelPricing{
	"claude-sonnet-4-20250514": {InputPrice: 3.00, OutputPrice: 15.00},
	"claude-opus-4-20250514":   {InputPrice: 15.00, OutputPrice: 75.00},

	"claude-3-5-sonnet-20241022": {InputPrice: 3.00, OutputPrice: 15.00},
	"claude-3-5-sonnet-latest":   {InputPrice: 3.00, OutputPrice: 15.00},
	"claude-3-5-haiku-20241022":  {InputPrice: 0.80, OutputPrice: 4.00},
	"claude-3-5-haiku-latest":    {InputPrice: 0.80, OutputPrice: 4.00},

	"claude-3-opus-20240229":  {InputPrice: 15.00, OutputPrice: 75.00},
	"claude-3-haiku-20240307": {InputPrice: 0.25, OutputPrice: 1.25},
}

// DefaultPricingFallback is the flat per-request estimate used when the model
// is not in the pricing table.
const DefaultPricingFallback = 0.01

// CalculateCost computes the cost in USD of an API call from token usage.
func CalculateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, found := modelPricing[model]
	if !found {
		return DefaultPricingFallback
	}

	inputCost := (float64(inputTokens) / 1_000_000.0) * pricing.InputPrice
	outputCost := (float64(outputTokens) / 1_000_000.0) * pricing.OutputPrice

	return inputCost + outputCost
}

// FormatCost renders a cost in USD as a display string, e.g. "$0.0123".
func FormatCost(cost float64) string {
	return fmt.Sprintf("$%.4f", cost)
}

// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService is a chat model the location assistant prompts for JSON.
// It is optional: without one, geocoding and place suggestions are off.
// Adapters exist for OpenAI-compatible APIs, Anthropic and Ollama.
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// System is an optional system instruction.
	System string

	// Prefill starts the answer, for example "{" to force a JSON object.
	// The returned text begins with it. Providers that cannot continue a
	// partial answer use it as a hint for their JSON mode instead.
	Prefill string
}

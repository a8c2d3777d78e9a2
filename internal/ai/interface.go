package ai

import "context"

// Request is a single text-generation call
type Request struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Backend is a hosted text-generation provider
type Backend interface {
	// Name returns the provider's display name
	Name() string

	// Generate sends one prompt and returns the generated text
	Generate(ctx context.Context, req Request) (string, error)
}

// Asker sends prompts to backends by id. Failures are reported in the Result,
// never as a returned error.
type Asker interface {
	// Ask sends prompt to the backend registered as backend. An empty model
	// selects the backend's default model.
	Ask(ctx context.Context, backend, prompt, model string) Result
}

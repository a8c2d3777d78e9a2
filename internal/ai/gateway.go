package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Result is the outcome of one Ask. On failure Err is set and Text carries a
// readable description of the failure.
type Result struct {
	Backend string
	Model   string
	Text    string
	Err     error
}

// OK reports whether the backend produced content
func (r Result) OK() bool {
	return r.Err == nil
}

// String implements fmt.Stringer
func (r Result) String() string {
	return r.Text
}

// BackendConfig binds a Backend to an id with its call defaults. A nil Backend
// marks the id as registered but missing its credential.
type BackendConfig struct {
	ID           string
	Backend      Backend
	DefaultModel string

	// Temperature is sent as is, including 0. Nil selects DefaultTemperature.
	Temperature *float32
	MaxTokens   int
}

// Gateway routes prompts to registered backends by id
type Gateway struct {
	backends map[string]BackendConfig
	order    []string
	logger   *slog.Logger
}

// NewGateway creates a gateway over the given backends. Backends without a
// credential are logged once here and answer every call with an error Result.
func NewGateway(logger *slog.Logger, backends ...BackendConfig) *Gateway {
	g := &Gateway{
		backends: make(map[string]BackendConfig, len(backends)),
		logger:   logger,
	}

	for _, b := range backends {
		temperature := float32(DefaultTemperature)
		if b.Temperature != nil {
			temperature = *b.Temperature
		}
		b.Temperature = &temperature
		if b.MaxTokens == 0 {
			b.MaxTokens = DefaultMaxTokens
		}
		if _, dup := g.backends[b.ID]; !dup {
			g.order = append(g.order, b.ID)
		}
		g.backends[b.ID] = b

		if b.Backend == nil {
			logger.Warn("backend API key not found; calls will return an error",
				"backend", b.ID)
		}
	}

	return g
}

// Backends returns the registered backend ids in registration order
func (g *Gateway) Backends() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Configured reports whether backend is registered with a credential
func (g *Gateway) Configured(backend string) bool {
	b, ok := g.backends[backend]
	return ok && b.Backend != nil
}

// Ask sends prompt to backend and waits for the reply. Provider failures are
// reported in the Result.
func (g *Gateway) Ask(ctx context.Context, backend, prompt, model string) Result {
	display := DisplayName(backend)

	b, ok := g.backends[backend]
	if !ok {
		return Result{
			Backend: backend,
			Model:   model,
			Text:    fmt.Sprintf("Error: %s backend is not registered", display),
			Err:     fmt.Errorf("%w: %s", ErrUnknownBackend, backend),
		}
	}

	if model == "" {
		model = b.DefaultModel
	}

	if b.Backend == nil {
		return Result{
			Backend: backend,
			Model:   model,
			Text:    fmt.Sprintf("Error: %s API key not configured", display),
			Err:     fmt.Errorf("%w: %s", ErrBackendNotConfigured, backend),
		}
	}

	if strings.TrimSpace(prompt) == "" {
		err := NewValidationError("prompt", "cannot be empty")
		return Result{
			Backend: backend,
			Model:   model,
			Text:    fmt.Sprintf("Error with %s API: %s", display, err.Error()),
			Err:     err,
		}
	}

	g.logger.InfoContext(ctx, "sending AI request",
		"backend", backend,
		"model", model,
		"temperature", *b.Temperature,
		"max_tokens", b.MaxTokens,
		"prompt_length", len(prompt))

	start := time.Now()
	text, err := b.Backend.Generate(ctx, Request{
		Model:       model,
		Prompt:      prompt,
		Temperature: *b.Temperature,
		MaxTokens:   b.MaxTokens,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "AI request failed",
			"backend", backend,
			"model", model,
			"duration", time.Since(start),
			"error", err)
		return Result{
			Backend: backend,
			Model:   model,
			Text:    fmt.Sprintf("Error with %s API: %s", display, errorDetail(err)),
			Err:     err,
		}
	}

	g.logger.InfoContext(ctx, "received AI response",
		"backend", backend,
		"model", model,
		"duration", time.Since(start),
		"response_length", len(text))

	return Result{
		Backend: backend,
		Model:   model,
		Text:    text,
	}
}

func errorDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return err.Error()
}

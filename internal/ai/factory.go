package ai

import (
	"context"
	"log/slog"
)

// Settings configures the gateway built by NewGatewayFromSettings
type Settings struct {
	OpenAIAPIKey string
	GeminiAPIKey string
	OpenAIModel  string
	GeminiModel  string
	Temperature  float32
	MaxTokens    int
}

// NewGatewayFromSettings builds a gateway with the OpenAI and Gemini backends.
// A missing key leaves that backend registered but unconfigured. Temperature is
// used as given; config.LoadConfig supplies the default.
func NewGatewayFromSettings(ctx context.Context, s Settings, logger *slog.Logger) (*Gateway, error) {
	temperature := s.Temperature

	openaiCfg := BackendConfig{
		ID:           BackendOpenAI,
		DefaultModel: firstNonEmpty(s.OpenAIModel, DefaultOpenAIModel),
		Temperature:  &temperature,
		MaxTokens:    s.MaxTokens,
	}
	if s.OpenAIAPIKey != "" {
		openaiCfg.Backend = NewOpenAIBackend(s.OpenAIAPIKey, logger)
	}

	geminiCfg := BackendConfig{
		ID:           BackendGemini,
		DefaultModel: firstNonEmpty(s.GeminiModel, DefaultGeminiModel),
		Temperature:  &temperature,
		MaxTokens:    s.MaxTokens,
	}
	if s.GeminiAPIKey != "" {
		gemini, err := NewGeminiBackend(ctx, s.GeminiAPIKey, logger)
		if err != nil {
			return nil, err
		}
		geminiCfg.Backend = gemini
	}

	return NewGateway(logger, openaiCfg, geminiCfg), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// ContentGenerator is the part of genai.Models used by GeminiBackend
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiBackend generates text with the Gemini generate content API
type GeminiBackend struct {
	models ContentGenerator
	logger *slog.Logger
}

// NewGeminiBackend creates a Gemini backend for apiKey
func NewGeminiBackend(ctx context.Context, apiKey string, logger *slog.Logger) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewGeminiBackendWithClient(client.Models, logger), nil
}

// NewGeminiBackendWithClient creates a Gemini backend over an existing models client
func NewGeminiBackendWithClient(models ContentGenerator, logger *slog.Logger) *GeminiBackend {
	return &GeminiBackend{
		models: models,
		logger: logger,
	}
}

// Name implements Backend
func (b *GeminiBackend) Name() string {
	return DisplayName(BackendGemini)
}

// Generate sends the prompt as a single user turn
func (b *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	res, err := b.models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		b.logger.ErrorContext(ctx, "Gemini API error", "model", req.Model, "error", err)
		return "", NewAPIError(b.Name(), geminiStatusCode(err), "", err)
	}

	// Blocked prompts come back with no candidates
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		b.logger.ErrorContext(ctx, "no response from Gemini", "model", req.Model)
		return "", NewAPIError(b.Name(), 0, "no response from Gemini", nil)
	}

	var text strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	b.logger.DebugContext(ctx, "received Gemini response",
		"model", req.Model,
		"response_length", text.Len(),
		"finish_reason", res.Candidates[0].FinishReason)

	return text.String(), nil
}

func geminiStatusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

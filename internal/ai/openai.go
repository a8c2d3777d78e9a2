package ai

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of the go-openai client used by OpenAIBackend
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIBackend generates text with the OpenAI chat completions API
type OpenAIBackend struct {
	client ChatCompleter
	logger *slog.Logger
}

// NewOpenAIBackend creates an OpenAI backend for apiKey
func NewOpenAIBackend(apiKey string, logger *slog.Logger) *OpenAIBackend {
	return NewOpenAIBackendWithClient(openai.NewClient(apiKey), logger)
}

// NewOpenAIBackendWithClient creates an OpenAI backend over an existing client
func NewOpenAIBackendWithClient(client ChatCompleter, logger *slog.Logger) *OpenAIBackend {
	return &OpenAIBackend{
		client: client,
		logger: logger,
	}
}

// Name implements Backend
func (b *OpenAIBackend) Name() string {
	return DisplayName(BackendOpenAI)
}

// Generate sends the prompt as a single user message
func (b *OpenAIBackend) Generate(ctx context.Context, req Request) (string, error) {
	// go-openai drops a zero temperature and the API then applies its default of 1
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := b.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       req.Model,
			MaxTokens:   req.MaxTokens,
			Temperature: temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.Prompt,
				},
			},
		},
	)
	if err != nil {
		b.logger.ErrorContext(ctx, "OpenAI API error", "model", req.Model, "error", err)
		return "", NewAPIError(b.Name(), openAIStatusCode(err), "", err)
	}

	if len(resp.Choices) == 0 {
		b.logger.ErrorContext(ctx, "no response from OpenAI", "model", req.Model)
		return "", NewAPIError(b.Name(), 0, "no response from OpenAI", nil)
	}

	b.logger.DebugContext(ctx, "received OpenAI response",
		"model", req.Model,
		"response_length", len(resp.Choices[0].Message.Content),
		"finish_reason", resp.Choices[0].FinishReason)

	return resp.Choices[0].Message.Content, nil
}

func openAIStatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

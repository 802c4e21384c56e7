// Package advisory produces non-authoritative prose about handovers and
// inventory using an external text generation service.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const systemPersona = "You are an inventory assistant for an IT asset warehouse. Be concise and factual."

// ErrUnavailable is returned by generators that are not configured.
var ErrUnavailable = errors.New("text generation unavailable")

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Unavailable is a Generator that always fails. It is used when no API key
// is configured so that every caller falls back to fixed text.
type Unavailable struct{}

// Generate implements Generator.
func (Unavailable) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// OpenAIGenerator calls an OpenAI-compatible chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator for the given endpoint. An empty
// baseURL or model selects the defaults.
func NewOpenAIGenerator(apiKey, baseURL, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("advisory API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")

	slog.Info("advisory generator configured", "base_url", cfg.BaseURL, "model", model)
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPersona},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

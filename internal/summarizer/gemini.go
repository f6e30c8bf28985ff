package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const DefaultMaxInputChars = 12000

// GeminiConfig configures GeminiSummarizer.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// MaxInputChars bounds the report text embedded in the prompt, 0 means unbounded.
	MaxInputChars int
}

// GeminiSummarizer calls Gemini through its OpenAI-compatible chat completions endpoint.
type GeminiSummarizer struct {
	client        openai.Client
	model         string
	maxInputChars int
}

// NewGeminiSummarizer builds a new summarizer instance. The client never retries.
func NewGeminiSummarizer(cfg GeminiConfig) (*GeminiSummarizer, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("model is empty")
	}

	if cfg.MaxInputChars < 0 {
		return nil, fmt.Errorf("max input chars is negative (%d)", cfg.MaxInputChars)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &GeminiSummarizer{
		client:        openai.NewClient(opts...),
		model:         model,
		maxInputChars: cfg.MaxInputChars,
	}, nil
}

// Summarize sends one prompt and returns the first choice's text.
func (s *GeminiSummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	prompt, err := BuildPrompt(input, s.maxInputChars)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	// Empty content is not an error here; the caller treats it as unparsable output.
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

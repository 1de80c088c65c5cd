package openai

import (
	"VaniAssistant/pkg/intent"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

var ErrMissingAPIKey = errors.New("openai api key is required")

type chatCompleter struct {
	client *openai.Client
	model  string
}

var _ intent.Completer = (*chatCompleter)(nil)

// NewCompleter reads OPENAI_API_KEY, OPENAI_CHAT_MODEL and the optional
// OPENAI_BASE_URL.
func NewCompleter() (intent.Completer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := os.Getenv("OPENAI_CHAT_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return NewCompleterWithConfig(cfg, model), nil
}

func NewCompleterWithConfig(cfg openai.ClientConfig, model string) intent.Completer {
	return &chatCompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *chatCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You classify browser voice commands. Return ONLY valid JSON, nothing else.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
			MaxTokens:   120,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}

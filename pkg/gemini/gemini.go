package gemini

import (
	"VaniAssistant/pkg/intent"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	ErrMissingAPIKey = errors.New("gemini API key is required")
	ErrEmptyResponse = errors.New("no response from Gemini API")
)

// Client completes prompts with a Gemini model.
type Client struct {
	modelName string
	client    *genai.Client
}

var _ intent.Completer = (*Client)(nil)

// NewCompleter reads GEMINI_API_KEY and GEMINI_MODEL_NAME. Extra client
// options are appended after the API key.
func NewCompleter(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Client{
		modelName: modelName,
		client:    client,
	}, nil
}

func (g *Client) Complete(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	return responseText(res)
}

func (g *Client) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("unexpected response format from Gemini API")
	}

	return b.String(), nil
}

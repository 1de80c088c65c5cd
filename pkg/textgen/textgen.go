// Package textgen talks to a plain text-generation HTTP endpoint of the
// {"inputs": prompt} -> {"generated_text": ...} kind.
package textgen

import (
	"VaniAssistant/pkg/intent"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const maxBody = 1 << 20

var (
	ErrMissingEndpoint = errors.New("AI_ENDPOINT is required")
	ErrMissingAPIKey   = errors.New("AI_API_KEY is required")
	ErrBadResponse     = errors.New("unexpected text generation response")
)

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ intent.Completer = (*Client)(nil)

// NewFromEnv reads AI_ENDPOINT and AI_API_KEY.
func NewFromEnv() (*Client, error) {
	endpoint := os.Getenv("AI_ENDPOINT")
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	apiKey := os.Getenv("AI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return New(endpoint, apiKey, nil), nil
}

func New(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, http: httpClient}
}

type request struct {
	Inputs string `json:"inputs"`
}

type generated struct {
	GeneratedText *string `json:"generated_text"`
}

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := jsoniter.Marshal(request{Inputs: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("text generation: status %d", resp.StatusCode)
	}

	return parse(raw)
}

// parse accepts a single object or a list whose first element carries the
// generated text.
func parse(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", ErrBadResponse
	}

	var out generated
	if trimmed[0] == '[' {
		var list []generated
		if err := jsoniter.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		if len(list) == 0 {
			return "", ErrBadResponse
		}
		out = list[0]
	} else if err := jsoniter.Unmarshal(trimmed, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if out.GeneratedText == nil || strings.TrimSpace(*out.GeneratedText) == "" {
		return "", ErrBadResponse
	}
	return *out.GeneratedText, nil
}

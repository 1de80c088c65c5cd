package intent

import (
	"VaniAssistant/pkg/action"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completerFunc func(ctx context.Context, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func replying(body string) Completer {
	return completerFunc(func(context.Context, string) (string, error) { return body, nil })
}

func TestResolve(t *testing.T) {
	r := NewResolver(replying(`{"intent":"search_web","argument":" cats ","confidence":0.92}`), time.Second)

	res, err := r.Resolve(context.Background(), "find me cats")
	require.NoError(t, err)
	assert.Equal(t, action.SearchWeb, res.Action)
	assert.Equal(t, "cats", res.Argument)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
}

func TestResolve_CodeFences(t *testing.T) {
	body := "Sure!\n```json\n{\"intent\": \"scroll_down\", \"argument\": \"\", \"confidence\": 0.8}\n```\nDone."
	res, err := NewResolver(replying(body), 0).Resolve(context.Background(), "neeche jao")
	require.NoError(t, err)
	assert.Equal(t, action.ScrollDown, res.Action)
}

func TestResolve_ThresholdIsExclusive(t *testing.T) {
	res, err := NewResolver(replying(`{"intent":"reload","confidence":0.7}`), 0).Resolve(context.Background(), "x")
	assert.ErrorIs(t, err, ErrLowConfidence)
	require.NotNil(t, res)
	assert.Equal(t, action.Reload, res.Action)
}

func TestResolve_UnknownIntentIsNotUnderstood(t *testing.T) {
	res, err := NewResolver(replying(`{"intent":"order_pizza","argument":"","confidence":0.95}`), 0).Resolve(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, action.NotUnderstood, res.Action)
	assert.Equal(t, "order_pizza", res.Intent)
}

func TestResolve_Malformed(t *testing.T) {
	for _, body := range []string{
		"I am not sure",
		`{"intent": "reload"}`,
		`{"argument": "x", "confidence": 0.9}`,
		`{"intent": "reload", "confidence": "high"}`,
		`{"intent": `,
		`{"intent": "close_tab", "argument": "", "confidence": 7.5}`,
		`{"intent": "reload", "confidence": -0.2}`,
	} {
		_, err := NewResolver(replying(body), 0).Resolve(context.Background(), "x")
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestResolve_ProviderFailure(t *testing.T) {
	r := NewResolver(completerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("401 unauthorized")
	}), 0)

	_, err := r.Resolve(context.Background(), "x")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestResolve_Timeout(t *testing.T) {
	r := NewResolver(completerFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), 20*time.Millisecond)

	start := time.Now()
	_, err := r.Resolve(context.Background(), "x")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestPrompt_ListsCatalog(t *testing.T) {
	p := Prompt("kholo youtube")
	for _, d := range action.Catalog {
		assert.Contains(t, p, string(d.ID))
	}
	assert.Contains(t, p, "not_understood")
	assert.Contains(t, p, "Command: kholo youtube")
	assert.NotContains(t, p, string(action.RunCustom))
}

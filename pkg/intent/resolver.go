// Package intent asks a language model what an utterance means when no
// pattern claimed it.
package intent

import (
	"VaniAssistant/pkg/action"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultTimeout      = 8 * time.Second
	ConfidenceThreshold = 0.7
)

var (
	ErrServiceUnavailable = errors.New("ai service unavailable")
	ErrMalformedResponse  = errors.New("malformed ai response")
	ErrLowConfidence      = errors.New("ai confidence too low")
)

// Completer sends one prompt to a text model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Resolution struct {
	Intent     string
	Action     action.ID
	Argument   string
	Confidence float64
}

type Resolver struct {
	completer Completer
	timeout   time.Duration
}

func NewResolver(completer Completer, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{completer: completer, timeout: timeout}
}

// Resolve maps an utterance to an action. An intent outside the catalog
// resolves to not_understood rather than an error.
func (r *Resolver) Resolve(ctx context.Context, utterance string) (*Resolution, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.completer.Complete(ctx, Prompt(utterance))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, ctx.Err())
	}

	res, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	if res.Confidence <= ConfidenceThreshold {
		return res, fmt.Errorf("%w: %.2f", ErrLowConfidence, res.Confidence)
	}

	return res, nil
}

// Prompt builds the instruction sent to the model.
func Prompt(utterance string) string {
	var b strings.Builder
	b.WriteString("You map browser voice commands to intents. The user may speak English or Hindi written in Latin script.\n")
	b.WriteString("Reply with ONLY a JSON object of the form ")
	b.WriteString(`{"intent": "<intent>", "argument": "<argument or empty>", "confidence": <0.0-1.0>}`)
	b.WriteString(".\n\nIntents:\n")
	for _, d := range action.Catalog {
		b.WriteString("- ")
		b.WriteString(string(d.ID))
		b.WriteString(": ")
		b.WriteString(d.Description)
		if d.Argument != "" {
			b.WriteString(" (argument: ")
			b.WriteString(d.Argument)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	b.WriteString("- ")
	b.WriteString(string(action.NotUnderstood))
	b.WriteString(": none of the above\n\nCommand: ")
	b.WriteString(utterance)
	b.WriteString("\n")
	return b.String()
}

type reply struct {
	Intent     *string  `json:"intent"`
	Argument   string   `json:"argument"`
	Confidence *float64 `json:"confidence"`
}

// Parse reads the first JSON object in raw, tolerating code fences and
// surrounding prose.
func Parse(raw string) (*Resolution, error) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return nil, fmt.Errorf("%w: no json object", ErrMalformedResponse)
	}

	var rep reply
	if err := jsoniter.NewDecoder(strings.NewReader(raw[start:])).Decode(&rep); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if rep.Intent == nil || rep.Confidence == nil {
		return nil, fmt.Errorf("%w: intent and confidence are required", ErrMalformedResponse)
	}
	if c := *rep.Confidence; math.IsNaN(c) || c < 0 || c > 1 {
		return nil, fmt.Errorf("%w: confidence %v outside [0, 1]", ErrMalformedResponse, c)
	}

	name := strings.ToLower(strings.TrimSpace(*rep.Intent))
	id := action.ID(name)
	if !action.Known(id) || id == action.RunCustom {
		id = action.NotUnderstood
	}

	return &Resolution{
		Intent:     name,
		Action:     id,
		Argument:   strings.TrimSpace(rep.Argument),
		Confidence: *rep.Confidence,
	}, nil
}

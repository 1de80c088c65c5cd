package action

import (
	"VaniAssistant/pkg/pageagent"
	"VaniAssistant/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	maxSelectionSpoken = 200
	maxSummarySpoken   = 600
	summarySentences   = 3
)

func (r *Registry) simple(req pageagent.Request, spoken string) Handler {
	return func(ctx context.Context, inv Invocation) (Result, error) {
		if _, err := r.send(ctx, req); err != nil {
			return Result{}, err
		}
		return Result{Spoken: spoken, Success: true}, nil
	}
}

func (r *Registry) scroll(direction pageagent.ScrollDirection, spoken string) Handler {
	return r.simple(pageagent.ScrollPage{Direction: direction, Amount: scrollAmount}, spoken)
}

func (r *Registry) openWebsite(ctx context.Context, inv Invocation) (Result, error) {
	target := strings.TrimSpace(inv.Argument)
	if target == "" {
		return Result{Spoken: "Which website should I open?"}, nil
	}

	link, ok := WebsiteURL(target)
	if !ok {
		return r.searchWeb(ctx, inv)
	}

	if _, err := r.send(ctx, pageagent.OpenTab{URL: link}); err != nil {
		return Result{URL: link}, err
	}
	return Result{Spoken: "Opening " + target, Success: true, URL: link}, nil
}

func (r *Registry) searchWeb(ctx context.Context, inv Invocation) (Result, error) {
	query := strings.TrimSpace(inv.Argument)
	if query == "" {
		return Result{Spoken: "What should I search for?"}, nil
	}

	link := SearchURL(query)
	if _, err := r.send(ctx, pageagent.OpenTab{URL: link}); err != nil {
		return Result{URL: link}, err
	}
	return Result{Spoken: "Searching for " + query, Success: true, URL: link}, nil
}

func (r *Registry) playMedia(ctx context.Context, inv Invocation) (Result, error) {
	query := strings.TrimSpace(inv.Argument)
	if query == "" {
		return Result{Spoken: "What should I play?"}, nil
	}

	link := YouTubeSearchURL(query)
	if _, err := r.send(ctx, pageagent.OpenTab{URL: link}); err != nil {
		return Result{URL: link}, err
	}
	return Result{Spoken: "Playing " + query + " on YouTube", Success: true, URL: link}, nil
}

func (r *Registry) readSelection(ctx context.Context, inv Invocation) (Result, error) {
	resp, err := r.send(ctx, pageagent.ReadSelectedText{})
	if err != nil {
		return Result{}, err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return Result{Spoken: "No text is selected"}, pageagent.ErrNoMatchingElement
	}
	return Result{Spoken: utils.Truncate(text, maxSelectionSpoken), Success: true}, nil
}

func (r *Registry) summarizePage(ctx context.Context, inv Invocation) (Result, error) {
	resp, err := r.send(ctx, pageagent.GetPageContent{})
	if err != nil {
		return Result{}, err
	}

	summary := Summarize(resp.Content, summarySentences, maxSummarySpoken)
	if summary == "" {
		return Result{Spoken: "This page has no readable content"}, pageagent.ErrNoMatchingElement
	}
	return Result{Spoken: "Here is a summary. " + summary, Success: true}, nil
}

func (r *Registry) highlightText(ctx context.Context, inv Invocation) (Result, error) {
	text := strings.TrimSpace(inv.Argument)
	if text == "" {
		return Result{Spoken: "What should I highlight?"}, nil
	}

	resp, err := r.send(ctx, pageagent.HighlightText{Text: text})
	if err != nil {
		return Result{Spoken: notFound(text, err)}, err
	}
	if !resp.Success {
		return Result{Spoken: notFound(text, pageagent.ErrNoMatchingElement)}, pageagent.ErrNoMatchingElement
	}
	return Result{Spoken: "Highlighting " + text, Success: true}, nil
}

func (r *Registry) clickElement(ctx context.Context, inv Invocation) (Result, error) {
	element := strings.TrimSpace(inv.Argument)
	if element == "" {
		return Result{Spoken: "What should I click?"}, nil
	}

	resp, err := r.send(ctx, pageagent.ClickElement{Element: element})
	if err != nil {
		return Result{Spoken: notFound(element, err)}, err
	}
	if !resp.Success {
		return Result{Spoken: notFound(element, pageagent.ErrNoMatchingElement)}, pageagent.ErrNoMatchingElement
	}
	return Result{Spoken: "Clicking " + element, Success: true}, nil
}

func (r *Registry) selectInput(ctx context.Context, inv Invocation) (Result, error) {
	position := "first"
	source := strings.ToLower(inv.Context + " " + inv.Argument)
	for _, word := range []string{"last", "aakhri", "antim"} {
		if strings.Contains(source, word) {
			position = "last"
			break
		}
	}

	resp, err := r.send(ctx, pageagent.SelectInput{Position: position})
	if err != nil {
		return Result{}, err
	}
	if !resp.Success {
		return Result{Spoken: "There is no input field on this page"}, pageagent.ErrNoMatchingElement
	}
	return Result{Spoken: fmt.Sprintf("Selecting the %s input field", position), Success: true}, nil
}

func (r *Registry) toggleMute(ctx context.Context, inv Invocation) (Result, error) {
	resp, err := r.send(ctx, pageagent.ToggleMute{})
	if err != nil {
		return Result{}, err
	}
	if resp.Muted {
		return Result{Spoken: "Tab muted", Success: true}, nil
	}
	return Result{Spoken: "Tab unmuted", Success: true}, nil
}

func (r *Registry) tellTime(ctx context.Context, inv Invocation) (Result, error) {
	now := r.clock().In(r.location)
	return Result{Spoken: "It is " + now.Format("3:04 PM"), Success: true}, nil
}

func (r *Registry) tellDate(ctx context.Context, inv Invocation) (Result, error) {
	now := r.clock().In(r.location)
	return Result{Spoken: "Today is " + now.Format("Monday, January 2, 2006"), Success: true}, nil
}

func (r *Registry) notUnderstood(ctx context.Context, inv Invocation) (Result, error) {
	utterance := strings.TrimSpace(inv.Context)
	if utterance == "" {
		utterance = inv.Argument
	}
	return Result{
		Spoken: fmt.Sprintf("Sorry, I didn't understand %q. Please rephrase.", utterance),
	}, nil
}

func notFound(target string, err error) string {
	if errors.Is(err, pageagent.ErrNoMatchingElement) {
		return fmt.Sprintf("Sorry, I couldn't find %s on this page", target)
	}
	return ""
}

package assistantService

import (
	"VaniAssistant/internal/api/assistant"
	"VaniAssistant/internal/entity"
	"VaniAssistant/pkg/action"
	contextPkg "VaniAssistant/pkg/context"
	"VaniAssistant/pkg/history"
	"VaniAssistant/pkg/intent"
	"VaniAssistant/pkg/matcher"
	"VaniAssistant/pkg/pageagent"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// MaxCustomDepth is how many custom commands may expand into one another
// before the chain is treated as an unknown command.
const MaxCustomDepth = 5

const (
	spokenNoActiveTab = "Sorry, I can't reach the current tab."
	spokenNoElement   = "Sorry, I couldn't find that on this page."
	spokenUnknown     = "Sorry, I didn't understand that. Please rephrase."
	spokenFailed      = "Sorry, something went wrong. Please try again."
	spokenLoop        = "That custom command keeps calling itself. Please rephrase it."
)

type depthKey struct{}

func withDepth(ctx context.Context, depth int) context.Context {
	return context.WithValue(ctx, depthKey{}, depth)
}

func depthFrom(ctx context.Context) int {
	depth, _ := ctx.Value(depthKey{}).(int)
	return depth
}

// ProcessCommand runs one utterance to completion. Dispatch failures are
// reported in the response, never as an error; the returned error is only
// set when the utterance is rejected before dispatch.
func (s *assistantService) ProcessCommand(ctx context.Context, utterance string) (*assistant.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if strings.TrimSpace(utterance) == "" {
		return nil, assistant.ErrEmptyUtterance
	}

	// The caller may stop waiting, but a started command always finishes and
	// is recorded.
	ctx = withDepth(context.WithoutCancel(ctx), 0)

	resp, err := s.dispatch(ctx, utterance)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"command":    utterance,
			"action":     resp.Action,
			"error_code": resp.ErrorCode,
			"error":      err.Error(),
		}).Warn("Command failed")
	} else {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"command":    utterance,
			"action":     resp.Action,
			"tier":       resp.Tier,
			"success":    resp.Success,
		}).Info("Command processed")
	}

	settings := s.state.getSettings()
	s.speak(ctx, resp.Response, settings)
	s.record(ctx, resp)

	return resp, nil
}

// dispatch walks the tiers and executes the first hit. It does not speak or
// record; only the outermost call does that.
func (s *assistantService) dispatch(ctx context.Context, utterance string) (*assistant.CommandResponse, error) {
	resp := &assistant.CommandResponse{Command: utterance, Tier: matcher.TierNone}
	settings, custom := s.state.snapshot()

	match, ok := s.matcher.Match(utterance, custom)
	if !ok && settings.AIEnabled && s.resolver != nil {
		match, ok = s.resolve(ctx, match.Context, resp)
	}
	if !ok {
		match, ok = matcher.Heuristic(utterance)
	}
	if !ok {
		res, _ := s.execute(ctx, action.Invocation{Action: action.NotUnderstood, Context: match.Context})
		resp.Action = string(action.NotUnderstood)
		resp.Response = res.Spoken
		resp.ErrorCode = assistant.CodeUnknownCommand
		if resp.Response == "" {
			resp.Response = spokenUnknown
		}
		return resp, assistant.ErrUnknownCommand
	}

	res, err := s.execute(ctx, match.Invocation())

	resp.Action = string(match.Action)
	resp.Argument = match.Argument
	resp.Tier = match.Tier
	resp.URL = res.URL
	resp.Response = res.Spoken
	resp.Success = res.Success && err == nil

	if err != nil {
		resp.ErrorCode = errorCode(err)
		if resp.Response == "" {
			resp.Response = apology(err)
		}
	}

	return resp, err
}

func (s *assistantService) resolve(ctx context.Context, utterance string, resp *assistant.CommandResponse) (matcher.Match, bool) {
	requestID := contextPkg.GetRequestID(ctx)

	res, err := s.resolver.Resolve(ctx, utterance)
	if err != nil {
		fields := logrus.Fields{
			"request_id": requestID,
			"command":    utterance,
			"error":      err.Error(),
		}
		if errors.Is(err, intent.ErrLowConfidence) {
			s.log.WithFields(fields).Debug("AI intent below confidence threshold")
		} else {
			s.log.WithFields(fields).Warn("AI intent resolution failed")
		}
		return matcher.Match{Tier: matcher.TierNone, Context: utterance}, false
	}

	resp.Confidence = res.Confidence
	return matcher.Match{
		Action:   res.Action,
		Argument: res.Argument,
		Context:  utterance,
		Tier:     matcher.TierAI,
		Phrase:   res.Intent,
	}, true
}

// execute runs a handler and turns a panic into an ordinary failure.
func (s *assistantService) execute(ctx context.Context, inv action.Invocation) (res action.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"action":     inv.Action,
				"panic":      fmt.Sprint(r),
			}).Error("Action handler panicked")
			res = action.Result{Action: inv.Action}
			err = fmt.Errorf("%w: %v", assistant.ErrActionPanicked, r)
		}
	}()

	return s.registry.Execute(ctx, inv)
}

// runCustom is the handler for the custom tier. A URL action opens the site;
// anything else is dispatched again as if it had been spoken.
func (s *assistantService) runCustom(ctx context.Context, inv action.Invocation) (action.Result, error) {
	if link, ok := action.CustomURL(inv.Argument); ok {
		return s.registry.Execute(ctx, action.Invocation{
			Action:   action.OpenWebsite,
			Argument: link,
			Context:  inv.Context,
		})
	}

	depth := depthFrom(ctx) + 1
	if depth > MaxCustomDepth {
		return action.Result{Spoken: spokenLoop}, fmt.Errorf("%w: custom commands nested deeper than %d", assistant.ErrUnknownCommand, MaxCustomDepth)
	}

	nested, err := s.dispatch(withDepth(ctx, depth), inv.Argument)
	return action.Result{
		Spoken:  nested.Response,
		Success: nested.Success,
		URL:     nested.URL,
	}, err
}

func (s *assistantService) speak(ctx context.Context, text string, settings entity.Settings) {
	if s.agent == nil || text == "" {
		return
	}

	_, err := s.agent.Send(ctx, pageagent.Speak{
		Text:   text,
		Rate:   settings.VoiceRate,
		Pitch:  settings.VoicePitch,
		Volume: settings.VoiceVolume,
		Lang:   settings.Language,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to speak response")
	}
}

func (s *assistantService) record(ctx context.Context, resp *assistant.CommandResponse) {
	requestID := contextPkg.GetRequestID(ctx)
	now := time.Now()

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return
	}

	err = s.history.Append(ctx, history.Entry{
		ID:        id,
		Command:   resp.Command,
		Response:  resp.Response,
		Action:    resp.Action,
		Success:   resp.Success,
		Timestamp: now,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to append history entry")
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, pageagent.ErrNoActiveTab):
		return assistant.CodeNoActiveTab
	case errors.Is(err, pageagent.ErrNoMatchingElement):
		return assistant.CodeNoMatchingElement
	case errors.Is(err, assistant.ErrUnknownCommand), errors.Is(err, action.ErrUnknownAction):
		return assistant.CodeUnknownCommand
	default:
		return assistant.CodeActionFailed
	}
}

func apology(err error) string {
	switch errorCode(err) {
	case assistant.CodeNoActiveTab:
		return spokenNoActiveTab
	case assistant.CodeNoMatchingElement:
		return spokenNoElement
	case assistant.CodeUnknownCommand:
		return spokenUnknown
	default:
		return spokenFailed
	}
}

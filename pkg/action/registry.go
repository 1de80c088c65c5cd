package action

import (
	"VaniAssistant/pkg/pageagent"
	"context"
	"fmt"
	"sync"
	"time"
)

const scrollAmount = 300

type Handler func(ctx context.Context, inv Invocation) (Result, error)

type Registry struct {
	agent    pageagent.Agent
	clock    func() time.Time
	location *time.Location

	mu       sync.RWMutex
	handlers map[ID]Handler
}

type Option func(*Registry)

func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		r.clock = clock
	}
}

func WithLocation(loc *time.Location) Option {
	return func(r *Registry) {
		if loc != nil {
			r.location = loc
		}
	}
}

func NewRegistry(agent pageagent.Agent, opts ...Option) *Registry {
	r := &Registry{
		agent:    agent,
		clock:    time.Now,
		location: time.Local,
		handlers: map[ID]Handler{},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.handlers[OpenWebsite] = r.openWebsite
	r.handlers[SearchWeb] = r.searchWeb
	r.handlers[PlayMedia] = r.playMedia
	r.handlers[ScrollDown] = r.scroll(pageagent.ScrollDown, "Scrolling down")
	r.handlers[ScrollUp] = r.scroll(pageagent.ScrollUp, "Scrolling up")
	r.handlers[ScrollTop] = r.scroll(pageagent.ScrollTop, "Scrolling to the top")
	r.handlers[ScrollBottom] = r.scroll(pageagent.ScrollBottom, "Scrolling to the bottom")
	r.handlers[NewTab] = r.simple(pageagent.OpenTab{}, "Opening a new tab")
	r.handlers[CloseTab] = r.simple(pageagent.CloseTab{}, "Closing tab")
	r.handlers[NextTab] = r.simple(pageagent.SwitchTab{Offset: 1}, "Switching to the next tab")
	r.handlers[PreviousTab] = r.simple(pageagent.SwitchTab{Offset: -1}, "Switching to the previous tab")
	r.handlers[GoBack] = r.simple(pageagent.Navigate{Direction: pageagent.NavBack}, "Going back")
	r.handlers[GoForward] = r.simple(pageagent.Navigate{Direction: pageagent.NavForward}, "Going forward")
	r.handlers[Reload] = r.simple(pageagent.Navigate{Direction: pageagent.NavReload}, "Reloading the page")
	r.handlers[ReadPage] = r.simple(pageagent.ReadPageContent{}, "Reading page content")
	r.handlers[PauseMedia] = r.simple(pageagent.PauseMedia{}, "Pausing media")
	r.handlers[ReadSelection] = r.readSelection
	r.handlers[SummarizePage] = r.summarizePage
	r.handlers[HighlightText] = r.highlightText
	r.handlers[ClickElement] = r.clickElement
	r.handlers[SelectInput] = r.selectInput
	r.handlers[ToggleMute] = r.toggleMute
	r.handlers[TellTime] = r.tellTime
	r.handlers[TellDate] = r.tellDate
	r.handlers[NotUnderstood] = r.notUnderstood

	return r
}

// Register installs or replaces the handler for id.
func (r *Registry) Register(id ID, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[id] = h
}

func (r *Registry) has(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[id]
	return ok
}

// Execute runs the handler bound to inv.Action. The returned Result always
// names the action; on error Spoken may be empty.
func (r *Registry) Execute(ctx context.Context, inv Invocation) (Result, error) {
	r.mu.RLock()
	h, ok := r.handlers[inv.Action]
	r.mu.RUnlock()

	if !ok {
		return Result{Action: inv.Action}, fmt.Errorf("%w: %s", ErrUnknownAction, inv.Action)
	}

	res, err := h(ctx, inv)
	res.Action = inv.Action
	if err != nil {
		res.Success = false
	}
	return res, err
}

func (r *Registry) send(ctx context.Context, req pageagent.Request) (*pageagent.Response, error) {
	if r.agent == nil {
		return nil, fmt.Errorf("%w: no page agent configured", pageagent.ErrNoActiveTab)
	}
	resp, err := r.agent.Send(ctx, req)
	if err != nil {
		return resp, err
	}
	if resp == nil {
		return nil, pageagent.ErrNoActiveTab
	}
	return resp, nil
}

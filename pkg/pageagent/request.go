// Package pageagent defines the typed requests the assistant sends to the
// browser side and the transports that carry them.
package pageagent

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

type Kind string

const (
	KindHighlightText    Kind = "HIGHLIGHT_TEXT"
	KindReadSelectedText Kind = "READ_SELECTED_TEXT"
	KindReadPageContent  Kind = "READ_PAGE_CONTENT"
	KindGetPageContent   Kind = "GET_PAGE_CONTENT"
	KindClickElement     Kind = "CLICK_ELEMENT"
	KindPauseMedia       Kind = "PAUSE_MEDIA"
	KindScrollPage       Kind = "SCROLL_PAGE"
	KindSelectInput      Kind = "SELECT_INPUT"
	KindOpenTab          Kind = "OPEN_TAB"
	KindCloseTab         Kind = "CLOSE_TAB"
	KindSwitchTab        Kind = "SWITCH_TAB"
	KindNavigate         Kind = "NAVIGATE"
	KindToggleMute       Kind = "TOGGLE_MUTE"
	KindSpeak            Kind = "SPEAK"
)

var (
	ErrNoActiveTab       = errors.New("no active tab")
	ErrNoMatchingElement = errors.New("no matching element")
	ErrUnknownKind       = errors.New("unknown page agent request")
)

// Agent executes one request against the active tab and waits for its single
// response.
type Agent interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// Request is implemented only by the variants in this package.
type Request interface {
	Kind() Kind
	isRequest()
}

type ScrollDirection string

const (
	ScrollUp     ScrollDirection = "up"
	ScrollDown   ScrollDirection = "down"
	ScrollTop    ScrollDirection = "top"
	ScrollBottom ScrollDirection = "bottom"
)

type NavDirection string

const (
	NavBack    NavDirection = "back"
	NavForward NavDirection = "forward"
	NavReload  NavDirection = "reload"
)

type HighlightText struct {
	Text string `json:"text"`
}

type ReadSelectedText struct{}

type ReadPageContent struct{}

type GetPageContent struct{}

type ClickElement struct {
	Element string `json:"element"`
}

type PauseMedia struct{}

type ScrollPage struct {
	Direction ScrollDirection `json:"direction"`
	Amount    int             `json:"amount,omitempty"`
}

type SelectInput struct {
	Position string `json:"position"`
}

type OpenTab struct {
	URL string `json:"url"`
}

type CloseTab struct{}

type SwitchTab struct {
	Offset int `json:"offset"`
}

type Navigate struct {
	Direction NavDirection `json:"direction"`
}

type ToggleMute struct{}

type Speak struct {
	Text   string  `json:"text"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
	Lang   string  `json:"lang,omitempty"`
}

func (HighlightText) Kind() Kind    { return KindHighlightText }
func (ReadSelectedText) Kind() Kind { return KindReadSelectedText }
func (ReadPageContent) Kind() Kind  { return KindReadPageContent }
func (GetPageContent) Kind() Kind   { return KindGetPageContent }
func (ClickElement) Kind() Kind     { return KindClickElement }
func (PauseMedia) Kind() Kind       { return KindPauseMedia }
func (ScrollPage) Kind() Kind       { return KindScrollPage }
func (SelectInput) Kind() Kind      { return KindSelectInput }
func (OpenTab) Kind() Kind          { return KindOpenTab }
func (CloseTab) Kind() Kind         { return KindCloseTab }
func (SwitchTab) Kind() Kind        { return KindSwitchTab }
func (Navigate) Kind() Kind         { return KindNavigate }
func (ToggleMute) Kind() Kind       { return KindToggleMute }
func (Speak) Kind() Kind            { return KindSpeak }

func (HighlightText) isRequest()    {}
func (ReadSelectedText) isRequest() {}
func (ReadPageContent) isRequest()  {}
func (GetPageContent) isRequest()   {}
func (ClickElement) isRequest()     {}
func (PauseMedia) isRequest()       {}
func (ScrollPage) isRequest()       {}
func (SelectInput) isRequest()      {}
func (OpenTab) isRequest()          {}
func (CloseTab) isRequest()         {}
func (SwitchTab) isRequest()        {}
func (Navigate) isRequest()         {}
func (ToggleMute) isRequest()       {}
func (Speak) isRequest()            {}

// Response error codes understood by Response.Err.
const (
	CodeNoActiveTab       = "no_active_tab"
	CodeNoMatchingElement = "no_matching_element"
)

type Response struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Content string `json:"content,omitempty"`
	Muted   bool   `json:"muted,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Err converts the agent's error code into one of the package sentinels.
func (r *Response) Err() error {
	switch r.Error {
	case "":
		return nil
	case CodeNoActiveTab:
		return ErrNoActiveTab
	case CodeNoMatchingElement:
		return ErrNoMatchingElement
	default:
		return fmt.Errorf("page agent: %s", r.Error)
	}
}

// ErrorCode is the inverse of Response.Err, used by agents answering a
// request that failed.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoActiveTab):
		return CodeNoActiveTab
	case errors.Is(err, ErrNoMatchingElement):
		return CodeNoMatchingElement
	default:
		return err.Error()
	}
}

// Envelope is the wire form of a request.
type Envelope struct {
	ID      string              `json:"id"`
	Type    Kind                `json:"type"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

func Encode(id string, req Request) ([]byte, error) {
	payload, err := jsoniter.Marshal(req)
	if err != nil {
		return nil, err
	}
	return jsoniter.Marshal(Envelope{ID: id, Type: req.Kind(), Payload: payload})
}

// Decode parses an envelope back into its typed request.
func Decode(data []byte) (string, Request, error) {
	var env Envelope
	if err := jsoniter.Unmarshal(data, &env); err != nil {
		return "", nil, err
	}

	var req Request
	switch env.Type {
	case KindHighlightText:
		req = &HighlightText{}
	case KindReadSelectedText:
		req = &ReadSelectedText{}
	case KindReadPageContent:
		req = &ReadPageContent{}
	case KindGetPageContent:
		req = &GetPageContent{}
	case KindClickElement:
		req = &ClickElement{}
	case KindPauseMedia:
		req = &PauseMedia{}
	case KindScrollPage:
		req = &ScrollPage{}
	case KindSelectInput:
		req = &SelectInput{}
	case KindOpenTab:
		req = &OpenTab{}
	case KindCloseTab:
		req = &CloseTab{}
	case KindSwitchTab:
		req = &SwitchTab{}
	case KindNavigate:
		req = &Navigate{}
	case KindToggleMute:
		req = &ToggleMute{}
	case KindSpeak:
		req = &Speak{}
	default:
		return env.ID, nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}

	if len(env.Payload) > 0 {
		if err := jsoniter.Unmarshal(env.Payload, req); err != nil {
			return env.ID, nil, err
		}
	}

	return env.ID, deref(req), nil
}

func deref(req Request) Request {
	switch r := req.(type) {
	case *HighlightText:
		return *r
	case *ReadSelectedText:
		return *r
	case *ReadPageContent:
		return *r
	case *GetPageContent:
		return *r
	case *ClickElement:
		return *r
	case *PauseMedia:
		return *r
	case *ScrollPage:
		return *r
	case *SelectInput:
		return *r
	case *OpenTab:
		return *r
	case *CloseTab:
		return *r
	case *SwitchTab:
		return *r
	case *Navigate:
		return *r
	case *ToggleMute:
		return *r
	case *Speak:
		return *r
	}
	return req
}

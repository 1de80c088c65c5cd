package action

import (
	"VaniAssistant/pkg/pageagent"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	mu    sync.Mutex
	sent  []pageagent.Request
	reply func(req pageagent.Request) (*pageagent.Response, error)
}

func (a *fakeAgent) Send(_ context.Context, req pageagent.Request) (*pageagent.Response, error) {
	a.mu.Lock()
	a.sent = append(a.sent, req)
	a.mu.Unlock()

	if a.reply != nil {
		return a.reply(req)
	}
	return &pageagent.Response{Success: true}, nil
}

func (a *fakeAgent) last(t *testing.T) pageagent.Request {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	require.NotEmpty(t, a.sent)
	return a.sent[len(a.sent)-1]
}

func TestRegistry_OpenWebsite(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantURL string
	}{
		{"dotted host", "youtube.com", "https://youtube.com"},
		{"bare name", "github", "https://www.github.com"},
		{"absolute url", "https://example.org/a", "https://example.org/a"},
		{"phrase falls back to search", "the weather today", "https://www.google.com/search?q=the+weather+today"},
		{"invalid host falls back to search", "\xff\xfe.com", "https://www.google.com/search?q=%FF%FE.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &fakeAgent{}
			r := NewRegistry(agent)

			res, err := r.Execute(context.Background(), Invocation{Action: OpenWebsite, Argument: tt.arg})
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.Equal(t, OpenWebsite, res.Action)
			assert.Equal(t, tt.wantURL, res.URL)
			assert.Equal(t, pageagent.OpenTab{URL: tt.wantURL}, agent.last(t))
		})
	}
}

func TestRegistry_OpenWebsiteWithoutTarget(t *testing.T) {
	agent := &fakeAgent{}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: OpenWebsite, Argument: "  "})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Spoken)
	assert.Empty(t, agent.sent)
}

func TestRegistry_SearchWeb(t *testing.T) {
	agent := &fakeAgent{}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: SearchWeb, Argument: "cats"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Searching for cats", res.Spoken)
	assert.Equal(t, "https://www.google.com/search?q=cats", res.URL)
}

func TestRegistry_PlayMedia(t *testing.T) {
	agent := &fakeAgent{}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: PlayMedia, Argument: "lofi beats"})
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/results?search_query=lofi+beats", res.URL)
	assert.Equal(t, "Playing lofi beats on YouTube", res.Spoken)
}

func TestRegistry_SimpleRequests(t *testing.T) {
	tests := []struct {
		id   ID
		want pageagent.Request
	}{
		{ScrollDown, pageagent.ScrollPage{Direction: pageagent.ScrollDown, Amount: 300}},
		{ScrollTop, pageagent.ScrollPage{Direction: pageagent.ScrollTop, Amount: 300}},
		{NewTab, pageagent.OpenTab{}},
		{CloseTab, pageagent.CloseTab{}},
		{NextTab, pageagent.SwitchTab{Offset: 1}},
		{PreviousTab, pageagent.SwitchTab{Offset: -1}},
		{GoBack, pageagent.Navigate{Direction: pageagent.NavBack}},
		{Reload, pageagent.Navigate{Direction: pageagent.NavReload}},
		{ReadPage, pageagent.ReadPageContent{}},
		{PauseMedia, pageagent.PauseMedia{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			agent := &fakeAgent{}
			r := NewRegistry(agent)

			res, err := r.Execute(context.Background(), Invocation{Action: tt.id})
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.NotEmpty(t, res.Spoken)
			assert.Equal(t, tt.want, agent.last(t))
		})
	}
}

func TestRegistry_NoAgent(t *testing.T) {
	r := NewRegistry(nil)

	res, err := r.Execute(context.Background(), Invocation{Action: ScrollDown})
	assert.ErrorIs(t, err, pageagent.ErrNoActiveTab)
	assert.False(t, res.Success)
	assert.Equal(t, ScrollDown, res.Action)
}

func TestRegistry_AgentErrorMarksFailure(t *testing.T) {
	agent := &fakeAgent{reply: func(pageagent.Request) (*pageagent.Response, error) {
		return nil, pageagent.ErrNoActiveTab
	}}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: SearchWeb, Argument: "go"})
	assert.ErrorIs(t, err, pageagent.ErrNoActiveTab)
	assert.False(t, res.Success)
}

func TestRegistry_ClickElementNotFound(t *testing.T) {
	agent := &fakeAgent{reply: func(pageagent.Request) (*pageagent.Response, error) {
		return &pageagent.Response{Success: false}, nil
	}}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: ClickElement, Argument: "sign in"})
	assert.ErrorIs(t, err, pageagent.ErrNoMatchingElement)
	assert.False(t, res.Success)
	assert.Equal(t, "Sorry, I couldn't find sign in on this page", res.Spoken)
}

func TestRegistry_HighlightText(t *testing.T) {
	agent := &fakeAgent{}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: HighlightText, Argument: "pricing"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, pageagent.HighlightText{Text: "pricing"}, agent.last(t))
}

func TestRegistry_ReadSelection(t *testing.T) {
	t.Run("empty selection", func(t *testing.T) {
		agent := &fakeAgent{reply: func(pageagent.Request) (*pageagent.Response, error) {
			return &pageagent.Response{Success: true}, nil
		}}
		r := NewRegistry(agent)

		res, err := r.Execute(context.Background(), Invocation{Action: ReadSelection})
		assert.ErrorIs(t, err, pageagent.ErrNoMatchingElement)
		assert.Equal(t, "No text is selected", res.Spoken)
	})

	t.Run("selection is read", func(t *testing.T) {
		agent := &fakeAgent{reply: func(pageagent.Request) (*pageagent.Response, error) {
			return &pageagent.Response{Success: true, Content: "  hello world  "}, nil
		}}
		r := NewRegistry(agent)

		res, err := r.Execute(context.Background(), Invocation{Action: ReadSelection})
		require.NoError(t, err)
		assert.Equal(t, "hello world", res.Spoken)
	})
}

func TestRegistry_SummarizePage(t *testing.T) {
	agent := &fakeAgent{reply: func(pageagent.Request) (*pageagent.Response, error) {
		return &pageagent.Response{Success: true, Content: "One. Two! Three? Four."}, nil
	}}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: SummarizePage})
	require.NoError(t, err)
	assert.Equal(t, "Here is a summary. One. Two! Three?", res.Spoken)
	assert.Equal(t, pageagent.GetPageContent{}, agent.last(t))
}

func TestRegistry_SelectInputPosition(t *testing.T) {
	agent := &fakeAgent{}
	r := NewRegistry(agent)

	_, err := r.Execute(context.Background(), Invocation{Action: SelectInput, Context: "select last input"})
	require.NoError(t, err)
	assert.Equal(t, pageagent.SelectInput{Position: "last"}, agent.last(t))

	_, err = r.Execute(context.Background(), Invocation{Action: SelectInput, Context: "first input"})
	require.NoError(t, err)
	assert.Equal(t, pageagent.SelectInput{Position: "first"}, agent.last(t))
}

func TestRegistry_ToggleMute(t *testing.T) {
	agent := &fakeAgent{reply: func(pageagent.Request) (*pageagent.Response, error) {
		return &pageagent.Response{Success: true, Muted: true}, nil
	}}
	r := NewRegistry(agent)

	res, err := r.Execute(context.Background(), Invocation{Action: ToggleMute})
	require.NoError(t, err)
	assert.Equal(t, "Tab muted", res.Spoken)
}

func TestRegistry_TimeAndDate(t *testing.T) {
	fixed := time.Date(2024, time.March, 4, 15, 7, 0, 0, time.UTC)
	r := NewRegistry(nil, WithClock(func() time.Time { return fixed }), WithLocation(time.UTC))

	res, err := r.Execute(context.Background(), Invocation{Action: TellTime})
	require.NoError(t, err)
	assert.Equal(t, "It is 3:07 PM", res.Spoken)

	res, err = r.Execute(context.Background(), Invocation{Action: TellDate})
	require.NoError(t, err)
	assert.Equal(t, "Today is Monday, March 4, 2024", res.Spoken)
}

func TestRegistry_NotUnderstood(t *testing.T) {
	r := NewRegistry(nil)

	res, err := r.Execute(context.Background(), Invocation{Action: NotUnderstood, Context: "asdkjasd"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, `Sorry, I didn't understand "asdkjasd". Please rephrase.`, res.Spoken)
}

func TestRegistry_UnknownAction(t *testing.T) {
	r := NewRegistry(nil)

	res, err := r.Execute(context.Background(), Invocation{Action: "fly"})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, ID("fly"), res.Action)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)
	assert.False(t, r.has(RunCustom))

	r.Register(RunCustom, func(ctx context.Context, inv Invocation) (Result, error) {
		return Result{Spoken: "ran " + inv.Argument, Success: true}, nil
	})
	assert.True(t, r.has(RunCustom))

	res, err := r.Execute(context.Background(), Invocation{Action: RunCustom, Argument: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ran x", res.Spoken)
}

func TestRegistry_HandlerErrorOverridesSuccess(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(RunCustom, func(context.Context, Invocation) (Result, error) {
		return Result{Success: true}, errors.New("boom")
	})

	res, err := r.Execute(context.Background(), Invocation{Action: RunCustom})
	assert.Error(t, err)
	assert.False(t, res.Success)
}

func TestCatalogIsKnown(t *testing.T) {
	for _, d := range Catalog {
		assert.True(t, Known(d.ID), d.ID)
	}
	assert.True(t, Known(NotUnderstood))
	assert.False(t, Known("fly"))
}

func TestWebsiteURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"youtube.com", "https://youtube.com", true},
		{"YouTube.com.", "https://youtube.com", true},
		{"docs.go.dev/Doc", "https://docs.go.dev/Doc", true},
		{"http://x.org", "http://x.org", true},
		{"wikipedia", "https://www.wikipedia.com", true},
		{"two words", "", false},
		{"", "", false},
		{"\xff\xfe.com", "", false},
		{"bad_host.com", "", false},
		{"-dash.com", "", false},
		{"a..b", "", false},
		{"https://\xff.org/x", "", false},
		{"http://localhost:8080", "http://localhost:8080", true},
		{"127.0.0.1/admin", "https://127.0.0.1/admin", true},
	}

	for _, tt := range tests {
		got, ok := WebsiteURL(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestCustomURL(t *testing.T) {
	got, ok := CustomURL("https://food.example.com")
	assert.True(t, ok)
	assert.Equal(t, "https://food.example.com", got)

	got, ok = CustomURL("food.example.com")
	assert.True(t, ok)
	assert.Equal(t, "https://food.example.com", got)

	_, ok = CustomURL("scroll down")
	assert.False(t, ok)

	_, ok = CustomURL("github")
	assert.False(t, ok)

	_, ok = CustomURL("\xff\xfe.com")
	assert.False(t, ok)

	_, ok = CustomURL("https://\xff\xfe.com")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "", Summarize("   ", 3, 100))
	assert.Equal(t, "A b. C d.", Summarize("A   b.\n\nC d. E f.", 2, 100))
	assert.Equal(t, "one two...", Summarize("one two three", 3, 9))
}

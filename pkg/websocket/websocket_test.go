package websocketPkg

import (
	"VaniAssistant/pkg/pageagent"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAgent struct {
	mu   sync.Mutex
	seen []pageagent.Request
}

func (a *recordingAgent) Send(_ context.Context, req pageagent.Request) (*pageagent.Response, error) {
	a.mu.Lock()
	a.seen = append(a.seen, req)
	a.mu.Unlock()

	if c, ok := req.(pageagent.ClickElement); ok && c.Element == "missing" {
		return &pageagent.Response{}, pageagent.ErrNoMatchingElement
	}
	return &pageagent.Response{Success: true, Content: "ok"}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func startHub(t *testing.T, wantToken string) (*pageagent.Hub, string) {
	t.Helper()

	hub := pageagent.NewHub(quietLogger(), 2*time.Second)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantToken != "" && r.Header.Get("Authorization") != "Bearer "+wantToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve("test-agent", conn)
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestAgentClient_AnswersHubRequests(t *testing.T) {
	hub, url := startHub(t, "secret")
	agent := &recordingAgent{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := NewAgentClient(url, agent, quietLogger(), Options{Token: "secret", RetryDelay: 50 * time.Millisecond})
	go client.Run(ctx)

	require.Eventually(t, hub.Connected, 2*time.Second, 10*time.Millisecond)
	assert.True(t, client.IsConnected())

	resp, err := hub.Send(context.Background(), pageagent.ScrollPage{Direction: pageagent.ScrollDown, Amount: 300})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Content)

	_, err = hub.Send(context.Background(), pageagent.ClickElement{Element: "missing"})
	assert.ErrorIs(t, err, pageagent.ErrNoMatchingElement)

	agent.mu.Lock()
	defer agent.mu.Unlock()
	require.Len(t, agent.seen, 2)
	assert.Equal(t, pageagent.ScrollPage{Direction: pageagent.ScrollDown, Amount: 300}, agent.seen[0])
}

func TestAgentClient_StopsOnCancel(t *testing.T) {
	hub, url := startHub(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	client := NewAgentClient(url, &recordingAgent{}, quietLogger(), Options{RetryDelay: 50 * time.Millisecond})
	done := make(chan error, 1)
	go func() { done <- client.Run(ctx) }()

	require.Eventually(t, hub.Connected, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("client did not stop")
	}
	assert.False(t, client.IsConnected())
	assert.Eventually(t, func() bool { return !hub.Connected() }, 2*time.Second, 10*time.Millisecond)
}

func TestAgentClient_RejectedTokenRetries(t *testing.T) {
	hub, url := startHub(t, "secret")
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	client := NewAgentClient(url, &recordingAgent{}, quietLogger(), Options{Token: "wrong", RetryDelay: 20 * time.Millisecond})
	assert.NoError(t, client.Run(ctx))
	assert.False(t, hub.Connected())
}

package config

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAssistantConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "STORAGE_DRIVER", "AI_PROVIDER", "PAGE_AGENT_DRIVER",
		"HISTORY_CAPACITY", "AI_TIMEOUT", "PAGE_AGENT_TIMEOUT", "ASSISTANT_TIMEZONE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadAssistantConfig()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, AIProviderNone, cfg.AIProvider)
	assert.Equal(t, PageAgentWebsocket, cfg.PageAgentDriver)
	assert.Equal(t, 50, cfg.HistoryCapacity)
	assert.Equal(t, 8*time.Second, cfg.AITimeout)
	assert.Equal(t, 5*time.Second, cfg.PageAgentTimeout)
}

func TestLoadAssistantConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("PAGE_AGENT_DRIVER", "playwright")
	t.Setenv("HISTORY_CAPACITY", "8")
	t.Setenv("AI_TIMEOUT", "3")
	t.Setenv("PAGE_AGENT_TIMEOUT", "750ms")
	t.Setenv("PLAYWRIGHT_HEADLESS", "true")
	t.Setenv("ASSISTANT_TIMEZONE", "Asia/Kolkata")

	cfg, err := LoadAssistantConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageRedis, cfg.StorageDriver)
	assert.Equal(t, AIProviderGemini, cfg.AIProvider)
	assert.Equal(t, PageAgentPlaywright, cfg.PageAgentDriver)
	assert.Equal(t, 8, cfg.HistoryCapacity)
	assert.Equal(t, 3*time.Second, cfg.AITimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.PageAgentTimeout)
	assert.True(t, cfg.PlaywrightHeadless)
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone.String())
}

func TestLoadAssistantConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORAGE_DRIVER", "mongo"},
		{"AI_PROVIDER", "llama"},
		{"PAGE_AGENT_DRIVER", "selenium"},
		{"HISTORY_CAPACITY", "0"},
		{"HISTORY_CAPACITY", "many"},
		{"AI_TIMEOUT", "soon"},
		{"PAGE_AGENT_TIMEOUT", "-1s"},
		{"PLAYWRIGHT_HEADLESS", "maybe"},
		{"ASSISTANT_TIMEZONE", "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadAssistantConfig()
			assert.Error(t, err)
		})
	}
}

func newTestServer(t *testing.T, cfg AssistantConfig) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	server, err := NewServer(
		WithFiber(NewFiber(logger)),
		WithLogger(logger),
		WithConfig(cfg),
		WithValidator(NewValidator()),
		WithMiddleware(),
		WithUtils(),
		WithStore(),
		WithPageAgent(),
		WithIntentResolver(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.release() })
	return server
}

func TestServer_RoutesAndHealthCheck(t *testing.T) {
	server := newTestServer(t, DefaultAssistantConfig())
	require.NoError(t, server.RegisterHandler())
	server.Mount()

	resp, err := server.engine.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = server.engine.Test(httptest.NewRequest("GET", "/api/v1/assistant/settings", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = server.engine.Test(httptest.NewRequest("GET", "/api/v1/nope", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestServer_PatternTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o600))

	cfg := DefaultAssistantConfig()
	cfg.PatternTablePath = path
	server := newTestServer(t, cfg)

	assert.Error(t, server.RegisterHandler())
}

func TestNewServer_RequiresEngineAndLogger(t *testing.T) {
	_, err := NewServer()
	assert.Error(t, err)

	_, err = NewServer(WithFiber(NewFiber(logrus.New())))
	assert.Error(t, err)
}

func TestWithIntentResolver_MissingCredential(t *testing.T) {
	t.Setenv("AI_ENDPOINT", "")

	cfg := DefaultAssistantConfig()
	cfg.AIProvider = AIProviderHTTP

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	_, err := NewServer(WithLogger(logger), WithConfig(cfg), WithIntentResolver())
	assert.Error(t, err)
}

package textgen

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object", `{"generated_text": "{\"intent\":\"reload\"}"}`, `{"intent":"reload"}`},
		{"list", `[{"generated_text": "hello"}]`, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

				var req request
				raw, _ := io.ReadAll(r.Body)
				require.NoError(t, jsoniter.Unmarshal(raw, &req))
				assert.Equal(t, "the prompt", req.Inputs)

				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			out, err := New(srv.URL, "secret", srv.Client()).Complete(context.Background(), "the prompt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestComplete_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"unauthorized", http.StatusUnauthorized, ``},
		{"empty list", http.StatusOK, `[]`},
		{"missing field", http.StatusOK, `{"text":"x"}`},
		{"not json", http.StatusOK, `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL, "k", srv.Client()).Complete(context.Background(), "p")
			assert.Error(t, err)
		})
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("AI_ENDPOINT", "")
	t.Setenv("AI_API_KEY", "k")
	_, err := NewFromEnv()
	assert.ErrorIs(t, err, ErrMissingEndpoint)

	t.Setenv("AI_ENDPOINT", "http://localhost:1")
	t.Setenv("AI_API_KEY", "")
	_, err = NewFromEnv()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

package llm

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/edgard/recapbot/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// chatServer answers chat completions with content and records the decoded request body.
func chatServer(t *testing.T, status int, content string, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"backend down","type":"server_error"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func openAIConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider: ProviderOpenAI,
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Model:    "test-model",
		Timeout:  5 * time.Second,
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	req := require.New(t)
	var body map[string]any
	srv := chatServer(t, http.StatusOK, "A short summary.", &body)

	client, err := NewClient(context.Background(), openAIConfig(srv.URL), discardLogger())
	req.NoError(err)
	req.Equal(ProviderOpenAI, client.Provider())

	text, err := client.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "persona"},
			{Role: RoleUser, Content: "transcript"},
		},
		Temperature: 0.5,
		MaxTokens:   200,
	})

	req.NoError(err)
	req.Equal("A short summary.", text)
	req.Equal("test-model", body["model"])
	req.InDelta(0.5, body["temperature"], 0.0001)
	req.InDelta(200, body["max_tokens"], 0)
	msgs, ok := body["messages"].([]any)
	req.True(ok)
	req.Len(msgs, 2)
	req.Equal("system", msgs[0].(map[string]any)["role"])
	req.Equal("user", msgs[1].(map[string]any)["role"])
}

func TestOpenAIClient_EmptyCompletion(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "", nil)
	client, err := NewClient(context.Background(), openAIConfig(srv.URL), discardLogger())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOpenAIClient_BackendError(t *testing.T) {
	srv := chatServer(t, http.StatusServiceUnavailable, "", nil)
	client, err := NewClient(context.Background(), openAIConfig(srv.URL), discardLogger())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	require.ErrorContains(t, err, "chat completion failed")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "llamafile", APIKey: "k"}, discardLogger())
	require.ErrorContains(t, err, "unknown completion provider")

	_, err = NewClient(context.Background(), config.LLMConfig{Provider: ProviderOpenAI}, discardLogger())
	require.ErrorContains(t, err, "API key is required")
}

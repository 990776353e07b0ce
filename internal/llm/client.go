// Package llm provides the completion backends used to summarize conversations.
// Every backend performs exactly one request per call; callers decide about retries.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/recapbot/internal/config"
	"github.com/edgard/recapbot/internal/metrics"
)

// Role is the author role of a completion message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one {role, content} pair of a completion request.
type Message struct {
	Role    Role
	Content string
}

// Request is a single completion exchange.
type Request struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Client sends completion requests to a language model service.
type Client interface {
	// Complete returns the generated text for req.
	Complete(ctx context.Context, req Request) (string, error)
	// Provider names the backend, e.g. "openai" or "gemini".
	Provider() string
}

// ErrEmptyCompletion is returned when the service answers without any text.
var ErrEmptyCompletion = errors.New("completion returned no text")

// NewClient selects the backend configured in cfg.Provider.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Initializing completion client", "provider", cfg.Provider, "model", cfg.Model)

	var (
		client Client
		err    error
	)
	switch cfg.Provider {
	case ProviderOpenAI:
		client, err = newOpenAIClient(cfg, logger)
	case ProviderGemini:
		client, err = newGeminiClient(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown completion provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	return instrumented{Client: client}, nil
}

// instrumented records request latency and status for any backend.
type instrumented struct {
	Client
}

func (c instrumented) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := c.Client.Complete(ctx, req)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.LLMRequestDuration.WithLabelValues(c.Provider(), status).Observe(time.Since(start).Seconds())
	return text, err
}

package summary

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/edgard/recapbot/internal/llm"
)

// Reference generation policy.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
)

// Summarizer sends a transcript to the completion backend. It makes exactly one attempt.
type Summarizer struct {
	client      llm.Client
	temperature float32
	maxTokens   int
	logger      *slog.Logger
}

// NewSummarizer wraps client with the given sampling policy.
func NewSummarizer(client llm.Client, temperature float32, maxTokens int, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Summarizer{
		client:      client,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger.With("component", "summarizer"),
	}
}

// Summarize returns the summary text for transcript under the persona system instruction.
// Every failure, including an empty completion, is reported as a *SummarizationError.
func (s *Summarizer) Summarize(ctx context.Context, transcript Transcript, persona string) (string, error) {
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: persona},
			{Role: llm.RoleUser, Content: userPromptPrefix + transcript.String()},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	s.logger.DebugContext(ctx, "Requesting summary", "lines", transcript.Len(), "provider", s.client.Provider())
	text, err := s.client.Complete(ctx, req)
	text = SanitizeCompletion(text)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyCompletion
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Summarization failed", "provider", s.client.Provider(), "error", err)
		return "", &SummarizationError{Err: err}
	}
	return text, nil
}

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/edgard/recapbot/internal/config"
)

// Provider identifiers accepted in configuration.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// openAIClient talks to any OpenAI-compatible chat completions endpoint (OpenAI, Groq, ...).
type openAIClient struct {
	client openai.Client
	model  string
	log    *slog.Logger
}

func newOpenAIClient(cfg config.LLMConfig, logger *slog.Logger) (*openAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultLLMBaseURL
	}
	opts = append(opts, option.WithBaseURL(baseURL))
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	log := logger.With("component", "openai_client")
	log.Info("OpenAI-compatible client initialized", "base_url", baseURL, "model", cfg.Model)
	return &openAIClient{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		log:    log,
	}, nil
}

func (c *openAIClient) Provider() string { return ProviderOpenAI }

func (c *openAIClient) Complete(ctx context.Context, req Request) (string, error) {
	c.log.DebugContext(ctx, "Requesting completion", "message_count", len(req.Messages), "max_tokens", req.MaxTokens)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: openai.Float(float64(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "Completion request failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.log.WarnContext(ctx, "Completion response carried no text", "choices", len(resp.Choices))
		return "", ErrEmptyCompletion
	}

	c.log.DebugContext(ctx, "Completion received",
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

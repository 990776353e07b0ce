package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/edgard/recapbot/internal/llm"
	"github.com/edgard/recapbot/internal/metrics"
)

// probeTimeout bounds a single connectivity probe.
const probeTimeout = 30 * time.Second

var probeRequest = llm.Request{
	Messages: []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a helpful assistant."},
		{Role: llm.RoleUser, Content: "Hello!"},
	},
	Temperature: 0.7,
	MaxTokens:   100,
}

// ProbeLLM sends a tiny completion to check that the backend answers and records the
// result in the recap_llm_up gauge.
func ProbeLLM(ctx context.Context, client llm.Client) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if _, err := client.Complete(ctx, probeRequest); err != nil {
		metrics.LLMUp.Set(0)
		return fmt.Errorf("%s completion backend probe failed: %w", client.Provider(), err)
	}
	metrics.LLMUp.Set(1)
	return nil
}

func newLLMProbeTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", TaskLLMProbe)
	if deps.Config != nil {
		log = log.With("model", deps.Config.LLM.Model, "base_url", deps.Config.LLM.BaseURL)
	}

	return func(ctx context.Context) error {
		if err := ProbeLLM(ctx, deps.LLM); err != nil {
			log.WarnContext(ctx, "Completion backend unreachable", "error", err)
			return err
		}
		log.InfoContext(ctx, "Completion backend reachable", "provider", deps.LLM.Provider())
		return nil
	}
}

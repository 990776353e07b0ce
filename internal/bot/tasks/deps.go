// Package tasks implements the scheduled background tasks of the bot.
package tasks

import (
	"log/slog"

	"github.com/edgard/recapbot/internal/config"
	"github.com/edgard/recapbot/internal/llm"
)

// TaskDeps contains the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	LLM    llm.Client
	Config *config.Config
}

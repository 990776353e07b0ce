package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/recapbot/internal/config"
	"github.com/edgard/recapbot/internal/summary"
)

// SummaryService runs the two summary flows; *summary.Engine implements it.
type SummaryService interface {
	Summarize(ctx context.Context, req summary.Request) (summary.Result, error)
	SummarizeRange(ctx context.Context, req summary.RangeRequest) (summary.Result, error)
}

// HandlerDeps provides dependencies for Discord interaction handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Summaries SummaryService
}

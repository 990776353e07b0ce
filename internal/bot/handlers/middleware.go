// Package handlers contains the Discord interaction handlers, their registration logic
// and middleware.
package handlers

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/discord"
	"github.com/edgard/recapbot/internal/metrics"
)

// Recover stops a panicking handler from taking the process down.
func Recover(log *slog.Logger) discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		return func(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
			defer func() {
				if rec := recover(); rec != nil {
					log.ErrorContext(ctx, "Handler panicked",
						"name", discord.InteractionName(i),
						"panic", rec,
						"stack", string(debug.Stack()))
				}
			}()
			next(ctx, r, i)
		}
	}
}

// Instrument counts interactions and records their duration.
func Instrument() discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		return func(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
			name := discord.InteractionName(i)
			metrics.InteractionsTotal.WithLabelValues(i.Type.String(), name).Inc()
			start := time.Now()
			next(ctx, r, i)
			metrics.InteractionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}
	}
}

// Timeout bounds the handler's context; a non-positive d leaves it unbounded.
func Timeout(d time.Duration) discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			next(ctx, r, i)
		}
	}
}

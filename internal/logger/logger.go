// Package logger provides structured logging for recapbot.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/edgard/recapbot/internal/discord"
)

// NewLogger creates a new slog Logger with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

type requestIDKey struct{}

// RequestID returns the request ID the middleware attached to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Middleware creates a logging middleware for Discord interactions.
// It tags each interaction with a request ID and logs its start and finish.
func Middleware(log *slog.Logger) discord.Middleware {
	return func(next discord.HandlerFunc) discord.HandlerFunc {
		return func(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
			startTime := time.Now()
			requestID := uuid.NewString()
			ctx = WithRequestID(ctx, requestID)

			logEntry := log.With(
				"request_id", requestID,
				"interaction_id", i.ID,
				"interaction_type", i.Type.String(),
				"name", discord.InteractionName(i),
				"guild_id", i.GuildID,
				"channel_id", i.ChannelID,
			)
			if u := discord.InteractionUser(i); u != nil {
				logEntry = logEntry.With("user_id", u.ID, "username", u.Username)
			}

			logEntry.InfoContext(ctx, "Processing interaction")

			next(ctx, r, i)

			duration := time.Since(startTime)
			logEntry.InfoContext(ctx, "Finished processing interaction", "duration", duration)
		}
	}
}

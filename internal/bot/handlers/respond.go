package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/config"
	"github.com/edgard/recapbot/internal/discord"
	"github.com/edgard/recapbot/internal/summary"
)

// errorReplyTimeout bounds the follow-up that reports a timed-out request.
const errorReplyTimeout = 10 * time.Second

// userMessage maps a pipeline error onto the configured user-facing text.
func userMessage(msgs config.MessagesConfig, err error) string {
	var te *summary.TemporalExpressionError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return msgs.Timeout
	case errors.As(err, &te):
		if te.Field == summary.FieldTo {
			return msgs.InvalidToTime
		}
		return msgs.InvalidFromTime
	case errors.Is(err, summary.ErrInvertedWindow):
		return msgs.InvertedWindow
	case errors.Is(err, summary.ErrInvalidMessageLink):
		return msgs.InvalidLink
	case errors.Is(err, summary.ErrEndpointChannelMismatch):
		return msgs.ChannelMismatch
	case errors.Is(err, summary.ErrEndpointNotFound):
		return msgs.EndpointNotFound
	case errors.Is(err, summary.ErrSummarizationUnavailable):
		return msgs.SummarizationFailed
	default:
		return msgs.GeneralError
	}
}

// replyMessages turns a pipeline outcome into the ordered follow-up texts.
func replyMessages(msgs config.MessagesConfig, res summary.Result, err error) []string {
	if err != nil {
		return []string{userMessage(msgs, err)}
	}
	var out []string
	if res.Empty {
		out = []string{msgs.NoMessages}
	} else {
		out = append(out, res.Chunks...)
	}
	if res.FailedChannels > 0 {
		out = append(out, fmt.Sprintf(msgs.PartialChannels, res.FailedChannels))
	}
	return out
}

// deliver sends the outcome of a deferred interaction. Shutdown cancellation sends
// nothing; a timeout is still reported on a fresh short-lived context.
func deliver(ctx context.Context, log *slog.Logger, deps HandlerDeps, r discord.Responder, i *discordgo.Interaction, ephemeral bool, res summary.Result, err error) {
	if errors.Is(err, context.Canceled) {
		log.InfoContext(ctx, "Summary request cancelled", "error", err)
		return
	}
	if err != nil {
		log.InfoContext(ctx, "Summary request failed", "error", err)
	}

	sendCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), errorReplyTimeout)
		defer cancel()
	}

	texts := replyMessages(deps.Config.Messages, res, err)
	sent, sendErr := discord.FollowUp(sendCtx, r, i, ephemeral, texts...)
	if sendErr != nil {
		log.ErrorContext(ctx, "Failed to deliver reply", "sent", sent, "total", len(texts), "error", sendErr)
		return
	}
	log.DebugContext(ctx, "Reply delivered", "messages", sent, "ephemeral", ephemeral)
}

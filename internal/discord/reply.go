package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/metrics"
)

func replyFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

// Defer acknowledges i so the bot can take longer than the three-second response
// window; the eventual answer arrives as follow-ups with the same visibility.
func Defer(ctx context.Context, r Responder, i *discordgo.Interaction, ephemeral bool) error {
	err := r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: replyFlags(ephemeral)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to defer interaction: %w", err)
	}
	return nil
}

// FollowUp sends chunks in order as follow-up messages. It stops at the first failed
// send or when ctx is done and reports how many chunks were delivered.
func FollowUp(ctx context.Context, r Responder, i *discordgo.Interaction, ephemeral bool, chunks ...string) (int, error) {
	for n, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		_, err := r.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
			Content:         chunk,
			Flags:           replyFlags(ephemeral),
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}, discordgo.WithContext(ctx))
		if err != nil {
			return n, fmt.Errorf("failed to send follow-up %d of %d: %w", n+1, len(chunks), err)
		}
		metrics.ChunksDelivered.Inc()
	}
	return len(chunks), nil
}

// ShowModal answers i with a modal dialog.
func ShowModal(ctx context.Context, r Responder, i *discordgo.Interaction, modal *discordgo.InteractionResponseData) error {
	err := r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open modal: %w", err)
	}
	return nil
}

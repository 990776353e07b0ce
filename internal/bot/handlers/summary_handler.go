package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/discord"
	"github.com/edgard/recapbot/internal/logger"
	"github.com/edgard/recapbot/internal/summary"
)

// NewSummaryHandler returns a handler for the /summary command.
func NewSummaryHandler(deps HandlerDeps) discord.HandlerFunc {
	return summaryHandler{deps}.Handle
}

// summaryHandler summarizes a time window of this channel or the whole guild.
type summaryHandler struct {
	deps HandlerDeps
}

func (h summaryHandler) Handle(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", CommandSummary, "request_id", logger.RequestID(ctx))

	opts := parseSummaryOptions(i.ApplicationCommandData().Options, h.deps.Config.Discord.DefaultEphemeral)
	if err := discord.Defer(ctx, r, i.Interaction, opts.Ephemeral); err != nil {
		log.ErrorContext(ctx, "Failed to acknowledge interaction", "error", err)
		return
	}

	log.InfoContext(ctx, "Handling /summary command",
		"from", opts.From, "to", opts.To, "users", opts.Users,
		"all_channels", opts.AllChannels, "ephemeral", opts.Ephemeral)

	res, err := h.deps.Summaries.Summarize(ctx, summary.Request{
		From:        opts.From,
		To:          opts.To,
		Users:       opts.Users,
		AllChannels: opts.AllChannels,
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
	})
	deliver(ctx, log, h.deps, r, i.Interaction, opts.Ephemeral, res, err)
}

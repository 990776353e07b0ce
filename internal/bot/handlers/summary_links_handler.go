package handlers

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/discord"
	"github.com/edgard/recapbot/internal/logger"
	"github.com/edgard/recapbot/internal/summary"
)

// NewSummaryLinksHandler returns a handler for the /summary_links command, which only
// opens the link modal.
func NewSummaryLinksHandler(deps HandlerDeps) discord.HandlerFunc {
	return func(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
		if err := discord.ShowModal(ctx, r, i.Interaction, summaryLinksModal()); err != nil {
			deps.Logger.ErrorContext(ctx, "Failed to open summary links modal",
				"handler", CommandSummaryLinks, "request_id", logger.RequestID(ctx), "error", err)
		}
	}
}

// NewSummaryLinksSubmitHandler returns a handler for the link modal submission.
func NewSummaryLinksSubmitHandler(deps HandlerDeps) discord.HandlerFunc {
	return summaryLinksSubmitHandler{deps}.Handle
}

// summaryLinksSubmitHandler summarizes the messages between two links.
type summaryLinksSubmitHandler struct {
	deps HandlerDeps
}

func (h summaryLinksSubmitHandler) Handle(ctx context.Context, r discord.Responder, i *discordgo.InteractionCreate) {
	log := h.deps.Logger.With("handler", ModalSummaryLinks, "request_id", logger.RequestID(ctx))

	values := modalValues(i.ModalSubmitData())
	ephemeral := isTruthy(values[inputEphemeral])
	if err := discord.Defer(ctx, r, i.Interaction, ephemeral); err != nil {
		log.ErrorContext(ctx, "Failed to acknowledge modal submission", "error", err)
		return
	}

	log.InfoContext(ctx, "Handling summary links submission",
		"start_link", values[inputStartLink], "end_link", values[inputEndLink], "ephemeral", ephemeral)

	res, err := h.deps.Summaries.SummarizeRange(ctx, summary.RangeRequest{
		StartLink: values[inputStartLink],
		EndLink:   values[inputEndLink],
	})
	deliver(ctx, log, h.deps, r, i.Interaction, ephemeral, res, err)
}

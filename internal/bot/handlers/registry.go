package handlers

import (
	"github.com/bwmarrin/discordgo"

	"github.com/edgard/recapbot/internal/discord"
)

// Command and component identifiers.
const (
	CommandSummary      = "summary"
	CommandSummaryLinks = "summary_links"
	ModalSummaryLinks   = "summary_links_modal"
)

// RegisteredHandler is a routed interaction handler with its middleware and, for slash
// commands, the command definition synced to Discord.
type RegisteredHandler struct {
	Key        string
	Command    *discordgo.ApplicationCommand
	Handler    discord.HandlerFunc
	Middleware []discord.Middleware
}

// RegisterAllCommands initializes and returns every interaction handler keyed by route key.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	timeout := []discord.Middleware{Timeout(deps.Config.Summary.RequestTimeout)}

	handlers[discord.CommandKey(CommandSummary)] = RegisteredHandler{
		Key:        discord.CommandKey(CommandSummary),
		Command:    summaryCommand(),
		Handler:    NewSummaryHandler(deps),
		Middleware: timeout,
	}
	handlers[discord.CommandKey(CommandSummaryLinks)] = RegisteredHandler{
		Key:     discord.CommandKey(CommandSummaryLinks),
		Command: summaryLinksCommand(),
		Handler: NewSummaryLinksHandler(deps),
	}
	handlers[discord.ModalKey(ModalSummaryLinks)] = RegisteredHandler{
		Key:        discord.ModalKey(ModalSummaryLinks),
		Handler:    NewSummaryLinksSubmitHandler(deps),
		Middleware: timeout,
	}

	deps.Logger.Info("Initialized interaction handlers", "count", len(handlers))
	return handlers
}

// Mount registers every handler on router.
func Mount(router *discord.Router, handlers map[string]RegisteredHandler) {
	for key, h := range handlers {
		router.Handle(key, h.Handler, h.Middleware...)
	}
}

// Commands collects the slash command definitions of handlers in a stable order.
func Commands(handlers map[string]RegisteredHandler) []*discordgo.ApplicationCommand {
	var cmds []*discordgo.ApplicationCommand
	for _, name := range []string{CommandSummary, CommandSummaryLinks} {
		if h, ok := handlers[discord.CommandKey(name)]; ok && h.Command != nil {
			cmds = append(cmds, h.Command)
		}
	}
	return cmds
}

func summaryCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandSummary,
		Description: "Summarize messages in this channel or all channels. All arguments are optional.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionFromTime,
				Description: "Start: ISO-8601 (2024-06-01T12:00:00Z) or duration ago (30m, 2hr, 5d). Default 1 hour ago.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionToTime,
				Description: "End: ISO-8601 (2024-06-01T15:00:00Z) or duration ago (10m, 1hr, 2d). Default now.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionUsers,
				Description: "User(s) to include, e.g. @user1 @user2.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        optionAllChannels,
				Description: "Summarize all text channels in this server. Default false (this channel only).",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        optionEphemeral,
				Description: "Only you can see the summary. Default true.",
			},
		},
	}
}

func summaryLinksCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandSummaryLinks,
		Description: "Summarize messages between two message links (ephemeral modal)",
	}
}

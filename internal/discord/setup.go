// Package discord adapts a discordgo session to the summary pipeline: history and
// roster reads, interaction routing and reply delivery.
package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Intents are the gateway intents the bot needs: guild and channel metadata, message
// content for history reads and the member list for "@name" resolution.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildMembers

// NewSession creates a discordgo session for a bot token. The gateway is not opened.
func NewSession(token string, logger *slog.Logger) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "discord_session")

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Error("Failed to create Discord session", "error", err)
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	s.ShouldReconnectOnError = true
	s.StateEnabled = true
	s.State.MaxMessageCount = 0

	discordgo.Logger = libraryLogger(log)
	s.LogLevel = discordgo.LogWarning

	log.Info("Discord session created", "intents", int(Intents))
	return s, nil
}

// libraryLogger routes discordgo's internal logging through slog.
func libraryLogger(log *slog.Logger) func(msgL, caller int, format string, a ...interface{}) {
	return func(msgL, _ int, format string, a ...interface{}) {
		level := slog.LevelDebug
		switch msgL {
		case discordgo.LogError:
			level = slog.LevelError
		case discordgo.LogWarning:
			level = slog.LevelWarn
		case discordgo.LogInformational:
			level = slog.LevelInfo
		}
		log.Log(context.Background(), level, fmt.Sprintf(format, a...), "source", "discordgo")
	}
}

// SyncCommands bulk-overwrites the application commands, scoped to guildID when set.
func SyncCommands(s *discordgo.Session, guildID string, cmds []*discordgo.ApplicationCommand, logger *slog.Logger) error {
	if s.State == nil || s.State.User == nil {
		return fmt.Errorf("cannot register commands before the session is ready")
	}
	appID := s.State.User.ID

	registered, err := s.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
	if err != nil {
		return fmt.Errorf("failed to register application commands: %w", err)
	}
	scope := "global"
	if guildID != "" {
		scope = "guild"
	}
	logger.Info("Slash commands synced", "count", len(registered), "scope", scope, "guild_id", guildID)
	return nil
}

package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/lo"

	"github.com/edgard/recapbot/internal/summary"
)

// memberPageSize is the largest page the members endpoint serves.
const memberPageSize = 1000

// maxRosterSize bounds roster reads on very large guilds.
const maxRosterSize = 10000

// API is the subset of *discordgo.Session used by Platform.
type API interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
}

// Platform implements summary.Platform over the Discord REST API.
type Platform struct {
	api API
	log *slog.Logger
}

// NewPlatform creates a Platform. api is normally a *discordgo.Session.
func NewPlatform(api API, logger *slog.Logger) *Platform {
	return &Platform{api: api, log: logger.With("component", "discord_platform")}
}

// History returns one page of q.ChannelID oldest first. The "after" cursor is q.AfterID
// when set, otherwise the snowflake boundary of q.After. Messages outside (q.After, q.Before)
// are dropped even if the API returned them.
func (p *Platform) History(ctx context.Context, q summary.HistoryQuery) ([]summary.Message, error) {
	afterID := q.AfterID
	if afterID == "" {
		afterID = AfterSnowflake(q.After)
	}
	if afterID == MaxSnowflake {
		p.log.DebugContext(ctx, "Window starts past the snowflake range, skipping read",
			"channel_id", q.ChannelID, "after", q.After)
		return nil, nil
	}

	page, err := p.api.ChannelMessages(q.ChannelID, q.Limit, "", afterID, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to read history of channel %s: %w", q.ChannelID, err)
	}

	msgs := lo.Map(page, func(m *discordgo.Message, _ int) summary.Message { return toMessage(m) })
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	msgs = lo.Filter(msgs, func(m summary.Message, _ int) bool { return inWindow(m.Timestamp, q) })
	p.log.DebugContext(ctx, "Fetched history page",
		"channel_id", q.ChannelID, "after_id", afterID, "limit", q.Limit, "returned", len(page), "kept", len(msgs))
	return msgs, nil
}

// inWindow reports whether ts lies inside the query bounds. With an explicit AfterID the
// lower bound is inclusive, since messages sharing the cursor's millisecond are legitimate.
func inWindow(ts time.Time, q summary.HistoryQuery) bool {
	if !q.After.IsZero() {
		if ts.Before(q.After) || (q.AfterID == "" && ts.Equal(q.After)) {
			return false
		}
	}
	return q.Before.IsZero() || ts.Before(q.Before)
}

// Message fetches one message.
func (p *Platform) Message(ctx context.Context, channelID, messageID string) (summary.Message, error) {
	m, err := p.api.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return summary.Message{}, fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}
	return toMessage(m), nil
}

// TextChannels lists the guild's text and announcement channels in display order.
func (p *Platform) TextChannels(ctx context.Context, guildID string) ([]string, error) {
	channels, err := p.api.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list channels of guild %s: %w", guildID, err)
	}

	text := lo.Filter(channels, func(c *discordgo.Channel, _ int) bool {
		return c.Type == discordgo.ChannelTypeGuildText || c.Type == discordgo.ChannelTypeGuildNews
	})
	sort.SliceStable(text, func(i, j int) bool { return text[i].Position < text[j].Position })
	return lo.Map(text, func(c *discordgo.Channel, _ int) string { return c.ID }), nil
}

// Members pages through the guild member list.
func (p *Platform) Members(ctx context.Context, guildID string) ([]summary.Participant, error) {
	var roster []summary.Participant
	after := ""
	for len(roster) < maxRosterSize {
		page, err := p.api.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list members of guild %s: %w", guildID, err)
		}
		for _, m := range page {
			if m.User == nil {
				continue
			}
			roster = append(roster, summary.Participant{
				ID:         m.User.ID,
				Username:   m.User.Username,
				GlobalName: m.User.GlobalName,
				Nickname:   m.Nick,
			})
			after = m.User.ID
		}
		if len(page) < memberPageSize {
			break
		}
	}
	p.log.DebugContext(ctx, "Fetched member roster", "guild_id", guildID, "members", len(roster))
	return roster, nil
}

func toMessage(m *discordgo.Message) summary.Message {
	out := summary.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Content:   m.Content,
		Timestamp: m.Timestamp.UTC(),
	}
	if m.Author != nil {
		out.AuthorID = m.Author.ID
		out.Author = displayName(m.Author, m.Member)
	}
	return out
}

// displayName prefers the guild nickname, then the global display name, then the username.
func displayName(u *discordgo.User, member *discordgo.Member) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

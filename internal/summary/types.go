// Package summary implements the query-resolution and transcript-assembly pipeline
// behind the summary commands: it turns raw command arguments into a time window and
// participant filter, pulls the matching channel history from the host platform,
// renders it into a transcript and hands that transcript to a completion backend.
package summary

import (
	"context"
	"time"
)

// Message is one retrieved chat message. Timestamp is always UTC.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Author    string
	Content   string
	Timestamp time.Time
}

// Participant is a roster entry the participant resolver can match "@name" tokens against.
type Participant struct {
	ID         string
	Username   string
	GlobalName string
	Nickname   string
}

// ChannelScope selects the channels a retrieval runs over. When All is set and GuildID is
// known, every text channel of the guild is read; otherwise only ChannelID.
type ChannelScope struct {
	GuildID   string
	ChannelID string
	All       bool
}

// TimeWindow is the (After, Before) range of a summary request.
type TimeWindow struct {
	After  time.Time
	Before time.Time
}

// NewTimeWindow normalizes both endpoints to UTC and rejects inverted windows.
func NewTimeWindow(after, before time.Time) (TimeWindow, error) {
	after, before = after.UTC(), before.UTC()
	if after.After(before) {
		return TimeWindow{}, ErrInvertedWindow
	}
	return TimeWindow{After: after, Before: before}, nil
}

// ParticipantFilter is a set of participant IDs. A nil filter means no filtering;
// a non-nil empty filter lets nothing through.
type ParticipantFilter map[string]struct{}

// Allows reports whether messages authored by id pass the filter.
func (f ParticipantFilter) Allows(id string) bool {
	if f == nil {
		return true
	}
	_, ok := f[id]
	return ok
}

// HistoryQuery asks the platform for one page of channel history.
// Messages must be strictly after After (or strictly after AfterID when it is set),
// strictly before Before when Before is non-zero, ordered oldest first, and at most Limit long.
type HistoryQuery struct {
	ChannelID string
	After     time.Time
	AfterID   string
	Before    time.Time
	Limit     int
}

// Platform is the slice of the chat platform the pipeline depends on.
type Platform interface {
	History(ctx context.Context, q HistoryQuery) ([]Message, error)
	Message(ctx context.Context, channelID, messageID string) (Message, error)
	TextChannels(ctx context.Context, guildID string) ([]string, error)
	Members(ctx context.Context, guildID string) ([]Participant, error)
}

package summary

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageLink identifies a message by the trailing guild/channel/message IDs of a
// message URL such as https://discord.com/channels/1/2/3.
type MessageLink struct {
	GuildID   string
	ChannelID string
	MessageID string
}

// ParseMessageLink reads the last three path segments of raw as numeric IDs.
func ParseMessageLink(raw string) (MessageLink, error) {
	parts := strings.Split(strings.TrimRight(strings.TrimSpace(raw), "/"), "/")
	if len(parts) < 3 {
		return MessageLink{}, fmt.Errorf("%w: %q", ErrInvalidMessageLink, raw)
	}
	ids := parts[len(parts)-3:]
	for _, id := range ids {
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return MessageLink{}, fmt.Errorf("%w: %q", ErrInvalidMessageLink, raw)
		}
	}
	return MessageLink{GuildID: ids[0], ChannelID: ids[1], MessageID: ids[2]}, nil
}

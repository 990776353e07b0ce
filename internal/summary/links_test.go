package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageLink(t *testing.T) {
	t.Parallel()

	tests := []string{
		"https://discord.com/channels/111/222/333",
		"https://discord.com/channels/111/222/333/",
		"  https://ptb.discord.com/channels/111/222/333  ",
		"111/222/333",
	}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			link, err := ParseMessageLink(raw)
			require.NoError(t, err)
			assert.Equal(t, MessageLink{GuildID: "111", ChannelID: "222", MessageID: "333"}, link)
		})
	}
}

func TestParseMessageLink_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not a link", "https://discord.com/channels/111/222", "https://discord.com/channels/111/abc/333"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseMessageLink(raw)
			require.ErrorIs(t, err, ErrInvalidMessageLink)
		})
	}
}

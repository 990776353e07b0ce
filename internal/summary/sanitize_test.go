package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Alice proposed a release date.", "Alice proposed a release date."},
		{"invisible", "zero\u200Bwidth\u202Eoverride\uFEFF", "zerowidthoverride"},
		{"separators", "a\u2028b\u2029c", "a\nb\n\nc"},
		{"control", "bell\x07 and\x00 null", "bell and null"},
		{"line endings kept", "line one\r\nline two", "line one\r\nline two"},
		{"blank runs kept", "first\n\n\n\nsecond", "first\n\n\n\nsecond"},
		{"code block layout kept", "```\nline   \n\n\n\nindented\u200Bcode\n```\n", "```\nline   \n\n\n\nindentedcode\n```\n"},
		{"markdown kept", "  - **Topics**\n\t- `deploy` at 5pm  ", "  - **Topics**\n\t- `deploy` at 5pm  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCompletion(tt.input))
		})
	}
}

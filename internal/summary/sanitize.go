package summary

import (
	"regexp"
	"strings"
)

var (
	// invisibleReplacer drops zero-width and bidi-override characters and maps Unicode
	// line/paragraph separators onto newlines.
	invisibleReplacer = strings.NewReplacer(
		"\u2060", "", "\u180E", "",
		"\u2028", "\n", "\u2029", "\n\n",
		"\u200B", "", "\u200C", "",
		"\u200D", "", "\uFEFF", "",
		"\u00AD", "",
		"\u202A", "", "\u202B", "",
		"\u202C", "", "\u202D", "", "\u202E", "",
	)

	// controlCharsRegex matches ASCII control characters other than tab, LF and CR.
	controlCharsRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

// SanitizeCompletion removes invisible and control characters from model output.
// Whitespace, line structure and markdown are returned exactly as generated.
func SanitizeCompletion(text string) string {
	return controlCharsRegex.ReplaceAllString(invisibleReplacer.Replace(text), "")
}

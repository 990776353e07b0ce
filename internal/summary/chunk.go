package summary

import "unicode/utf8"

// DefaultMaxChunkLength leaves headroom under Discord's 2000 character message ceiling.
const DefaultMaxChunkLength = 1900

// Chunk splits text into consecutive slices of maxLength characters (runes); the last
// slice may be shorter. Text that already fits comes back as a single element, and
// joining the result always reproduces text byte for byte. No attempt is made to split
// on word boundaries. A non-positive maxLength disables splitting.
func Chunk(text string, maxLength int) []string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	start, count := 0, 0
	for i := range text {
		if count == maxLength {
			chunks = append(chunks, text[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(chunks, text[start:])
}

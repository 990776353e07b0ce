package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// TimestampLayout is the per-line timestamp format of a transcript.
const TimestampLayout = "2006-01-02 15:04:05 UTC"

// Transcript is the rendered, chronologically ordered conversation fed to the summarizer.
type Transcript struct {
	Lines []string
}

// Empty reports whether no message survived filtering.
func (t Transcript) Empty() bool { return len(t.Lines) == 0 }

// Len returns the number of rendered messages.
func (t Transcript) Len() int { return len(t.Lines) }

// String joins the lines, each terminated by a newline.
func (t Transcript) String() string {
	if t.Empty() {
		return ""
	}
	return strings.Join(t.Lines, "\n") + "\n"
}

// FormatLine renders one message as "**author** (YYYY-MM-DD HH:MM:SS UTC): content".
func FormatLine(m Message) string {
	return fmt.Sprintf("**%s** (%s): %s", m.Author, m.Timestamp.UTC().Format(TimestampLayout), m.Content)
}

// Assemble drops messages rejected by filter, stable-sorts the rest by timestamp and
// renders them. Messages with equal timestamps keep their retrieval order.
func Assemble(records []Message, filter ParticipantFilter) Transcript {
	kept := lo.Filter(records, func(m Message, _ int) bool {
		return filter.Allows(m.AuthorID)
	})
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})
	return Transcript{Lines: lo.Map(kept, func(m Message, _ int) string {
		return FormatLine(m)
	})}
}

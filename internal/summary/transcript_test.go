package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAssemble_FilterAndOrder(t *testing.T) {
	t.Parallel()

	req := require.New(t)
	records := []Message{
		msg("3", "c", "a", "alice", "third", baseTime.Add(2*time.Minute)),
		msg("1", "c", "a", "alice", "first", baseTime),
		msg("2", "c", "b", "bob", "second", baseTime.Add(time.Minute)),
	}

	all := Assemble(records, nil)
	req.Equal([]string{
		"**alice** (2024-03-01 12:00:00 UTC): first",
		"**bob** (2024-03-01 12:01:00 UTC): second",
		"**alice** (2024-03-01 12:02:00 UTC): third",
	}, all.Lines)

	onlyAlice := Assemble(records, ParticipantFilter{"a": {}})
	req.Equal([]string{
		"**alice** (2024-03-01 12:00:00 UTC): first",
		"**alice** (2024-03-01 12:02:00 UTC): third",
	}, onlyAlice.Lines)
}

func TestAssemble_EqualTimestampsKeepRetrievalOrder(t *testing.T) {
	t.Parallel()

	records := []Message{
		msg("9", "c", "a", "alice", "x", baseTime),
		msg("8", "c", "b", "bob", "y", baseTime),
	}

	got := Assemble(records, nil)

	require.Equal(t, []string{
		"**alice** (2024-03-01 12:00:00 UTC): x",
		"**bob** (2024-03-01 12:00:00 UTC): y",
	}, got.Lines)
}

func TestAssemble_EmptyFilterDropsEverything(t *testing.T) {
	t.Parallel()

	got := Assemble([]Message{msg("1", "c", "a", "alice", "hi", baseTime)}, ParticipantFilter{})
	require.True(t, got.Empty())
	require.Equal(t, "", got.String())
}

func TestTranscript_String(t *testing.T) {
	t.Parallel()

	tr := Transcript{Lines: []string{"one", "two"}}
	require.Equal(t, "one\ntwo\n", tr.String())
}

func TestFormatLine_ConvertsToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-3", -3*60*60)
	m := msg("1", "c", "a", "alice", "hello", time.Date(2024, 3, 1, 9, 30, 5, 0, loc))
	require.Equal(t, "**alice** (2024-03-01 12:30:05 UTC): hello", FormatLine(m))
}

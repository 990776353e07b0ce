package discord

import (
	"math"
	"strconv"
	"time"
)

// discordEpochMs is 2015-01-01T00:00:00Z in Unix milliseconds.
const discordEpochMs = 1420070400000

// maxSnowflakeMs is the last millisecond a 42-bit snowflake timestamp can encode.
const maxSnowflakeMs = 1<<42 - 1

// MaxSnowflake is the largest possible snowflake; nothing can be created after it.
var MaxSnowflake = strconv.FormatUint(math.MaxUint64, 10)

// AfterSnowflake returns the largest snowflake stamped no later than t's millisecond,
// so that "after" it selects exactly the messages created strictly after t. Instants
// past the snowflake range clamp to MaxSnowflake.
func AfterSnowflake(t time.Time) string {
	ms := t.UnixMilli() - discordEpochMs
	if ms < 0 {
		return "0"
	}
	if ms >= maxSnowflakeMs {
		return MaxSnowflake
	}
	return strconv.FormatUint(uint64(ms+1)<<22-1, 10)
}

// SnowflakeTime extracts the creation time encoded in id.
func SnowflakeTime(id string) (time.Time, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(n>>22) + discordEpochMs).UTC(), nil
}

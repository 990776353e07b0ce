package summary

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field names used in temporal errors.
const (
	FieldFrom = "from"
	FieldTo   = "to"
)

var (
	shorthandPattern = regexp.MustCompile(`^(\d+)\s*(sec|min|hr|day|wk|s|m|h|d|w)s?$`)
	bareNumber       = regexp.MustCompile(`^\d+$`)
)

var unitDurations = map[string]time.Duration{
	"s":   time.Second,
	"sec": time.Second,
	"m":   time.Minute,
	"min": time.Minute,
	"h":   time.Hour,
	"hr":  time.Hour,
	"d":   24 * time.Hour,
	"day": 24 * time.Hour,
	"w":   7 * 24 * time.Hour,
	"wk":  7 * 24 * time.Hour,
}

// absoluteLayouts are tried in order. Layouts without an offset are read as UTC.
var absoluteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseStrategy turns a raw expression into an instant relative to now.
type parseStrategy func(raw string, now time.Time) (time.Time, bool)

// strategies run in order and the first success wins.
var strategies = []parseStrategy{
	parseShorthandStrategy,
	parseAbsoluteStrategy,
}

// ParseShorthand parses compact durations such as "30m", "2hr", "5 days" or a bare "15"
// (minutes). Matching is case-insensitive; values that overflow time.Duration do not match.
func ParseShorthand(raw string) (time.Duration, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	var digits, unit string
	if bareNumber.MatchString(s) {
		digits, unit = s, "m"
	} else {
		m := shorthandPattern.FindStringSubmatch(s)
		if m == nil {
			return 0, false
		}
		digits, unit = m[1], m[2]
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	step := unitDurations[unit]
	if value > int64(math.MaxInt64/step) {
		return 0, false
	}
	return time.Duration(value) * step, true
}

// ParseAbsolute parses an ISO-8601 timestamp. A trailing "Z" is accepted as UTC and
// timestamps without an offset are taken as UTC. The result is always UTC.
func ParseAbsolute(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseShorthandStrategy(raw string, now time.Time) (time.Time, bool) {
	d, ok := ParseShorthand(raw)
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-d), true
}

func parseAbsoluteStrategy(raw string, _ time.Time) (time.Time, bool) {
	return ParseAbsolute(raw)
}

// Resolver resolves temporal expressions against a single captured instant so both
// ends of a window are computed from the same "now".
type Resolver struct {
	now time.Time
}

// NewResolver captures now (normalized to UTC) for the lifetime of one request.
func NewResolver(now time.Time) *Resolver {
	return &Resolver{now: now.UTC()}
}

// Now returns the captured instant.
func (r *Resolver) Now() time.Time { return r.now }

// Resolve turns raw into an instant. Blank input yields now - defaultOffset.
func (r *Resolver) Resolve(field, raw string, defaultOffset time.Duration) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return r.now.Add(-defaultOffset), nil
	}
	for _, parse := range strategies {
		if t, ok := parse(raw, r.now); ok {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &TemporalExpressionError{Field: field, Raw: raw}
}

// Window resolves the from/to pair. A missing from means now - lookback, a missing to means now.
func (r *Resolver) Window(from, to string, lookback time.Duration) (TimeWindow, error) {
	after, err := r.Resolve(FieldFrom, from, lookback)
	if err != nil {
		return TimeWindow{}, err
	}
	before, err := r.Resolve(FieldTo, to, 0)
	if err != nil {
		return TimeWindow{}, err
	}
	return NewTimeWindow(after, before)
}

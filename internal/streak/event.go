package streak

import (
	"strconv"
	"strings"
	"time"
)

// Event is one timestamped submission. It carries either a concrete instant
// or the raw timestamp text as stored by the host; raw text is parsed lazily
// and events that cannot be parsed are ignored by every calculation.
type Event struct {
	at  time.Time
	raw string
}

// At wraps a concrete instant.
func At(t time.Time) Event {
	return Event{at: t}
}

// Raw wraps a timestamp string: RFC3339, an ISO date or datetime without a
// zone, or epoch milliseconds.
func Raw(s string) Event {
	return Event{raw: s}
}

// Times wraps a slice of instants.
func Times(ts []time.Time) []Event {
	out := make([]Event, len(ts))
	for i, t := range ts {
		out[i] = At(t)
	}
	return out
}

// Time resolves the event to an instant. Zone-less text is read in loc.
func (e Event) Time(loc *time.Location) (time.Time, bool) {
	if !e.at.IsZero() {
		return e.at, true
	}
	return ParseTimestamp(e.raw, loc)
}

// zonedLayouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
}

// localLayouts are interpreted in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp shapes found in submission histories.
// It reports false instead of failing so callers can skip bad records.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if isDigits(s) {
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil || ms <= 0 {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).In(loc), true
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

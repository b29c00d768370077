package util

import (
	"strconv"
	"time"
)

// eventTimeLayout matches calendar timestamps such as "2025-03-02T21:45:00+0000",
// which carry a numeric zone offset without a colon and so fail time.RFC3339.
const eventTimeLayout = "2006-01-02T15:04:05-0700"

// ParseTime tries RFC3339, the calendar layout, unix seconds, and unix milliseconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(eventTimeLayout, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		// Heuristic: values past the year ~33658 as seconds are milliseconds.
		if ts > 1e12 {
			return time.UnixMilli(ts), true
		}
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// UTCDate formats t as its UTC calendar day, e.g. "2025-03-02".
func UTCDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

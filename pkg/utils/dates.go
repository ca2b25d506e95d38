package utils

import (
	"time"

	"github.com/spf13/cast"
)

const (
	hoursPerDay = 24
	monthLayout = "2006-01"
)

// ParseDate parses a calendar date or timestamp string. Strings without a
// zone are read as UTC. ok is false for empty or unparseable input.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns (end - start) in fractional days. The result may be
// negative. ok is false when either date is absent or unparseable.
func DaysBetween(start, end string) (float64, bool) {
	s, ok := ParseDate(start)
	if !ok {
		return 0, false
	}
	e, ok := ParseDate(end)
	if !ok {
		return 0, false
	}
	return e.Sub(s).Hours() / hoursPerDay, true
}

// MonthKey truncates a date string to "YYYY-MM" in UTC.
// ok is false when the date cannot be resolved.
func MonthKey(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return "", false
	}
	return t.UTC().Format(monthLayout), true
}

package transform

import (
	"time"

	"github.com/dustin/go-humanize"
)

const (
	day = 24 * time.Hour

	// AbsoluteAfter is the age from which timestamps are rendered as a date
	AbsoluteAfter = 30 * day

	dateLayout = "2006-01-02"
)

// Magnitudes are checked in order; the first whose D exceeds the distance wins
var relativeMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "just now", DivBy: 1},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: 1},
	{D: AbsoluteAfter, Format: "%d days %s", DivBy: day},
}

// RelativeTime renders t relative to now, e.g. "3 hours ago" or
// "2 days from now". Instants 30 days or more away render as YYYY-MM-DD.
func RelativeTime(t, now time.Time) string {
	distance := now.Sub(t)
	if distance < 0 {
		distance = -distance
	}
	if distance >= AbsoluteAfter {
		return t.UTC().Format(dateLayout)
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", relativeMagnitudes)
}

// relative renders an optional timestamp, empty when absent
func relative(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return RelativeTime(*t, now)
}

// relativeDate renders a YYYY-MM-DD day relative to now. Unparseable values
// are returned as given.
func relativeDate(value string, now time.Time) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return value
	}
	return RelativeTime(t, now)
}

package utils

import (
	"fmt"
	"time"
)

// compactDateLayout is the 8-digit date encoding used by channel feeds.
const compactDateLayout = "20060102"

// Date returns the UTC midnight time for a calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateToDay strips the time component, normalizing to UTC midnight.
func TruncateToDay(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseCompactDate parses an 8-digit YYYYMMDD value into a UTC calendar date.
// Values carrying a time suffix (e.g. 20250601T140000Z) are truncated to their
// leading date digits; feeds publish whole-day spans so the time part is noise.
func ParseCompactDate(value string) (time.Time, error) {
	if len(value) < len(compactDateLayout) {
		return time.Time{}, fmt.Errorf("date value %q is too short", value)
	}

	t, err := time.Parse(compactDateLayout, value[:len(compactDateLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date value %q: %w", value, err)
	}
	return t, nil
}

// FormatCompactDate renders a date in the feed's 8-digit encoding.
func FormatCompactDate(t time.Time) string {
	return t.Format(compactDateLayout)
}

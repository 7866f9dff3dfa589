package utils

import (
	"time"
)

// GetCurrentTimeMillis returns current time in milliseconds since epoch
func GetCurrentTimeMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// MillisToTime converts milliseconds since epoch to time.Time (UTC)
func MillisToTime(millis int64) time.Time {
	return time.Unix(0, millis*int64(time.Millisecond)).UTC()
}

// TimeToMillis converts time.Time to milliseconds since epoch
func TimeToMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// FormatTime formats time in ISO 8601 format
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseDate parses an expiration date given either as a plain date
// (YYYY-MM-DD) or a full RFC 3339 timestamp. Plain dates are interpreted
// as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// DaysFromNow returns the time in milliseconds for a given number of days from now
func DaysFromNow(days int) int64 {
	return GetCurrentTimeMillis() + (int64(days) * 24 * 60 * 60 * 1000)
}

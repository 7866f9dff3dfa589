package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMillisRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	assert.Equal(t, now, MillisToTime(TimeToMillis(now)))
}

func TestFormatTime(t *testing.T) {
	moment := time.Date(2026, time.August, 30, 14, 25, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-30T14:25:00Z", FormatTime(moment))

	zone := time.FixedZone("UTC+1", 60*60)
	zoned := time.Date(2026, time.August, 30, 14, 25, 0, 0, zone)
	assert.Equal(t, "2026-08-30T13:25:00Z", FormatTime(zoned), "output is normalized to UTC")
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2027-01-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = ParseDate("2027-01-15T08:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 8, parsed.Hour())

	_, err = ParseDate("15-01-2027")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDaysFromNow(t *testing.T) {
	now := GetCurrentTimeMillis()
	future := DaysFromNow(2)
	assert.InDelta(t, now+2*24*60*60*1000, future, 1000)

	past := DaysFromNow(-1)
	assert.Less(t, past, now)
}

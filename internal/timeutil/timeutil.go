package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// EpochMillis returns t as milliseconds since the Unix epoch.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromEpochMillis converts milliseconds since the Unix epoch to a UTC time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// FormatEpochMillis renders t as a base-10 epoch-milliseconds string.
func FormatEpochMillis(t time.Time) string {
	return strconv.FormatInt(EpochMillis(t), 10)
}

// ParseEpochMillis parses a base-10 epoch-milliseconds string.
func ParseEpochMillis(value string) (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return FromEpochMillis(ms), nil
}

// SecondsToDuration converts a server-reported lifetime in seconds to a duration.
func SecondsToDuration(seconds int64) time.Duration {
	return time.Duration(seconds) * time.Second
}

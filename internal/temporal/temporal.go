// Package temporal converts calendar values into the integer encodings the
// columnar format declares: day counts for dates, time-of-day counts in
// milliseconds or microseconds, and microsecond epoch timestamps.
package temporal

import (
	"errors"
	"fmt"
	"time"
)

var ErrFormat = errors.New("temporal: cannot parse date/time value")

const secondsPerDay = 86_400

// Layouts accepted by Parse, tried in order. All are locale-independent;
// values without an explicit zone are taken as UTC.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05.999999999",
	"15:04:05",
}

// Parse interprets s with the first matching layout.
func Parse(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrFormat, s)
}

// DateDays returns the whole days between the UTC midnight of t and
// 1970-01-01. The time-of-day component is discarded before the subtraction,
// and the division floors so pre-epoch dates come out negative.
func DateDays(t time.Time) int32 {
	utc := t.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	secs := midnight.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 && secs < 0 {
		days--
	}
	return int32(days)
}

// TimeMillis returns milliseconds since midnight for the UTC time of day,
// with sub-millisecond precision truncated.
func TimeMillis(t time.Time) int32 {
	utc := t.UTC()
	return int32(utc.Hour())*3_600_000 +
		int32(utc.Minute())*60_000 +
		int32(utc.Second())*1_000 +
		int32(utc.Nanosecond()/1_000_000)
}

// TimeMicros returns microseconds since midnight for the UTC time of day.
func TimeMicros(t time.Time) int64 {
	utc := t.UTC()
	return int64(utc.Hour())*3_600_000_000 +
		int64(utc.Minute())*60_000_000 +
		int64(utc.Second())*1_000_000 +
		int64(utc.Nanosecond()/1_000)
}

// TimestampMicros returns microseconds since the UTC epoch. Both millisecond
// and microsecond timestamp columns are encoded at this resolution.
func TimestampMicros(t time.Time) int64 {
	return t.Unix()*1_000_000 + int64(t.Nanosecond())/1_000
}

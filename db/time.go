package db

import "time"

// TimeFormat is the timestamp layout stored in the database: RFC3339, UTC,
// second precision.
const TimeFormat = "2006-01-02T15:04:05Z"

// TimeParse parses a stored timestamp. An empty string parses to the zero
// time without error, matching columns that default to ''.
func TimeParse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(TimeFormat, s)
}

// TimeString formats t for storage.
func TimeString(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

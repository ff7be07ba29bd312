package models

import "time"

// TimestampLayout renders UTC timestamps with microsecond precision and a literal Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in UTC using TimestampLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

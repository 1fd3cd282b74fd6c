package models

import (
	"fmt"
	"time"
)

// ParseDate accepts either a bare date ("2025-03-01") or a full RFC 3339
// timestamp and returns the parsed time in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDay resolves a backfill date argument to a calendar day. It
// accepts "today", "yesterday", relative offsets like "3 days ago",
// and plain YYYY-MM-DD.
func ParseDay(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	now := time.Now().In(loc)
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch input {
	case "today":
		return day(now), nil
	case "yesterday":
		return day(now.AddDate(0, 0, -1)), nil
	}

	if strings.HasSuffix(input, " ago") {
		var n int
		var unit string
		rest := strings.TrimSuffix(input, " ago")
		if _, err := fmt.Sscanf(rest, "%d %s", &n, &unit); err == nil {
			switch strings.TrimSuffix(unit, "s") {
			case "day":
				return day(now.AddDate(0, 0, -n)), nil
			case "week":
				return day(now.AddDate(0, 0, -7*n)), nil
			case "month":
				return day(now.AddDate(0, -n, 0)), nil
			}
		}
	}

	if t, err := time.ParseInLocation("2006-01-02", input, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", input)
}

package nlp

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ResolveDate turns a date slot into a calendar day in now's location.
// Unknown or empty values resolve to tomorrow.
func ResolveDate(raw string, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hôm nay", "today":
		return today
	case "", "ngày mai", "tomorrow":
		return today.AddDate(0, 0, 1)
	case "tuần sau", "next week":
		return today.AddDate(0, 0, 7)
	case "tháng sau", "next month":
		return today.AddDate(0, 1, 0)
	}

	for _, layout := range []string{"2/1/2006", DateLayout} {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(raw), now.Location()); err == nil {
			return t
		}
	}

	return today.AddDate(0, 0, 1)
}

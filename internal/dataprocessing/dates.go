package dataprocessing

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order; the first that parses wins.
// Month-first layouts come before day-first ones, as in the exports this tool reads.
var dateLayouts = []string{
	"2006-01-02",
	dateTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"01-02-2006",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"20060102",
}

// ParseDate parses a date cell. All parsed times are in UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

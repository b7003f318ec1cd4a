package review

import (
	"strings"
	"time"
)

// InvalidDate is the normalized date of a review whose raw date could not be
// parsed. It compares lower than every real YYYY-MM-DD value.
const InvalidDate = "0000-00-00"

// DayLayout is the normalized date layout.
const DayLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DayLayout,
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	time.UnixDate,
}

// ParseDate parses s with a list of common layouts. Times carrying a zone are
// converted to UTC before the calendar day is taken; zoneless values are read
// as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeDate returns the YYYY-MM-DD form of s and its day, or InvalidDate
// and the zero time.
func NormalizeDate(s string) (string, time.Time) {
	t, ok := ParseDate(s)
	if !ok {
		return InvalidDate, time.Time{}
	}
	return t.Format(DayLayout), t
}
